package metrics

import (
	"time"
)

// Counter represents a counter metric that only goes up
type Counter interface {
	// Inc increments the counter by 1
	Inc()

	// Add adds the given value to the counter
	// The value must be >= 0
	Add(delta float64)

	// Get returns the current value of the counter
	Get() float64
}

// Gauge represents a gauge metric that can go up and down
type Gauge interface {
	// Set sets the gauge to the given value
	Set(value float64)

	// Inc increments the gauge by 1
	Inc()

	// Dec decrements the gauge by 1
	Dec()

	// Add adds the given value to the gauge
	Add(delta float64)

	// Sub subtracts the given value from the gauge
	Sub(delta float64)

	// Get returns the current value of the gauge
	Get() float64
}

// Observer is the part shared by histograms and summaries.
type Observer interface {
	// Observe adds a single observation
	Observe(value float64)

	// Update is an alias of Observe
	Update(value float64)

	// Time starts a Timer that records its elapsed time, in seconds,
	// as one observation when ObserveDuration is called.
	Time() Timer

	// GetCount returns the total number of observations
	GetCount() uint64

	// GetSum returns the sum of all observed values
	GetSum() float64
}

// Histogram represents a histogram metric for observing distributions
type Histogram interface {
	Observer

	// GetBuckets returns the cumulative bucket counts
	GetBuckets() []Bucket
}

// Summary represents a summary metric for observing distributions with quantiles
type Summary interface {
	Observer

	// GetQuantiles returns the current quantile estimates
	GetQuantiles() []Quantile
}

// ErrorCounter is a view of one error_type series of the shared errors
// family. It is not a separate metric.
type ErrorCounter interface {
	// Label returns the error_type label value this view is bound to
	Label() string

	// Count returns the accumulated count for the label
	Count() float64
}

// Timer is a running timing context. ObserveDuration records the elapsed
// time on the originating metric exactly once; later calls return the
// duration recorded by the first call and observe nothing.
//
//	defer summary.Time().ObserveDuration()
type Timer interface {
	ObserveDuration() time.Duration
}

// Bucket represents a histogram bucket
type Bucket struct {
	UpperBound float64 `json:"upper_bound"`
	Count      uint64  `json:"count"`
}

// Quantile represents a summary quantile
type Quantile struct {
	Quantile float64 `json:"quantile"`
	Value    float64 `json:"value"`
}

// Registry is the typed get-or-create surface. A name is bound to one Kind
// for the lifetime of the registry; asking for it under another Kind fails
// with ErrTypeConflict. Every method is safe for concurrent use.
type Registry interface {
	// Counter returns the counter for name, creating it on first use
	Counter(name string, desc ...string) (Counter, error)

	// Gauge returns the gauge for name, creating it on first use
	Gauge(name string, desc ...string) (Gauge, error)

	// Histogram returns the histogram for name, creating it on first use
	Histogram(name string, desc ...string) (Histogram, error)

	// Summary returns the summary for name, creating it on first use
	Summary(name string, desc ...string) (Summary, error)

	// Timer is an alias of Summary
	Timer(name string, desc ...string) (Summary, error)

	// Error increments the errors family for the given error type and
	// returns a view of that series
	Error(errorType string, desc ...string) (ErrorCounter, error)

	// Entries returns a snapshot of the metrics held, sorted by name
	Entries() []Entry

	// SetDescriptions replaces the description mapping table
	SetDescriptions(d Descriptions)
}
