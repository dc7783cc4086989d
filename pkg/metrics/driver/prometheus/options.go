package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/songzhibin97/prommetrics/pkg/log"
	"github.com/songzhibin97/prommetrics/pkg/metrics"
)

// Options for creating a Registry
type Options struct {
	// Registerer receives every collector the Registry creates. When nil a
	// private prometheus.NewRegistry() is created, so two Registries built
	// with zero Options never see each other's metrics.
	Registerer prometheus.Registerer

	// Gatherer reads the metrics back. Defaults to Registerer when it also
	// implements prometheus.Gatherer.
	Gatherer prometheus.Gatherer

	// Prefix is normalized and joined to every metric name with '_'.
	Prefix string

	// Descriptions supplies help text by qualified metric name.
	Descriptions metrics.Descriptions

	// ErrorLabels controls how error_type label values are treated.
	ErrorLabels metrics.LabelPolicy

	// Buckets used for every histogram. Defaults to prometheus.DefBuckets.
	Buckets []float64

	// Now is the clock used by timers. Defaults to time.Now.
	Now func() time.Time

	Logger log.Logger
}

func (o Options) withDefaults() Options {
	if o.Registerer == nil {
		reg := prometheus.NewRegistry()
		o.Registerer = reg
		if o.Gatherer == nil {
			o.Gatherer = reg
		}
	}
	if o.Gatherer == nil {
		if g, ok := o.Registerer.(prometheus.Gatherer); ok {
			o.Gatherer = g
		}
	}
	if len(o.Buckets) == 0 {
		o.Buckets = prometheus.DefBuckets
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = log.NewNop()
	}
	return o
}
