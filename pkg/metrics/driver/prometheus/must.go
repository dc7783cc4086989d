package prometheus

import "github.com/songzhibin97/prommetrics/pkg/metrics"

// MustCounter is like Counter but panics on error.
func (r *Registry) MustCounter(name string, desc ...string) metrics.Counter {
	c, err := r.Counter(name, desc...)
	if err != nil {
		panic(err)
	}
	return c
}

// MustGauge is like Gauge but panics on error.
func (r *Registry) MustGauge(name string, desc ...string) metrics.Gauge {
	g, err := r.Gauge(name, desc...)
	if err != nil {
		panic(err)
	}
	return g
}

// MustHistogram is like Histogram but panics on error.
func (r *Registry) MustHistogram(name string, desc ...string) metrics.Histogram {
	h, err := r.Histogram(name, desc...)
	if err != nil {
		panic(err)
	}
	return h
}

// MustSummary is like Summary but panics on error.
func (r *Registry) MustSummary(name string, desc ...string) metrics.Summary {
	s, err := r.Summary(name, desc...)
	if err != nil {
		panic(err)
	}
	return s
}

// MustTimer is like Timer but panics on error.
func (r *Registry) MustTimer(name string, desc ...string) metrics.Summary {
	return r.MustSummary(name, desc...)
}

// MustError is like Error but panics on error.
func (r *Registry) MustError(errorType string, desc ...string) metrics.ErrorCounter {
	e, err := r.Error(errorType, desc...)
	if err != nil {
		panic(err)
	}
	return e
}
