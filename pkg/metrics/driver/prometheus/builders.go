package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/songzhibin97/prommetrics/pkg/metrics"
)

// builder pairs the constructor of a backend collector with the handle
// wrapping it. wrap is only called on collectors whose kind matches.
type builder struct {
	build func(r *Registry, name, help string) prometheus.Collector
	wrap  func(r *Registry, c prometheus.Collector) any
}

var builders = map[metrics.Kind]builder{
	metrics.CounterKind: {
		build: func(_ *Registry, name, help string) prometheus.Collector {
			return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
		},
		wrap: func(_ *Registry, c prometheus.Collector) any {
			return &prometheusCounter{counter: c.(prometheus.Counter)}
		},
	},
	metrics.GaugeKind: {
		build: func(_ *Registry, name, help string) prometheus.Collector {
			return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
		},
		wrap: func(_ *Registry, c prometheus.Collector) any {
			return &prometheusGauge{gauge: c.(prometheus.Gauge)}
		},
	},
	metrics.HistogramKind: {
		build: func(r *Registry, name, help string) prometheus.Collector {
			return prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    name,
				Help:    help,
				Buckets: r.buckets,
			})
		},
		wrap: func(r *Registry, c prometheus.Collector) any {
			return &prometheusHistogram{prometheusObserver{observer: c.(prometheus.Histogram), now: r.now}}
		},
	},
	metrics.SummaryKind: {
		build: func(_ *Registry, name, help string) prometheus.Collector {
			return prometheus.NewSummary(prometheus.SummaryOpts{
				Name:       name,
				Help:       help,
				Objectives: metrics.Objectives(),
			})
		},
		wrap: func(r *Registry, c prometheus.Collector) any {
			return &prometheusSummary{prometheusObserver{observer: c.(prometheus.Summary), now: r.now}}
		},
	},
}

// is reports whether c is a single metric of kind k that the handle for k
// can wrap.
func is(k metrics.Kind) func(prometheus.Collector) bool {
	return func(c prometheus.Collector) bool {
		var fits bool
		switch k {
		case metrics.CounterKind:
			_, fits = c.(prometheus.Counter)
		case metrics.GaugeKind:
			_, fits = c.(prometheus.Gauge)
		case metrics.HistogramKind:
			_, fits = c.(prometheus.Histogram)
		case metrics.SummaryKind:
			_, fits = c.(prometheus.Summary)
		}
		got, ok := kindOf(c)
		return fits && ok && got == k
	}
}

func isCounterVec(c prometheus.Collector) bool {
	_, ok := c.(*prometheus.CounterVec)
	return ok
}
