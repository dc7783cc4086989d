package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/songzhibin97/prommetrics/pkg/metrics"
)

// prometheusCounter adapts prometheus.Counter to metrics.Counter
type prometheusCounter struct {
	counter prometheus.Counter
}

func (c *prometheusCounter) Inc() {
	c.counter.Inc()
}

func (c *prometheusCounter) Add(delta float64) {
	c.counter.Add(delta)
}

func (c *prometheusCounter) Get() float64 {
	return writeMetric(c.counter).GetCounter().GetValue()
}

// prometheusGauge adapts prometheus.Gauge to metrics.Gauge
type prometheusGauge struct {
	gauge prometheus.Gauge
}

func (g *prometheusGauge) Set(value float64) {
	g.gauge.Set(value)
}

func (g *prometheusGauge) Inc() {
	g.gauge.Inc()
}

func (g *prometheusGauge) Dec() {
	g.gauge.Dec()
}

func (g *prometheusGauge) Add(delta float64) {
	g.gauge.Add(delta)
}

func (g *prometheusGauge) Sub(delta float64) {
	g.gauge.Sub(delta)
}

func (g *prometheusGauge) Get() float64 {
	return writeMetric(g.gauge).GetGauge().GetValue()
}

// observerMetric is satisfied by both prometheus.Histogram and prometheus.Summary.
type observerMetric interface {
	prometheus.Metric
	prometheus.Observer
}

// prometheusObserver holds what histograms and summaries share.
type prometheusObserver struct {
	observer observerMetric
	now      func() time.Time
}

func (o *prometheusObserver) Observe(value float64) {
	o.observer.Observe(value)
}

func (o *prometheusObserver) Update(value float64) {
	o.observer.Observe(value)
}

func (o *prometheusObserver) Time() metrics.Timer {
	return newTimer(o.observer, o.now)
}

// prometheusHistogram adapts prometheus.Histogram to metrics.Histogram
type prometheusHistogram struct {
	prometheusObserver
}

func (h *prometheusHistogram) GetCount() uint64 {
	return writeMetric(h.observer).GetHistogram().GetSampleCount()
}

func (h *prometheusHistogram) GetSum() float64 {
	return writeMetric(h.observer).GetHistogram().GetSampleSum()
}

func (h *prometheusHistogram) GetBuckets() []metrics.Bucket {
	return convertHistogramBuckets(writeMetric(h.observer).GetHistogram().GetBucket())
}

// prometheusSummary adapts prometheus.Summary to metrics.Summary
type prometheusSummary struct {
	prometheusObserver
}

func (s *prometheusSummary) GetCount() uint64 {
	return writeMetric(s.observer).GetSummary().GetSampleCount()
}

func (s *prometheusSummary) GetSum() float64 {
	return writeMetric(s.observer).GetSummary().GetSampleSum()
}

func (s *prometheusSummary) GetQuantiles() []metrics.Quantile {
	return convertSummaryQuantiles(writeMetric(s.observer).GetSummary().GetQuantile())
}

// errorCounter is a view of one series of the errors family.
type errorCounter struct {
	label   string
	counter prometheus.Counter
}

func (e *errorCounter) Label() string {
	return e.label
}

func (e *errorCounter) Count() float64 {
	return writeMetric(e.counter).GetCounter().GetValue()
}

var (
	_ metrics.Counter      = (*prometheusCounter)(nil)
	_ metrics.Gauge        = (*prometheusGauge)(nil)
	_ metrics.Histogram    = (*prometheusHistogram)(nil)
	_ metrics.Summary      = (*prometheusSummary)(nil)
	_ metrics.ErrorCounter = (*errorCounter)(nil)
)
