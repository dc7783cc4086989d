package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/songzhibin97/prommetrics/pkg/metrics"
)

// writeMetric snapshots a single-series metric. A failed Write yields an
// empty snapshot so that read-back accessors report zero values.
func writeMetric(m prometheus.Metric) *dto.Metric {
	out := &dto.Metric{}
	if err := m.Write(out); err != nil {
		return &dto.Metric{}
	}
	return out
}

// kindOf classifies a collector registered elsewhere. The Go interfaces of
// a Counter and a Gauge overlap, as do Histogram and Summary, so the kind
// is read from the written sample instead of a type assertion. Collectors
// that are not single metrics (vectors, custom collectors) are unknown.
func kindOf(c prometheus.Collector) (metrics.Kind, bool) {
	m, ok := c.(prometheus.Metric)
	if !ok {
		return 0, false
	}
	out := &dto.Metric{}
	if err := m.Write(out); err != nil {
		return 0, false
	}
	switch {
	case out.GetCounter() != nil:
		return metrics.CounterKind, true
	case out.GetGauge() != nil:
		return metrics.GaugeKind, true
	case out.GetHistogram() != nil:
		return metrics.HistogramKind, true
	case out.GetSummary() != nil:
		return metrics.SummaryKind, true
	default:
		return 0, false
	}
}

// convertHistogramBuckets converts Prometheus buckets to metrics.Bucket
func convertHistogramBuckets(promBuckets []*dto.Bucket) []metrics.Bucket {
	buckets := make([]metrics.Bucket, len(promBuckets))
	for i, promBucket := range promBuckets {
		buckets[i] = metrics.Bucket{
			UpperBound: promBucket.GetUpperBound(),
			Count:      promBucket.GetCumulativeCount(),
		}
	}
	return buckets
}

// convertSummaryQuantiles converts Prometheus quantiles to metrics.Quantile
func convertSummaryQuantiles(promQuantiles []*dto.Quantile) []metrics.Quantile {
	quantiles := make([]metrics.Quantile, len(promQuantiles))
	for i, promQuantile := range promQuantiles {
		quantiles[i] = metrics.Quantile{
			Quantile: promQuantile.GetQuantile(),
			Value:    promQuantile.GetValue(),
		}
	}
	return quantiles
}
