package stdout

import (
	"io"
	"testing"

	"github.com/songzhibin97/prommetrics/pkg/log"
)

func newDiscard(level log.Level) *Logger {
	cfg := DefaultConfig()
	cfg.Level = level
	cfg.Output = io.Discard
	return New(cfg)
}

// BenchmarkLogger_Info benchmarks the Info method.
func BenchmarkLogger_Info(b *testing.B) {
	logger := newDiscard(log.InfoLevel)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			logger.Info("metric created", log.MetricFields("myapp_requests", "counter", "Requests")...)
		}
	})
}

// BenchmarkLogger_With benchmarks the With method.
func BenchmarkLogger_With(b *testing.B) {
	logger := newDiscard(log.InfoLevel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.With(log.String(log.FieldComponent, "registry")).Info("message")
	}
}

// BenchmarkLevelFiltering measures a debug call on an info logger, the
// cost paid by every registry lookup.
func BenchmarkLevelFiltering(b *testing.B) {
	logger := newDiscard(log.InfoLevel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug("filtered", log.String(log.FieldMetric, "myapp_requests"))
	}
}
