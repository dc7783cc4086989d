package prometheus

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// timer observes the time elapsed since its creation, in seconds, the
// first time ObserveDuration is called.
type timer struct {
	observer prometheus.Observer
	now      func() time.Time
	start    time.Time

	once    sync.Once
	elapsed time.Duration
}

func newTimer(o prometheus.Observer, now func() time.Time) *timer {
	return &timer{
		observer: o,
		now:      now,
		start:    now(),
	}
}

func (t *timer) ObserveDuration() time.Duration {
	t.once.Do(func() {
		t.elapsed = t.now().Sub(t.start)
		t.observer.Observe(t.elapsed.Seconds())
	})
	return t.elapsed
}
