package prometheus

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/songzhibin97/prommetrics/pkg/metrics"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func helpOf(t *testing.T, g prometheus.Gatherer, name string) string {
	t.Helper()
	families, err := g.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f.GetHelp()
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return ""
}

func TestRegistry_Counter(t *testing.T) {
	r := New(Options{Prefix: "MyApp"})

	c, err := r.Counter("Sessions.Handled", "Sessions handled")
	require.NoError(t, err)
	c.Inc()
	c.Add(5)

	assert.Equal(t, 6.0, c.Get())
	assert.Equal(t, "Sessions handled", helpOf(t, r.Gatherer(), "myapp_sessions_handled"))
}

func TestRegistry_Gauge(t *testing.T) {
	r := New(Options{Prefix: "MyApp"})

	g, err := r.Gauge("sessions")
	require.NoError(t, err)
	g.Inc()
	g.Inc()
	g.Dec()
	g.Sub(3)
	assert.Equal(t, -2.0, g.Get())

	g.Set(7)
	g.Add(0.5)
	assert.Equal(t, 7.5, g.Get())
}

func TestRegistry_NormalizedNamesShareMetric(t *testing.T) {
	r := New(Options{Prefix: "MyApp"})

	a := r.MustCounter("Http Requests.Total")
	b := r.MustCounter("http-requests#total")
	a.Inc()
	b.Inc()

	assert.Same(t, a, b)
	assert.Equal(t, 2.0, a.Get())
	assert.Len(t, r.Entries(), 1)
}

func TestRegistry_TypeConflict(t *testing.T) {
	r := New(Options{Prefix: "MyApp"})

	c := r.MustCounter("xxx", "desc")
	c.Inc()

	for _, get := range []func() error{
		func() error { _, err := r.Gauge("xxx"); return err },
		func() error { _, err := r.Histogram("xxx"); return err },
		func() error { _, err := r.Summary("xxx"); return err },
		func() error { _, err := r.Timer("XXX"); return err },
	} {
		err := get()
		require.Error(t, err)
		assert.True(t, metrics.IsTypeConflict(err))
		assert.Equal(t, "myapp_xxx is already used for a different type of metric", err.Error())
	}

	again, err := r.Counter("xxx")
	require.NoError(t, err)
	assert.Same(t, c, again)
	assert.Equal(t, 1.0, again.Get())
	assert.Equal(t, []metrics.Entry{{Name: "myapp_xxx", Kind: metrics.CounterKind, Help: "desc"}}, r.Entries())
}

func TestRegistry_TypeConflictWithForeignCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{Name: "myapp_busy", Help: "myapp_busy"}))

	r := NewShared(reg, "MyApp")
	_, err := r.Counter("busy")
	require.Error(t, err)
	assert.ErrorIs(t, err, metrics.ErrTypeConflict)
	assert.Empty(t, r.Entries())

	g, err := r.Gauge("busy")
	require.NoError(t, err)
	g.Set(3)
	assert.Equal(t, 3.0, g.Get())
}

func TestRegistry_ConcurrentGetOrCreate(t *testing.T) {
	const n = 200
	r := New(Options{Prefix: "MyApp"})

	handles := make([]metrics.Counter, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			name := "x"
			if i%2 == 0 {
				name = "X"
			}
			c, err := r.Counter(name)
			if err != nil {
				return err
			}
			c.Inc()
			handles[i] = c
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, h := range handles {
		assert.Same(t, handles[0], h)
		assert.Equal(t, float64(n), h.Get())
	}
	count, err := testutil.GatherAndCount(r.Gatherer(), "myapp_x")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// slowRegisterer widens the window between a registration attempt and the
// publication of its result.
type slowRegisterer struct {
	*prometheus.Registry
	delay time.Duration
}

func (s slowRegisterer) Register(c prometheus.Collector) error {
	time.Sleep(s.delay)
	return s.Registry.Register(c)
}

func TestRegistry_ConcurrentCreateWithDifferentHelp(t *testing.T) {
	backend := prometheus.NewRegistry()
	r := New(Options{
		Registerer: slowRegisterer{Registry: backend, delay: 5 * time.Millisecond},
		Gatherer:   backend,
		Prefix:     "MyApp",
	})

	helps := []string{"A", "B", "C", "D"}
	handles := make([]metrics.Counter, len(helps))
	var g errgroup.Group
	for i, help := range helps {
		i, help := i, help
		g.Go(func() error {
			c, err := r.Counter("x", help)
			if err != nil {
				return err
			}
			handles[i] = c
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, h := range handles {
		assert.Same(t, handles[0], h)
	}
	assert.Contains(t, helps, helpOf(t, backend, "myapp_x"))

	count, err := testutil.GatherAndCount(backend, "myapp_x")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegistry_ConcurrentDistinctNames(t *testing.T) {
	r := New(Options{})
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	var g errgroup.Group
	for i := 0; i < 400; i++ {
		name := names[i%len(names)]
		g.Go(func() error {
			h, err := r.Histogram(name)
			if err != nil {
				return err
			}
			h.Observe(1)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	entries := r.Entries()
	require.Len(t, entries, len(names))
	for i, e := range entries {
		assert.Equal(t, names[i], e.Name)
		assert.Equal(t, metrics.HistogramKind, e.Kind)
		assert.Equal(t, uint64(50), r.MustHistogram(e.Name).GetCount())
	}
}

func TestRegistry_SummaryObserveAndTime(t *testing.T) {
	clock := newFakeClock()
	r := New(Options{Prefix: "MyApp", Now: clock.Now})

	s := r.MustSummary("request_latency")
	s.Observe(1.5)
	s.Update(0.5)

	timer := s.Time()
	clock.Advance(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, timer.ObserveDuration())

	assert.Equal(t, uint64(3), s.GetCount())
	assert.InDelta(t, 2.25, s.GetSum(), 1e-9)

	quantiles := s.GetQuantiles()
	require.Len(t, quantiles, len(metrics.SummaryObjectives))
	for _, q := range quantiles {
		_, ok := metrics.SummaryObjectives[q.Quantile]
		assert.True(t, ok, "unexpected quantile %v", q.Quantile)
	}
}

func TestRegistry_TimerObservesOnce(t *testing.T) {
	clock := newFakeClock()
	r := New(Options{Now: clock.Now})
	h := r.MustHistogram("work_seconds")

	timer := h.Time()
	clock.Advance(time.Second)
	first := timer.ObserveDuration()
	clock.Advance(time.Second)
	second := timer.ObserveDuration()

	assert.Equal(t, time.Second, first)
	assert.Equal(t, first, second)
	assert.Equal(t, uint64(1), h.GetCount())
	assert.InDelta(t, 1.0, h.GetSum(), 1e-9)
}

func TestRegistry_TimerDeferredOnEveryPath(t *testing.T) {
	clock := newFakeClock()
	r := New(Options{Now: clock.Now})
	h := r.MustHistogram("op_seconds")

	op := func(fail bool) (err error) {
		defer h.Time().ObserveDuration()
		clock.Advance(10 * time.Millisecond)
		if fail {
			return assert.AnError
		}
		return nil
	}

	assert.NoError(t, op(false))
	assert.Error(t, op(true))
	func() {
		defer func() { _ = recover() }()
		defer h.Time().ObserveDuration()
		clock.Advance(10 * time.Millisecond)
		panic("boom")
	}()

	assert.Equal(t, uint64(3), h.GetCount())
	assert.InDelta(t, 0.03, h.GetSum(), 1e-9)
}

func TestRegistry_HistogramBuckets(t *testing.T) {
	r := New(Options{Buckets: []float64{1, 5, 10}})
	h := r.MustHistogram("size")
	h.Observe(0.5)
	h.Observe(3)
	h.Observe(20)

	assert.Equal(t, []metrics.Bucket{
		{UpperBound: 1, Count: 1},
		{UpperBound: 5, Count: 2},
		{UpperBound: 10, Count: 2},
	}, h.GetBuckets())

	def := New(Options{}).MustHistogram("latency")
	assert.Len(t, def.GetBuckets(), len(prometheus.DefBuckets))
}

func TestRegistry_DescriptionPrecedence(t *testing.T) {
	r := New(Options{
		Prefix:       "MyApp",
		Descriptions: metrics.Descriptions{"myapp_foo": "Mapped", "MyApp.Bar": "Mapped bar"},
	})

	r.MustGauge("foo")
	r.MustGauge("baz", "Explicit")
	r.MustGauge("bar")
	r.MustGauge("qux")
	r.MustGauge("empty", "")

	assert.Equal(t, "Mapped", helpOf(t, r.Gatherer(), "myapp_foo"))
	assert.Equal(t, "Explicit", helpOf(t, r.Gatherer(), "myapp_baz"))
	assert.Equal(t, "Mapped bar", helpOf(t, r.Gatherer(), "myapp_bar"))
	assert.Equal(t, "myapp_qux", helpOf(t, r.Gatherer(), "myapp_qux"))
	assert.Equal(t, "myapp_empty", helpOf(t, r.Gatherer(), "myapp_empty"))

	explicit := New(Options{Prefix: "MyApp", Descriptions: metrics.Descriptions{"myapp_foo": "Mapped"}})
	explicit.MustGauge("foo", "Explicit")
	assert.Equal(t, "Explicit", helpOf(t, explicit.Gatherer(), "myapp_foo"))
}

func TestRegistry_SetDescriptions(t *testing.T) {
	r := New(Options{Prefix: "MyApp"})
	r.MustCounter("before")

	r.SetDescriptions(metrics.Descriptions{"myapp_before": "ignored", "myapp_after": "After"})
	r.MustCounter("after")

	assert.Equal(t, "myapp_before", helpOf(t, r.Gatherer(), "myapp_before"))
	assert.Equal(t, "After", helpOf(t, r.Gatherer(), "myapp_after"))

	r.SetDescriptions(nil)
	r.MustCounter("later")
	assert.Equal(t, "myapp_later", helpOf(t, r.Gatherer(), "myapp_later"))
}

func TestRegistry_ErrorFamily(t *testing.T) {
	r := New(Options{Prefix: "MyApp", Descriptions: metrics.Descriptions{"myapp_errors": "Errors by type"}})

	first := r.MustError("salesforce")
	assert.Equal(t, 1.0, first.Count())
	assert.Equal(t, 2.0, r.MustError("salesforce").Count())
	assert.Equal(t, 1.0, r.MustError("stripe").Count())
	assert.Equal(t, 2.0, first.Count())
	assert.Equal(t, "salesforce", first.Label())

	expected := `
# HELP myapp_errors Errors by type
# TYPE myapp_errors counter
myapp_errors{error_type="salesforce"} 2
myapp_errors{error_type="stripe"} 1
`
	require.NoError(t, testutil.GatherAndCompare(r.Gatherer(), strings.NewReader(expected), "myapp_errors"))
	assert.Equal(t, []metrics.Entry{{Name: "myapp_errors", Kind: metrics.CounterKind, Help: "Errors by type"}}, r.Entries())
}

func TestRegistry_ErrorLabelPolicy(t *testing.T) {
	normalized := New(Options{})
	normalized.MustError("Sales.Force")
	assert.Equal(t, 2.0, normalized.MustError("sales_force").Count())

	verbatim := New(Options{ErrorLabels: metrics.LabelsVerbatim})
	e := verbatim.MustError("Sales.Force")
	assert.Equal(t, "Sales.Force", e.Label())
	assert.Equal(t, 1.0, verbatim.MustError("sales_force").Count())
	assert.Equal(t, 1.0, e.Count())

	_, err := verbatim.Error("")
	assert.ErrorIs(t, err, metrics.ErrInvalidLabel)
}

func TestRegistry_ErrorsNameReserved(t *testing.T) {
	r := New(Options{Prefix: "MyApp"})

	_, err := r.Counter("errors")
	assert.ErrorIs(t, err, metrics.ErrTypeConflict)

	r.MustError("x")
	_, err = r.Gauge("Errors")
	assert.ErrorIs(t, err, metrics.ErrTypeConflict)
}

func TestRegistry_InvalidName(t *testing.T) {
	r := New(Options{})

	for _, name := range []string{"", "1st", "with/slash", "semi;colon"} {
		_, err := r.Counter(name)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, metrics.ErrInvalidName, name)
	}
	assert.Empty(t, r.Entries())
}

func TestRegistry_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()

	a := NewShared(reg, "MyApp")
	b := NewShared(reg, "MyApp")
	other := NewShared(reg, "Other")

	a.MustCounter("requests").Inc()
	b.MustCounter("requests").Inc()
	other.MustCounter("requests").Inc()
	a.MustError("timeout")
	b.MustError("timeout")

	assert.Equal(t, 2.0, a.MustCounter("requests").Get())
	assert.Equal(t, 1.0, other.MustCounter("requests").Get())
	assert.Equal(t, 2.0, testutil.ToFloat64(a.errors.WithLabelValues("timeout")))

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Equal(t, []string{"myapp_errors", "myapp_requests", "other_requests"}, names)
}

func TestRegistry_SharedRegistryHelpMismatch(t *testing.T) {
	reg := prometheus.NewRegistry()

	NewShared(reg, "MyApp").MustCounter("jobs", "one")
	_, err := NewShared(reg, "MyApp").Counter("jobs", "two")

	require.Error(t, err)
	assert.ErrorIs(t, err, metrics.ErrRegistration)
	assert.False(t, metrics.IsTypeConflict(err))
}

func TestRegistry_PrivateRegistriesAreIsolated(t *testing.T) {
	a := New(Options{})
	b := New(Options{})

	a.MustCounter("hits").Inc()
	b.MustCounter("hits").Add(3)

	assert.Equal(t, 1.0, a.MustCounter("hits").Get())
	assert.Equal(t, 3.0, b.MustCounter("hits").Get())
}

func TestRegistry_RegisterCollector(t *testing.T) {
	r := New(Options{})
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "custom_total", Help: "custom"})

	require.NoError(t, r.RegisterCollector(c))
	require.NoError(t, r.RegisterCollector(c))

	clash := prometheus.NewCounter(prometheus.CounterOpts{Name: "custom_total", Help: "different"})
	assert.ErrorIs(t, r.RegisterCollector(clash), metrics.ErrRegistration)
}

func TestRegistry_MustPanics(t *testing.T) {
	r := New(Options{})
	r.MustCounter("taken")

	assert.Panics(t, func() { r.MustGauge("taken") })
	assert.Panics(t, func() { r.MustHistogram("taken") })
	assert.Panics(t, func() { r.MustSummary("taken") })
	assert.Panics(t, func() { r.MustTimer("taken") })
	assert.Panics(t, func() { r.MustCounter("bad/name") })
	assert.NotPanics(t, func() { r.MustCounter("taken") })
}

func TestRegistry_Prefix(t *testing.T) {
	assert.Equal(t, "", New(Options{}).Prefix())
	assert.Equal(t, "my_app_", New(Options{Prefix: "My App"}).Prefix())

	r := New(Options{})
	r.MustCounter("plain")
	assert.Equal(t, "plain", r.Entries()[0].Name)
}
