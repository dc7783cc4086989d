package prometheus

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/songzhibin97/prommetrics/pkg/log"
	"github.com/songzhibin97/prommetrics/pkg/metrics"
)

// Registry implements metrics.Registry on top of a prometheus.Registerer.
//
// The name to metric map is a sync.Map: lookups of existing metrics take no
// lock. A miss takes createMu, checks the map again, then builds, registers
// and publishes the collector, so concurrent first use of a name registers
// exactly once even when the callers resolve different help text.
type Registry struct {
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
	prefix     string
	buckets    []float64
	labels     metrics.LabelPolicy
	now        func() time.Time
	logger     log.Logger

	descriptions atomic.Pointer[metrics.Descriptions]

	// qualified name -> *entry
	metrics  sync.Map
	createMu sync.Mutex

	errMu      sync.Mutex
	errors     *prometheus.CounterVec
	errorsHelp string
}

type entry struct {
	name   string
	kind   metrics.Kind
	help   string
	handle any
}

func (e *entry) as(kind metrics.Kind) (any, error) {
	if e.kind != kind {
		return nil, metrics.TypeConflict(e.name, kind)
	}
	return e.handle, nil
}

// New creates a Registry. With a zero Options it owns a private
// prometheus registry and uses no prefix.
func New(opts Options) *Registry {
	opts = opts.withDefaults()
	r := &Registry{
		registerer: opts.Registerer,
		gatherer:   opts.Gatherer,
		prefix:     metrics.Prefix(opts.Prefix),
		buckets:    opts.Buckets,
		labels:     opts.ErrorLabels,
		now:        opts.Now,
	}
	r.logger = opts.Logger.With(log.String(log.FieldPrefix, r.prefix))
	r.SetDescriptions(opts.Descriptions)
	return r
}

// NewShared creates a Registry that registers into reg. Registries sharing
// reg must use distinct prefixes unless they are meant to share metrics.
func NewShared(reg *prometheus.Registry, prefix string) *Registry {
	return New(Options{Registerer: reg, Gatherer: reg, Prefix: prefix})
}

// Prefix returns the normalized prefix including its trailing '_'.
func (r *Registry) Prefix() string {
	return r.prefix
}

// Registerer returns the backend collectors are registered with.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.registerer
}

// Gatherer returns the backend gatherer, or nil when the Registerer given
// in Options could not gather.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.gatherer
}

// SetDescriptions replaces the description table. Keys are normalized.
// Metrics already created keep their help text.
func (r *Registry) SetDescriptions(d metrics.Descriptions) {
	table := metrics.NewDescriptions(d)
	r.descriptions.Store(&table)
}

func (r *Registry) describe(name string, desc []string) string {
	var table metrics.Descriptions
	if p := r.descriptions.Load(); p != nil {
		table = *p
	}
	return metrics.ResolveDescription(desc, name, name, table)
}

// Counter returns the counter for name, creating it on first use
func (r *Registry) Counter(name string, desc ...string) (metrics.Counter, error) {
	h, err := r.getOrCreate(metrics.CounterKind, name, desc)
	if err != nil {
		return nil, err
	}
	return h.(metrics.Counter), nil
}

// Gauge returns the gauge for name, creating it on first use
func (r *Registry) Gauge(name string, desc ...string) (metrics.Gauge, error) {
	h, err := r.getOrCreate(metrics.GaugeKind, name, desc)
	if err != nil {
		return nil, err
	}
	return h.(metrics.Gauge), nil
}

// Histogram returns the histogram for name, creating it on first use
func (r *Registry) Histogram(name string, desc ...string) (metrics.Histogram, error) {
	h, err := r.getOrCreate(metrics.HistogramKind, name, desc)
	if err != nil {
		return nil, err
	}
	return h.(metrics.Histogram), nil
}

// Summary returns the summary for name, creating it on first use
func (r *Registry) Summary(name string, desc ...string) (metrics.Summary, error) {
	h, err := r.getOrCreate(metrics.SummaryKind, name, desc)
	if err != nil {
		return nil, err
	}
	return h.(metrics.Summary), nil
}

// Timer is an alias of Summary
func (r *Registry) Timer(name string, desc ...string) (metrics.Summary, error) {
	return r.Summary(name, desc...)
}

func (r *Registry) getOrCreate(kind metrics.Kind, raw string, desc []string) (any, error) {
	name := metrics.QualifiedName(r.prefix, raw)

	if v, ok := r.metrics.Load(name); ok {
		return v.(*entry).as(kind)
	}

	b, ok := builders[kind]
	if !ok {
		return nil, metrics.NewMetricError("get", name, kind, metrics.ErrUnknownKind)
	}
	if name == r.errorsName() {
		return nil, metrics.TypeConflict(name, kind)
	}
	if err := metrics.ValidateMetricName(name); err != nil {
		return nil, metrics.NewMetricError("create", name, kind, err)
	}

	r.createMu.Lock()
	defer r.createMu.Unlock()

	if v, ok := r.metrics.Load(name); ok {
		r.logger.Debug("metric created concurrently, using published metric", log.String(log.FieldMetric, name))
		return v.(*entry).as(kind)
	}

	help := r.describe(name, desc)
	c, err := r.registerOrReuse(name, kind, b.build(r, name, help), is(kind))
	if err != nil {
		return nil, err
	}

	e := &entry{
		name:   name,
		kind:   kind,
		help:   help,
		handle: b.wrap(r, c),
	}
	r.metrics.Store(name, e)
	r.logger.Debug("metric created", log.MetricFields(name, kind.String(), help)...)
	return e.as(kind)
}

// registerOrReuse registers c. When the backend already holds an equal
// collector it is returned instead, provided accept approves it.
func (r *Registry) registerOrReuse(name string, kind metrics.Kind, c prometheus.Collector, accept func(prometheus.Collector) bool) (prometheus.Collector, error) {
	err := r.registerer.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if !accept(are.ExistingCollector) {
			return nil, metrics.TypeConflict(name, kind)
		}
		r.logger.Debug("reusing registered collector", log.String(log.FieldMetric, name))
		return are.ExistingCollector, nil
	}

	r.logger.Warn("registration rejected", log.String(log.FieldMetric, name), log.Error(err))
	return nil, metrics.NewMetricError("register", name, kind, fmt.Errorf("%w: %w", metrics.ErrRegistration, err))
}

// RegisterCollector registers an arbitrary collector, such as
// collectors.NewGoCollector(). Registering an equal collector twice is not
// an error.
func (r *Registry) RegisterCollector(c prometheus.Collector) error {
	_, err := r.registerOrReuse("", metrics.CounterKind, c, func(prometheus.Collector) bool { return true })
	return err
}

func (r *Registry) errorsName() string {
	return r.prefix + metrics.ErrorsFamilyName
}

// errorFamily creates the errors counter family on first use.
func (r *Registry) errorFamily(desc []string) (*prometheus.CounterVec, error) {
	r.errMu.Lock()
	defer r.errMu.Unlock()

	if r.errors != nil {
		return r.errors, nil
	}

	name := r.errorsName()
	help := r.describe(name, desc)
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, []string{metrics.ErrorTypeLabel})
	c, err := r.registerOrReuse(name, metrics.CounterKind, vec, isCounterVec)
	if err != nil {
		return nil, err
	}
	r.errors = c.(*prometheus.CounterVec)
	r.errorsHelp = help
	r.logger.Debug("error family created", log.MetricFields(name, metrics.CounterKind.String(), help)...)
	return r.errors, nil
}

// Error increments the errors family series labelled errorType and returns
// a view of it. desc is only used if this call creates the family.
func (r *Registry) Error(errorType string, desc ...string) (metrics.ErrorCounter, error) {
	family, err := r.errorFamily(desc)
	if err != nil {
		return nil, err
	}

	label := r.labels.Apply(errorType)
	if err := metrics.ValidateLabelValue(label); err != nil {
		return nil, metrics.NewMetricError("error", r.errorsName(), metrics.CounterKind, err)
	}
	c, err := family.GetMetricWithLabelValues(label)
	if err != nil {
		return nil, metrics.NewMetricError("error", r.errorsName(), metrics.CounterKind, fmt.Errorf("%w: %w", metrics.ErrInvalidLabel, err))
	}
	c.Inc()
	return &errorCounter{label: label, counter: c}, nil
}

// Entries returns the metrics held by r, sorted by name. The errors family
// is included once it exists.
func (r *Registry) Entries() []metrics.Entry {
	var entries []metrics.Entry
	r.metrics.Range(func(_, v any) bool {
		e := v.(*entry)
		entries = append(entries, metrics.Entry{Name: e.name, Kind: e.kind, Help: e.help})
		return true
	})

	r.errMu.Lock()
	if r.errors != nil {
		entries = append(entries, metrics.Entry{
			Name: r.errorsName(),
			Kind: metrics.CounterKind,
			Help: r.errorsHelp,
		})
	}
	r.errMu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

var _ metrics.Registry = (*Registry)(nil)
