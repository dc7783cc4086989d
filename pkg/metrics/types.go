package metrics

// Kind represents the type of a metric. A metric name is bound to exactly one
// Kind for the lifetime of the registry that created it.
type Kind int

const (
	// CounterKind represents a monotonic counter
	CounterKind Kind = iota
	// GaugeKind represents a gauge that can go up and down
	GaugeKind
	// HistogramKind represents a bucketed histogram
	HistogramKind
	// SummaryKind represents a summary with fixed quantile objectives
	SummaryKind
)

// Kinds lists every metric kind a registry can create.
var Kinds = []Kind{CounterKind, GaugeKind, HistogramKind, SummaryKind}

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case CounterKind:
		return "counter"
	case GaugeKind:
		return "gauge"
	case HistogramKind:
		return "histogram"
	case SummaryKind:
		return "summary"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k >= CounterKind && k <= SummaryKind
}

// ErrorsFamilyName is the unprefixed name of the shared error counter family.
const ErrorsFamilyName = "errors"

// ErrorTypeLabel is the single label dimension of the error counter family.
const ErrorTypeLabel = "error_type"

// SummaryObjectives are the quantile estimates every summary is created with:
// median, 75th, 90th, 95th, 99th and 99.9th percentiles, each with a 1%
// tolerated rank error. They are not configurable.
var SummaryObjectives = map[float64]float64{
	0.5:   0.01,
	0.75:  0.01,
	0.9:   0.01,
	0.95:  0.01,
	0.99:  0.01,
	0.999: 0.01,
}

// Objectives returns a copy of SummaryObjectives safe to hand to a backend.
func Objectives() map[float64]float64 {
	objectives := make(map[float64]float64, len(SummaryObjectives))
	for q, e := range SummaryObjectives {
		objectives[q] = e
	}
	return objectives
}

// LabelPolicy controls how error label values are treated before use.
type LabelPolicy int

const (
	// LabelsNormalized runs label values through NormalizeName.
	LabelsNormalized LabelPolicy = iota
	// LabelsVerbatim uses label values exactly as supplied.
	LabelsVerbatim
)

// String returns the string representation of LabelPolicy
func (p LabelPolicy) String() string {
	switch p {
	case LabelsNormalized:
		return "normalized"
	case LabelsVerbatim:
		return "verbatim"
	default:
		return "unknown"
	}
}

// Apply returns value transformed according to the policy.
func (p LabelPolicy) Apply(value string) string {
	if p == LabelsVerbatim {
		return value
	}
	return NormalizeName(value)
}

// Entry describes one metric held by a registry.
type Entry struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
	Help string `json:"help"`
}
