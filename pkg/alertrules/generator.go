package alertrules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/songzhibin97/prommetrics/pkg/log"
	"github.com/songzhibin97/prommetrics/pkg/metrics"
)

// Version selects the rule file format.
type Version int

const (
	// V1 is the Prometheus 1.x "ALERT ... IF ..." text format.
	V1 Version = iota + 1
	// V2 is the Prometheus 2.x YAML format.
	V2
)

// String returns the string representation of Version
func (v Version) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	default:
		return "unknown"
	}
}

// ParseVersion accepts "v1", "1", "1.x" and the same spellings for v2.
func ParseVersion(s string) (Version, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v1", "1", "1.x", "v1.x":
		return V1, nil
	case "v2", "2", "2.x", "v2.x":
		return V2, nil
	default:
		return 0, fmt.Errorf("alertrules: unknown format version %q", s)
	}
}

// Annotation and label names set by the generator.
const (
	LabelSeverity         = "severity"
	AnnotationSummary     = "summary"
	AnnotationDescription = "description"
	AnnotationDocLink     = "confluence_link"
)

// Generator renders rules for the metrics of one registry prefix.
type Generator struct {
	// Prefix is the raw registry prefix, e.g. "MyApp".
	Prefix string
	// Group names the 2.x rule group.
	Group string
	// DocBaseURL completes documentation links starting with '/'.
	DocBaseURL string

	Logger log.Logger
}

// Generate renders rules in the given format.
func (g Generator) Generate(v Version, rules ...Rule) (string, error) {
	rules = append([]Rule(nil), rules...)
	for i := range rules {
		if err := rules[i].Validate(); err != nil {
			return "", err
		}
	}

	logger := g.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	logger.Debug("rendering alert rules",
		log.String(log.FieldGroup, g.Group),
		log.String(log.FieldVersion, v.String()),
		log.Int(log.FieldRules, len(rules)))

	switch v {
	case V1:
		return g.renderV1(rules)
	case V2:
		return g.renderV2(rules)
	default:
		return "", fmt.Errorf("alertrules: unknown format version %d", v)
	}
}

// Expr returns the rule expression with $1..$n replaced by the fully
// qualified metric names. Higher placeholders are replaced first so that
// $1 never rewrites part of $10.
func (g Generator) Expr(r Rule) string {
	prefix := metrics.Prefix(g.Prefix)
	expr := r.Expr
	for i := len(r.MetricNames); i >= 1; i-- {
		name := metrics.NormalizeName(r.MetricNames[i-1])
		if !strings.HasPrefix(name, prefix) {
			name = prefix + name
		}
		expr = strings.ReplaceAll(expr, "$"+strconv.Itoa(i), name)
	}
	return expr
}

// Labels returns severity followed by the rule's own labels. The first
// occurrence of a name wins.
func (g Generator) Labels(r Rule) []Pair {
	severity := r.Severity
	if severity == "" {
		severity = SeverityPage
	}
	labels := append([]Pair{{Name: LabelSeverity, Value: strings.ToLower(string(severity))}}, r.Labels...)
	return dedupe(labels)
}

// Annotations returns summary, description and the documentation link
// followed by the rule's own annotations. The first occurrence of a name
// wins. An empty documentation link is omitted.
func (g Generator) Annotations(r Rule) []Pair {
	anns := []Pair{
		{Name: AnnotationSummary, Value: r.Summary},
		{Name: AnnotationDescription, Value: r.Description},
	}
	if link := g.docLink(r.DocLink); link != "" {
		anns = append(anns, Pair{Name: AnnotationDocLink, Value: link})
	}
	return dedupe(append(anns, r.Annotations...))
}

func (g Generator) docLink(link string) string {
	if strings.HasPrefix(link, "/") && g.DocBaseURL != "" {
		return strings.TrimSuffix(g.DocBaseURL, "/") + link
	}
	return link
}

// AlertName is the 2.x alert name: TitleCase(prefix) + TitleCase(rule name).
func (g Generator) AlertName(r Rule) string {
	return metrics.TitleCase(g.Prefix) + metrics.TitleCase(r.Name)
}
