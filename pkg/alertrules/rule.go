// Package alertrules renders Prometheus alerting rule files from declarative
// rule descriptors. Metric names referenced by a rule are completed with the
// same normalization and prefix the metric registry applies, so a rule
// written against "requests per second" alerts on myapp_requests_per_second.
package alertrules

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Severity of an alert, emitted as the severity label.
type Severity string

const (
	SeverityPage    Severity = "page"
	SeverityWarning Severity = "warning"
)

// Pair is one ordered label or annotation.
type Pair struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// Rule describes one alert.
type Rule struct {
	Name     string `yaml:"name"`
	Duration string `yaml:"duration"`

	// MetricNames fill the $1, $2, ... placeholders of Expr.
	MetricNames []string `yaml:"metricNames"`
	Expr        string   `yaml:"rule"`

	Severity Severity `yaml:"severity"`
	Labels   []Pair   `yaml:"labels"`

	Summary     string `yaml:"summary"`
	Description string `yaml:"description"`
	// DocLink is emitted as the confluence_link annotation. A link starting
	// with '/' is joined to the generator's DocBaseURL.
	DocLink     string `yaml:"confluenceLink"`
	Annotations []Pair `yaml:"annotations"`
}

// RuleSet is a named group of rules, the unit a rules file is built from.
type RuleSet struct {
	Group string `yaml:"groupName"`
	Rules []Rule `yaml:"rules"`
}

var (
	// ErrInvalidRule is wrapped by every validation failure.
	ErrInvalidRule = errors.New("invalid alert rule")

	placeholderRegex = regexp.MustCompile(`\$(\d+)`)
)

// Validate checks the rule and fills defaults: an empty severity becomes
// SeverityPage and severities are lowercased.
func (r *Rule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRule)
	}
	if r.Duration == "" {
		return fmt.Errorf("%w: %s: duration is required", ErrInvalidRule, r.Name)
	}
	if r.Expr == "" {
		return fmt.Errorf("%w: %s: rule expression is required", ErrInvalidRule, r.Name)
	}

	r.Severity = Severity(strings.ToLower(string(r.Severity)))
	switch r.Severity {
	case "":
		r.Severity = SeverityPage
	case SeverityPage, SeverityWarning:
	default:
		return fmt.Errorf("%w: %s: unknown severity %q", ErrInvalidRule, r.Name, r.Severity)
	}

	for _, m := range placeholderRegex.FindAllStringSubmatch(r.Expr, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > len(r.MetricNames) {
			return fmt.Errorf("%w: %s: placeholder %s has no metric name", ErrInvalidRule, r.Name, m[0])
		}
	}
	return nil
}

// Validate validates every rule of the set.
func (s *RuleSet) Validate() error {
	if len(s.Rules) == 0 {
		return fmt.Errorf("%w: rule set %q has no rules", ErrInvalidRule, s.Group)
	}
	for i := range s.Rules {
		if err := s.Rules[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// dedupe keeps the first occurrence of every name, preserving order.
func dedupe(pairs []Pair) []Pair {
	seen := make(map[string]struct{}, len(pairs))
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if _, ok := seen[p.Name]; ok {
			continue
		}
		seen[p.Name] = struct{}{}
		out = append(out, p)
	}
	return out
}
