package metrics

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Metric name validation regex
var metricNameRegex = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)

var nameReplacer = strings.NewReplacer(".", "_", "-", "_", "#", "_", " ", "_")

// NormalizeName maps a caller supplied name to the form used as a registry
// key and sent to the backend: '.', '-', '#' and ' ' become '_' and the
// result is lowercased. No other characters are touched, so the result may
// still be rejected by ValidateMetricName.
func NormalizeName(name string) string {
	return strings.ToLower(nameReplacer.Replace(name))
}

// Prefix returns the normalized form of prefix with a trailing '_', or ""
// when prefix is empty.
func Prefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	return NormalizeName(prefix) + "_"
}

// QualifiedName joins an already computed prefix (see Prefix) and a raw name.
func QualifiedName(prefix, name string) string {
	return prefix + NormalizeName(name)
}

// ValidateMetricName validates a metric name according to Prometheus conventions
func ValidateMetricName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: metric name cannot be empty", ErrInvalidName)
	}

	if !metricNameRegex.MatchString(name) {
		return fmt.Errorf("%w: metric name '%s' is invalid", ErrInvalidName, name)
	}

	return nil
}

// ValidateLabelValue rejects label values the backend cannot carry.
func ValidateLabelValue(value string) error {
	if value == "" {
		return fmt.Errorf("%w: label value cannot be empty", ErrInvalidLabel)
	}
	return nil
}

// TitleCase splits s on '-', '_' and '.', capitalises the first letter of
// each part and joins them: "audit-service" becomes "AuditService".
func TitleCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	var b strings.Builder
	for _, p := range parts {
		first, size := utf8.DecodeRuneInString(p)
		b.WriteRune(unicode.ToTitle(first))
		b.WriteString(p[size:])
	}
	return b.String()
}
