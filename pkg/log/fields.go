package log

// Standard field names for consistent logging across the module
const (
	// Core fields
	FieldError     = "error"
	FieldComponent = "component"

	// Registry fields
	FieldMetric    = "metric"
	FieldKind      = "kind"
	FieldHelp      = "help"
	FieldPrefix    = "prefix"
	FieldErrorType = "error_type"

	// Description table fields
	FieldPath    = "path"
	FieldEntries = "entries"
	FieldOp      = "op"

	// Alert rule fields
	FieldRule    = "rule"
	FieldRules   = "rules"
	FieldGroup   = "group"
	FieldVersion = "version"
)

// MetricFields creates the fields logged for a registry decision about one metric.
func MetricFields(name, kind, help string) []Field {
	return []Field{
		String(FieldMetric, name),
		String(FieldKind, kind),
		String(FieldHelp, help),
	}
}

// FileFields creates the fields logged when a file is read or watched.
func FileFields(path, op string, entries int) []Field {
	return []Field{
		String(FieldPath, path),
		String(FieldOp, op),
		Int(FieldEntries, entries),
	}
}
