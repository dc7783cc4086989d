package log

import (
	"fmt"
	"strings"
	"time"
)

// Logger defines the interface for structured logging operations.
//
// Example usage:
//
//	logger.Info("metric created", String(FieldMetric, name), String(FieldKind, "counter"))
//	child := logger.With(String(FieldPrefix, "myapp_"))
type Logger interface {
	// Debug logs a debug message with optional structured fields.
	Debug(msg string, fields ...Field)

	// Info logs an informational message with optional structured fields.
	Info(msg string, fields ...Field)

	// Warn logs a warning message with optional structured fields.
	Warn(msg string, fields ...Field)

	// Error logs an error message with optional structured fields.
	Error(msg string, fields ...Field)

	// With creates a new logger instance with additional structured fields.
	// The returned logger will include the provided fields in all subsequent log entries.
	With(fields ...Field) Logger
}

// Level represents the logging level, determining which messages should be logged.
// Lower numeric values represent more verbose logging levels.
type Level int

const (
	// DebugLevel is the most verbose logging level, used for detailed diagnostic information.
	DebugLevel Level = iota
	// InfoLevel is used for general informational messages about program execution.
	InfoLevel
	// WarnLevel is used for warning messages that indicate potential issues.
	WarnLevel
	// ErrorLevel is used for error messages that indicate failures.
	ErrorLevel
)

// String returns the string representation of the logging level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a case-insensitive level name such as "debug" or "WARN".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// Field represents a structured logging field with a key-value pair.
type Field struct {
	Key   string      `json:"key"`   // The field name/key
	Value interface{} `json:"value"` // The field value (can be any type)
}

// String creates a string field for structured logging.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an integer field for structured logging.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Float64 creates a float64 field for structured logging.
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a boolean field for structured logging.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration creates a duration field for structured logging.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Error creates an error field for structured logging.
// This is a convenience function that uses "error" as the key.
func Error(err error) Field {
	return Field{Key: FieldError, Value: err}
}

// Any creates a field with any value type for structured logging.
// This should be used when the value type is not covered by other field functions.
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
