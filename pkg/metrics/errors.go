package metrics

import (
	"errors"
	"fmt"
)

// Common errors for metrics operations
var (
	// ErrTypeConflict indicates a name is already bound to another kind
	ErrTypeConflict = errors.New("already used for a different type of metric")

	// ErrInvalidName indicates an invalid metric name
	ErrInvalidName = errors.New("invalid metric name")

	// ErrInvalidLabel indicates an invalid label value
	ErrInvalidLabel = errors.New("invalid label name or value")

	// ErrRegistration indicates the backend rejected a collector
	ErrRegistration = errors.New("registration failed")

	// ErrUnknownKind indicates a Kind outside the known set
	ErrUnknownKind = errors.New("unknown metric kind")
)

// MetricError represents a metric-specific error
type MetricError struct {
	Op   string // operation that failed
	Name string // fully qualified metric name
	Kind Kind   // kind requested by the caller
	Err  error  // underlying error
}

// Error implements the error interface. Type conflicts render as
// "<name> is already used for a different type of metric".
func (e *MetricError) Error() string {
	if errors.Is(e.Err, ErrTypeConflict) {
		return fmt.Sprintf("%s is %v", e.Name, e.Err)
	}
	if e.Name != "" {
		return fmt.Sprintf("metrics: %s %s: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("metrics: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *MetricError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target
func (e *MetricError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewMetricError creates a new MetricError
func NewMetricError(op, name string, kind Kind, err error) *MetricError {
	return &MetricError{
		Op:   op,
		Name: name,
		Kind: kind,
		Err:  err,
	}
}

// TypeConflict builds the error returned when name is requested as want but
// already holds a metric of another kind.
func TypeConflict(name string, want Kind) *MetricError {
	return NewMetricError("get", name, want, ErrTypeConflict)
}

// IsMetricError checks if an error is a MetricError
func IsMetricError(err error) bool {
	var me *MetricError
	return errors.As(err, &me)
}

// IsTypeConflict reports whether err is a kind mismatch.
func IsTypeConflict(err error) bool {
	return errors.Is(err, ErrTypeConflict)
}
