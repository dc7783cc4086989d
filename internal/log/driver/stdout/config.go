package stdout

import (
	"io"
	"os"
	"time"

	"github.com/songzhibin97/prommetrics/pkg/log"
)

// Config represents the configuration options for Logger.
type Config struct {
	// Level sets the minimum logging level
	Level log.Level `json:"level" yaml:"level"`

	// TimeFormat specifies the time format for timestamps
	// Default: RFC3339
	TimeFormat string `json:"time_format,omitempty" yaml:"time_format,omitempty"`

	// EnableCaller adds caller information to log entries
	EnableCaller bool `json:"enable_caller" yaml:"enable_caller"`

	// Console switches from JSON to zap's human readable console encoding
	Console bool `json:"console" yaml:"console"`

	// Output receives the encoded entries. Defaults to os.Stderr so that
	// command output written to stdout stays clean.
	Output io.Writer `json:"-" yaml:"-"`
}

// DefaultConfig returns a default configuration for Logger.
func DefaultConfig() *Config {
	return &Config{
		Level:      log.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stderr,
	}
}
