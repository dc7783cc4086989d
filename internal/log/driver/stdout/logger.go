// Package stdout implements log.Logger with zap.
package stdout

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/songzhibin97/prommetrics/pkg/log"
)

// Logger implements the log.Logger interface on top of a zap.Logger.
type Logger struct {
	zapLogger *zap.Logger
}

// New creates a new Logger with the given configuration.
func New(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	out := config.Output
	if out == nil {
		out = os.Stderr
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     getTimeEncoder(config.TimeFormat),
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if config.Console {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), convertLogLevel(config.Level))

	var options []zap.Option
	if config.EnableCaller {
		options = append(options, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	return &Logger{zapLogger: zap.New(core, options...)}
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(msg string, fields ...log.Field) {
	l.zapLogger.Debug(msg, convertToZapFields(fields)...)
}

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(msg string, fields ...log.Field) {
	l.zapLogger.Info(msg, convertToZapFields(fields)...)
}

// Warn logs a warning message with optional structured fields.
func (l *Logger) Warn(msg string, fields ...log.Field) {
	l.zapLogger.Warn(msg, convertToZapFields(fields)...)
}

// Error logs an error message with optional structured fields.
func (l *Logger) Error(msg string, fields ...log.Field) {
	l.zapLogger.Error(msg, convertToZapFields(fields)...)
}

// With creates a new logger instance with additional structured fields.
func (l *Logger) With(fields ...log.Field) log.Logger {
	return &Logger{zapLogger: l.zapLogger.With(convertToZapFields(fields)...)}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

// convertLogLevel converts our log.Level to zap's zapcore.Level.
func convertLogLevel(level log.Level) zapcore.Level {
	switch level {
	case log.DebugLevel:
		return zapcore.DebugLevel
	case log.InfoLevel:
		return zapcore.InfoLevel
	case log.WarnLevel:
		return zapcore.WarnLevel
	case log.ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// convertToZapFields converts our log.Field slice to zap.Field slice.
func convertToZapFields(fields []log.Field) []zap.Field {
	zapFields := make([]zap.Field, len(fields))
	for i, field := range fields {
		zapFields[i] = convertToZapField(field)
	}
	return zapFields
}

// convertToZapField converts a single log.Field to zap.Field.
func convertToZapField(field log.Field) zap.Field {
	switch v := field.Value.(type) {
	case string:
		return zap.String(field.Key, v)
	case int:
		return zap.Int(field.Key, v)
	case int64:
		return zap.Int64(field.Key, v)
	case float64:
		return zap.Float64(field.Key, v)
	case bool:
		return zap.Bool(field.Key, v)
	case time.Duration:
		return zap.Duration(field.Key, v)
	case error:
		return zap.NamedError(field.Key, v)
	default:
		return zap.Any(field.Key, v)
	}
}

// getTimeEncoder returns the appropriate time encoder based on the format.
func getTimeEncoder(format string) zapcore.TimeEncoder {
	switch format {
	case "", time.RFC3339:
		return zapcore.RFC3339TimeEncoder
	case time.RFC3339Nano:
		return zapcore.RFC3339NanoTimeEncoder
	default:
		return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format(format))
		}
	}
}

var _ log.Logger = (*Logger)(nil)
