// Package log provides a structured logging interface for gomfe extraction runs.
//
// This package defines a minimal, slog-compatible logging interface that allows
// for flexible implementation switching while providing extraction-specific
// structured logging capabilities. The interface integrates with Go's standard
// log/slog package and formats cockroachdb/errors stack traces.
//
// Key features:
//   - slog-compatible interface
//   - extraction-specific structured attributes (measure names, data shapes, run IDs)
//   - context-aware logging with field chaining
//   - test-friendly with an in-memory capture logger
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.RunIDKey, runID,
//	    log.ComponentKey, "mfe",
//	)
//	logger.Info("extraction started",
//	    log.SamplesKey, 150,
//	    log.AttributesKey, 4,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// The interface is implementation-agnostic, enabling switching between
// logging backends while maintaining a consistent API. It supports creating
// contextual loggers with pre-populated fields through the With method.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	// Used for per-measure diagnostics; usually disabled in production.
	//
	// Example:
	//
	//	logger.Debug("measure failed",
	//	    log.MeasureKey, "one_nn",
	//	    log.ErrAttrKey, err,
	//	)
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	// Warnings indicate degraded results (failed measures, missing
	// intervals) that do not stop the extraction.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If an error value is passed under the "error" key, the handler may
	// attach stack trace information automatically.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated in all
	// subsequent log messages.
	//
	// Example:
	//
	//	runLogger := logger.With(log.RunIDKey, id)
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to avoid building expensive attributes that would be dropped.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates and configures loggers. It allows dependency
// injection and testing with different logger implementations.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for loggers from this provider.
	SetLevel(level Level)
}
