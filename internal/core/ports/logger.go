// Package ports defines the core interfaces for the application.
package ports

import "io"

// Logger defines the interface for structured logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Debug logs a debug message with optional key-value attributes.
	Debug(msg string, args ...any)
	// Info logs an informational message with optional key-value attributes.
	Info(msg string, args ...any)
	// Warn logs a warning message with optional key-value attributes.
	Warn(msg string, args ...any)
	// Error logs an error, rendering its cause chain.
	Error(err error, args ...any)

	// SetOutput updates the logger's output destination.
	SetOutput(w io.Writer)
	// SetJSON switches between JSON and pretty logging.
	SetJSON(enable bool)
}
