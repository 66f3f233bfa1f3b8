package ports

import "context"

// Span represents an in-flight trace span.
type Span interface {
	// End completes the span.
	End()
	// SetError marks the span as failed.
	SetError(err error)
	// SetAttribute attaches a key-value attribute to the span.
	SetAttribute(key string, value any)
}

// Tracer defines the interface for distributed tracing of compilation and
// cycle execution.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Start begins a new span as a child of any span in ctx.
	Start(ctx context.Context, name string) (context.Context, Span)
}
