package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Setup installs a global tracer provider and returns its shutdown function.
// Without an exporter configured the spans are sampled but dropped; exporters
// are attached via the standard OTEL environment variables by the operator.
func Setup() (func(context.Context) error, error) {
	provider := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}
