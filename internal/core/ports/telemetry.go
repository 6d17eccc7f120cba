package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
	// EmitPlan signals which targets are about to be made.
	EmitPlan(ctx context.Context, targets []string, deps map[string][]string, requested []string)
}

// Span represents the making of one target.
// Output written to the span is shown as the target's output.
type Span interface {
	io.Writer
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	// Parent is the name of the target that caused this one to be made.
	Parent string
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithParent records the target that required this span's target.
func WithParent(name string) SpanOption {
	return func(c *SpanConfig) {
		c.Parent = name
	}
}
