package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/docmk/internal/core/ports"
)

// attrRequiredBy names the target whose prerequisite list caused a span's target to be made.
const attrRequiredBy attribute.Key = "target.required_by"

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge feeds target spans to a Renderer as they start and end.
// Targets run one after another, so the renderer learns why a target is made
// from its required_by attribute, not from span ancestry.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a new Bridge.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart announces the target with the name of the target that required it.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return
	}

	var requiredBy string
	for _, kv := range s.Attributes() {
		if kv.Key == attrRequiredBy {
			requiredBy = kv.Value.AsString()
			break
		}
	}

	b.renderer.OnTaskStart(s.SpanContext().SpanID().String(), requiredBy, s.Name(), s.StartTime())
}

// OnEnd reports the outcome. An error status without a description still counts as a failed target.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return
	}

	var err error
	if status := s.Status(); status.Code == codes.Error {
		err = errTargetFailed
		if status.Description != "" {
			err = errors.New(status.Description)
		}
	}

	b.renderer.OnTaskComplete(s.SpanContext().SpanID().String(), s.EndTime(), err)
}

var errTargetFailed = errors.New("target failed")

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
