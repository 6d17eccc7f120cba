// Package telemetry implements ports.Tracer with OpenTelemetry and feeds
// span events to a renderer.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/docmk/internal/core/ports"
)

var _ ports.Tracer = (*OTelTracer)(nil)

// NewTracerProvider returns an SDK provider that reports every span to renderer.
func NewTracerProvider(renderer ports.Renderer) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewBridge(renderer)),
	)
}

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	tracer   trace.Tracer
	renderer ports.Renderer
}

// NewOTelTracer creates a tracer named name on provider.
func NewOTelTracer(provider trace.TracerProvider, name string) *OTelTracer {
	return &OTelTracer{tracer: provider.Tracer(name)}
}

// WithRenderer routes span output to renderer.
func (t *OTelTracer) WithRenderer(renderer ports.Renderer) *OTelTracer {
	t.renderer = renderer
	return t
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var startOpts []trace.SpanStartOption
	if cfg.Parent != "" {
		startOpts = append(startOpts, trace.WithAttributes(attrRequiredBy.String(cfg.Parent)))
	}
	ctx, span := t.tracer.Start(ctx, name, startOpts...)

	return ctx, &OTelSpan{
		span:     span,
		spanID:   span.SpanContext().SpanID().String(),
		renderer: t.renderer,
	}
}

// EmitPlan records the plan on the current span and hands it to the renderer.
func (t *OTelTracer) EmitPlan(ctx context.Context, targets []string, deps map[string][]string, requested []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("targets", targets),
			attribute.StringSlice("requested", requested),
		))
	}

	if t.renderer != nil {
		t.renderer.OnPlanEmit(targets, deps, requested)
	}
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span     trace.Span
	spanID   string
	renderer ports.Renderer
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records an error for the span.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, Describe(err))
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write passes target output to the renderer, or records it as a span event
// when there is none.
func (s *OTelSpan) Write(p []byte) (int, error) {
	if s.renderer == nil {
		s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
		return len(p), nil
	}
	data := make([]byte, len(p))
	copy(data, p)
	s.renderer.OnTaskLog(s.spanID, data)
	return len(p), nil
}

// messager matches zerr errors, which report their own message without the chain.
type messager interface {
	Message() string
}

// Describe renders err and its causes on one line, outermost first.
func Describe(err error) string {
	var parts []string
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			parts = append(parts, current.Error())
			break
		}
		parts = append(parts, m.Message())
		current = errors.Unwrap(current)
	}
	return strings.Join(parts, ": ")
}
