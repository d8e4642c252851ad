// Package telemetry adapts OpenTelemetry tracing to the ports.Tracer interface.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/forge/internal/core/ports"
)

// InstrumentationName is the tracer name used for every forge span.
const InstrumentationName = "forge"

// OTelTracer implements ports.Tracer on an SDK provider it owns. Processors
// such as PhaseReporter are attached through the provider options.
type OTelTracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewOTelTracer creates a tracer backed by its own SDK provider.
func NewOTelTracer(name string, opts ...sdktrace.TracerProviderOption) *OTelTracer {
	tp := sdktrace.NewTracerProvider(opts...)
	return &OTelTracer{
		provider: tp,
		tracer:   tp.Tracer(name),
	}
}

// Install registers the tracer's provider as the global OpenTelemetry provider.
func (t *OTelTracer) Install() *OTelTracer {
	otel.SetTracerProvider(t.provider)
	return t
}

// Start opens a span named name as a child of the span in ctx, if any.
func (t *OTelTracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, &OTelSpan{span: span}
}

// Shutdown flushes and stops the span processors.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

// OTelSpan wraps one OpenTelemetry span; the orchestrator opens one per phase.
type OTelSpan struct {
	span trace.Span
}

// End finishes the span, handing it to the registered processors.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError attaches err as an exception event and sets the error status.
func (s *OTelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute sets one attribute. Values without a native attribute type are
// stored in their fmt form.
func (s *OTelSpan) SetAttribute(key string, value any) {
	s.span.SetAttributes(toAttribute(key, value))
}

func toAttribute(key string, value any) attribute.KeyValue {
	k := attribute.Key(key)
	switch v := value.(type) {
	case string:
		return k.String(v)
	case bool:
		return k.Bool(v)
	case int:
		return k.Int(v)
	case []string:
		return k.StringSlice(v)
	case fmt.Stringer:
		return k.String(v.String())
	}
	return k.String(fmt.Sprint(value))
}
