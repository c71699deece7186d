package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Call outcomes reported to tracing and metrics.
const (
	StatusHit    = "hit"
	StatusMiss   = "miss"
	StatusBypass = "bypass"
	StatusError  = "error"
)

// CallMeta identifies a memoized function for telemetry purposes.
type CallMeta struct {
	Name      string // registered function name; empty for anonymous functions
	Namespace string // cache namespace (may be empty)
	Selector  string // rendered selector, e.g. `*` or `["0.id"]`
}

// DisplayName returns Name, or "anonymous" when it is empty.
func (m CallMeta) DisplayName() string {
	if m.Name == "" {
		return "anonymous"
	}
	return m.Name
}

// SpanName returns memo.call.<namespace>.<name> or memo.call.<name>.
func (m CallMeta) SpanName() string {
	if m.Namespace != "" {
		return "memo.call." + m.Namespace + "." + m.DisplayName()
	}
	return "memo.call." + m.DisplayName()
}

// Tracer wraps OpenTelemetry tracing with memoized-call span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: StartSpan returns a derived context carrying the span.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a span for one memoized call.
	StartSpan(ctx context.Context, meta CallMeta) (context.Context, trace.Span)

	// EndSpan records the call status and error, then ends the span.
	EndSpan(span trace.Span, status string, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer returns a Tracer backed by t.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartSpan(ctx context.Context, meta CallMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("memo.name", meta.DisplayName()),
	}
	if meta.Namespace != "" {
		attrs = append(attrs, attribute.String("memo.namespace", meta.Namespace))
	}
	if meta.Selector != "" {
		attrs = append(attrs, attribute.String("memo.selector", meta.Selector))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t *tracerImpl) EndSpan(span trace.Span, status string, err error) {
	span.SetAttributes(attribute.String("memo.status", status))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

// NoopTracer returns a Tracer that records nothing.
func NoopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta CallMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, _ string, _ error) {
	span.End()
}
