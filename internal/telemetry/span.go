package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span represents a single named and timed operation.
type Span struct {
	recorder *Recorder
	ctx      context.Context
	span     trace.Span
}

// StartSpan starts a new span.
func (r *Recorder) StartSpan(
	ctx context.Context,
	name string,
	attrs ...Attr,
) (context.Context, *Span) {
	ctx, span := r.tracer.Start(
		ctx,
		name,
		trace.WithAttributes(r.attrs.ToSlice()...),
		trace.WithAttributes(asAttrKeyValues(attrs)...),
	)

	return ctx, &Span{r, ctx, span}
}

// End completes the span.
func (s *Span) End() {
	s.span.End()
}

// SetAttributes sets attributes on the span.
func (s *Span) SetAttributes(attrs ...Attr) {
	s.span.SetAttributes(asAttrKeyValues(attrs)...)
}

// Error records err against the span, marks the span as failed, and logs an
// error event.
func (s *Span) Error(event string, err error, attrs ...Attr) {
	s.recorder.Error(s.ctx, event, err, attrs...)
}

// OK marks the span as successful.
func (s *Span) OK() {
	s.span.SetStatus(codes.Ok, "")
}
