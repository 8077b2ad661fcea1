package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/slog"
)

// Debug logs a debug-level event to the log and as a span event.
func (r *Recorder) Debug(
	ctx context.Context,
	event, message string,
	attrs ...Attr,
) {
	r.recordEvent(ctx, slog.LevelDebug, event, message, nil, attrs)
}

// Info logs an informational event to the log and as a span event.
func (r *Recorder) Info(
	ctx context.Context,
	event, message string,
	attrs ...Attr,
) {
	r.recordEvent(ctx, slog.LevelInfo, event, message, nil, attrs)
}

// Error logs an error event to the log and as a span event.
//
// It marks the span as an error and increments the "errors" metric.
func (r *Recorder) Error(
	ctx context.Context,
	event string,
	err error,
	attrs ...Attr,
) {
	r.recordEvent(ctx, slog.LevelError, event, err.Error(), err, attrs)
	r.errorCount(ctx, 1, attrs...)

	span := trace.SpanFromContext(ctx)
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}

func (r *Recorder) recordEvent(
	ctx context.Context,
	level slog.Level,
	event, message string,
	err error,
	attrs []Attr,
) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent(
			event,
			trace.WithAttributes(attribute.String("message", message)),
			trace.WithAttributes(asAttrKeyValues(attrs)...),
		)
	}

	if !r.logger.Enabled(ctx, level) {
		return
	}

	args := append(
		[]any{slog.String("event", event)},
		asLoggerArgs(attrs)...,
	)

	if err != nil {
		args = append(args, slog.String("error", err.Error()))
	}

	if sctx := span.SpanContext(); sctx.HasSpanID() {
		args = append(args, slog.String("span_id", sctx.SpanID().String()))
	}

	r.logger.Log(ctx, level, message, args...)
}
