package telemetry

import (
	"context"

	"golang.org/x/exp/slog"
)

// disabledHandler is a slog handler that discards every record.
type disabledHandler struct{}

func (disabledHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (disabledHandler) Handle(context.Context, slog.Record) error { return nil }
func (h disabledHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h disabledHandler) WithGroup(string) slog.Handler           { return h }
