package test

import (
	"context"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

// NewLogger returns a logger that writes to the test's log.
func NewLogger(t FailerT) *slog.Logger {
	return slog.New(
		&logHandler{T: t},
	)
}

type logHandler struct {
	T      FailerT
	attrs  []slog.Attr
	prefix string
}

func (h *logHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *logHandler) Handle(_ context.Context, rec slog.Record) error {
	buf := &strings.Builder{}

	buf.WriteString("[")
	buf.WriteString(rec.Level.String())
	buf.WriteString("] ")
	buf.WriteString(rec.Message)

	write := func(attr slog.Attr) bool {
		buf.WriteString(" ")
		buf.WriteString(h.prefix)
		buf.WriteString(attr.Key)
		buf.WriteString("=")
		buf.WriteString(attr.Value.String())
		return true
	}

	for _, attr := range h.attrs {
		write(attr)
	}
	rec.Attrs(write)

	h.T.Log(buf.String())

	return nil
}

func (h *logHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &logHandler{
		T:      h.T,
		attrs:  append(slices.Clone(h.attrs), attrs...),
		prefix: h.prefix,
	}
}

func (h *logHandler) WithGroup(name string) slog.Handler {
	return &logHandler{
		T:      h.T,
		attrs:  h.attrs,
		prefix: h.prefix + name + ".",
	}
}
