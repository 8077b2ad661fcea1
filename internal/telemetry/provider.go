package telemetry

import (
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/exp/slog"
)

// Provider provides Recorder instances scoped to particular subsystems.
//
// The zero value of a *Provider is equivalent to a provider configured with
// no-op tracer and meter providers and a logger that discards everything.
type Provider struct {
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	Logger         *slog.Logger
	Attrs          []Attr
}

// Recorder records traces, metrics and logs for a particular subsystem.
type Recorder struct {
	name   string
	tracer trace.Tracer
	meter  metric.Meter
	logger *slog.Logger
	attrs  attribute.Set

	errorCount Instrument[int64]
}

// Recorder returns a new Recorder instance for the named subsystem.
//
// name is the import path of the package that records the telemetry.
func (p *Provider) Recorder(name string, attrs ...Attr) *Recorder {
	var (
		tracerProvider trace.TracerProvider
		meterProvider  metric.MeterProvider
		logger         *slog.Logger
	)

	if p != nil {
		tracerProvider = p.TracerProvider
		meterProvider = p.MeterProvider
		logger = p.Logger

		attrs = append(
			slices.Clone(p.Attrs),
			attrs...,
		)
	}

	if tracerProvider == nil {
		tracerProvider = nooptrace.NewTracerProvider()
	}

	if meterProvider == nil {
		meterProvider = noopmetric.NewMeterProvider()
	}

	if logger == nil {
		logger = slog.New(disabledHandler{})
	}

	kvs := asAttrKeyValues(attrs)

	r := &Recorder{
		name:   name,
		tracer: tracerProvider.Tracer(name, tracerVersion),
		meter:  meterProvider.Meter(name, meterVersion),
		logger: logger.With(
			append(
				[]any{slog.String("subsystem", name)},
				asLoggerArgs(attrs)...,
			)...,
		),
		attrs: attribute.NewSet(kvs...),
	}

	r.errorCount = r.Counter("errors", "{error}", "The number of errors that have occurred.")

	return r
}
