package synckit

import (
	"github.com/dogmatiq/synckit/internal/config"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/slog"
)

// An Option configures the behavior of a synckit data structure.
//
// Options that do not apply to a particular data structure are ignored by it.
type Option func(*config.Config)

// WithOptionsFromEnvironment is an [Option] that configures the data structure
// using options specified via environment variables.
//
// It also causes the global OpenTelemetry providers to be used when no
// provider is given explicitly.
//
// Any explicit options take precedence over options from the environment.
func WithOptionsFromEnvironment() Option {
	return func(cfg *config.Config) {
		cfg.UseEnv = true
	}
}

// WithTracerProvider is an [Option] that sets the OpenTelemetry tracer
// provider used by the data structure.
func WithTracerProvider(p trace.TracerProvider) Option {
	if p == nil {
		panic("tracer provider must not be nil")
	}

	return func(cfg *config.Config) {
		cfg.Telemetry.TracerProvider = p
	}
}

// WithMeterProvider is an [Option] that sets the OpenTelemetry meter provider
// used by the data structure.
func WithMeterProvider(p metric.MeterProvider) Option {
	if p == nil {
		panic("meter provider must not be nil")
	}

	return func(cfg *config.Config) {
		cfg.Telemetry.MeterProvider = p
	}
}

// WithLogger is an [Option] that sets the logger used by the data structure.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("logger must not be nil")
	}

	return func(cfg *config.Config) {
		cfg.Telemetry.Logger = l
	}
}
