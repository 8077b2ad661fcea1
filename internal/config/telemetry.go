package config

import (
	"go.opentelemetry.io/otel"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

func (c *Config) finalizeTelemetry() {
	if c.Telemetry.TracerProvider == nil {
		if c.UseEnv {
			c.Telemetry.TracerProvider = otel.GetTracerProvider()
		} else {
			c.Telemetry.TracerProvider = nooptrace.NewTracerProvider()
		}
	}

	if c.Telemetry.MeterProvider == nil {
		if c.UseEnv {
			c.Telemetry.MeterProvider = otel.GetMeterProvider()
		} else {
			c.Telemetry.MeterProvider = noopmetric.NewMeterProvider()
		}
	}
}
