// Package config builds the configuration shared by the synckit data
// structures from functional options and, optionally, environment variables.
package config

import (
	"github.com/dogmatiq/synckit/internal/telemetry"
	"github.com/dogmatiq/synckit/lock"
)

// Config encapsulates the configuration of a synckit data structure, built by
// applying [synckit.Option] functions.
type Config struct {
	UseEnv    bool
	Telemetry *telemetry.Provider

	Pool struct {
		Workers int
	}

	HashSet struct {
		ConcurrencyLevel int
		GrowthFactor     int
		MaxLoadFactor    float64
		LockPolicy       lock.Policy
	}
}

// New returns a new configuration built by applying the given options.
//
// Any values not set by an option are taken from the environment if the
// options enable it, or from the built-in defaults otherwise.
func New[Option ~func(*Config)](options []Option) Config {
	c := Config{
		Telemetry: &telemetry.Provider{},
	}

	for _, opt := range options {
		opt(&c)
	}

	c.finalize()

	return c
}

func (c *Config) finalize() {
	c.finalizeTelemetry()
	c.finalizePool()
	c.finalizeHashSet()
}
