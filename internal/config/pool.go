package config

import (
	"runtime"

	"github.com/dogmatiq/ferrite"
)

// DefaultWorkers is the number of workers in a pool when the hardware
// parallelism can not be determined.
const DefaultWorkers = 2

var poolWorkers = ferrite.
	Unsigned[uint]("SYNCKIT_POOL_WORKERS", "the number of worker goroutines in each task pool").
	WithMinimum(1).
	Optional()

func (c *Config) finalizePool() {
	if c.Pool.Workers != 0 {
		return
	}

	if c.UseEnv {
		if n, ok := poolWorkers.Value(); ok && n > 0 {
			c.Pool.Workers = int(n)
			return
		}
	}

	c.Pool.Workers = runtime.NumCPU()

	if c.Pool.Workers < 1 {
		c.Pool.Workers = DefaultWorkers
	}
}
