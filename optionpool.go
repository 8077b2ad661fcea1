package synckit

import "github.com/dogmatiq/synckit/internal/config"

// WithWorkers is an [Option] that sets the number of worker goroutines in a
// [pool.Pool].
//
// If this option is not given, the pool has one worker per logical CPU.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("pool must have at least one worker")
	}

	return func(cfg *config.Config) {
		cfg.Pool.Workers = n
	}
}
