package synckit

import (
	"github.com/dogmatiq/synckit/internal/config"
	"github.com/dogmatiq/synckit/lock"
)

// WithConcurrencyLevel is an [Option] that sets the number of lock stripes in
// a [hashset.Set], which is also its initial bucket count.
//
// The stripe count never changes after the set is created. It bounds the number
// of goroutines that can modify the set at the same time.
func WithConcurrencyLevel(n int) Option {
	if n < 1 {
		panic("concurrency level must be at least 1")
	}

	return func(cfg *config.Config) {
		cfg.HashSet.ConcurrencyLevel = n
	}
}

// WithGrowthFactor is an [Option] that sets the factor by which a
// [hashset.Set] multiplies its bucket count each time it is resized.
func WithGrowthFactor(n int) Option {
	if n < 2 {
		panic("growth factor must be at least 2")
	}

	return func(cfg *config.Config) {
		cfg.HashSet.GrowthFactor = n
	}
}

// WithMaxLoadFactor is an [Option] that sets the ratio of elements to buckets
// above which a [hashset.Set] is resized.
func WithMaxLoadFactor(f float64) Option {
	if !(f > 0) {
		panic("max load factor must be positive")
	}

	return func(cfg *config.Config) {
		cfg.HashSet.MaxLoadFactor = f
	}
}

// WithStripeLockPolicy is an [Option] that selects the kind of lock that
// guards each stripe of a [hashset.Set].
func WithStripeLockPolicy(p lock.Policy) Option {
	if _, err := lock.ParsePolicy(p.String()); err != nil {
		panic(err)
	}

	return func(cfg *config.Config) {
		cfg.HashSet.LockPolicy = p
	}
}
