package config

import (
	"math"

	"github.com/dogmatiq/ferrite"
	"github.com/dogmatiq/synckit/lock"
)

const (
	// DefaultConcurrencyLevel is the default number of lock stripes (and
	// initial buckets) in a hash set.
	DefaultConcurrencyLevel = 16

	// DefaultGrowthFactor is the default factor by which a hash set's bucket
	// count is multiplied when it is resized.
	DefaultGrowthFactor = 2

	// DefaultMaxLoadFactor is the default ratio of elements to buckets above
	// which a hash set is resized.
	DefaultMaxLoadFactor = 1.25
)

var (
	hashSetConcurrencyLevel = ferrite.
				Unsigned[uint]("SYNCKIT_HASHSET_CONCURRENCY_LEVEL", "the number of lock stripes in each hash set").
				WithMinimum(1).
				Optional()

	hashSetGrowthFactor = ferrite.
				Unsigned[uint]("SYNCKIT_HASHSET_GROWTH_FACTOR", "the factor by which a hash set's bucket count grows on resize").
				WithMinimum(2).
				Optional()

	hashSetMaxLoadFactor = ferrite.
				Float[float64]("SYNCKIT_HASHSET_MAX_LOAD_FACTOR", "the ratio of elements to buckets above which a hash set is resized").
				WithMinimum(math.SmallestNonzeroFloat64).
				Optional()

	hashSetLockPolicy = ferrite.
				String("SYNCKIT_HASHSET_LOCK_POLICY", "the kind of lock that guards each hash set stripe").
				WithConstraint(
			"must be either \"rwlock\" or \"mutex\"",
			func(v string) bool {
				_, err := lock.ParsePolicy(v)
				return err == nil
			},
		).
		Optional()
)

func (c *Config) finalizeHashSet() {
	hs := &c.HashSet

	if c.UseEnv {
		if hs.ConcurrencyLevel == 0 {
			if n, ok := hashSetConcurrencyLevel.Value(); ok && n > 0 {
				hs.ConcurrencyLevel = int(n)
			}
		}

		if hs.GrowthFactor == 0 {
			if n, ok := hashSetGrowthFactor.Value(); ok && n >= 2 {
				hs.GrowthFactor = int(n)
			}
		}

		if hs.MaxLoadFactor == 0 {
			if f, ok := hashSetMaxLoadFactor.Value(); ok && f > 0 {
				hs.MaxLoadFactor = f
			}
		}

		if hs.LockPolicy == 0 {
			if name, ok := hashSetLockPolicy.Value(); ok {
				hs.LockPolicy, _ = lock.ParsePolicy(name)
			}
		}
	}

	if hs.ConcurrencyLevel == 0 {
		hs.ConcurrencyLevel = DefaultConcurrencyLevel
	}

	if hs.GrowthFactor == 0 {
		hs.GrowthFactor = DefaultGrowthFactor
	}

	if hs.MaxLoadFactor == 0 {
		hs.MaxLoadFactor = DefaultMaxLoadFactor
	}

	if hs.LockPolicy == 0 {
		hs.LockPolicy = lock.ReadWritePolicy
	}
}
