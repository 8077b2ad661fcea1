package hashset

import (
	"context"
	"sync/atomic"

	"github.com/dogmatiq/synckit"
	"github.com/dogmatiq/synckit/internal/config"
	"github.com/dogmatiq/synckit/internal/telemetry"
	"github.com/dogmatiq/synckit/lock"
	"golang.org/x/sys/cpu"
)

// Set is a concurrent hash set of values of type T.
//
// It is safe for concurrent use.
type Set[T comparable] struct {
	hash          Hash[T]
	growthFactor  int
	maxLoadFactor float64
	stripes       []stripe

	// buckets is replaced only while every stripe is locked, so it may be
	// read by any goroutine that holds at least one stripe.
	buckets []*entry[T]

	_     cpu.CacheLinePad
	count atomic.Int64
	_     cpu.CacheLinePad

	telemetry *telemetry.Recorder
	rehashes  telemetry.Instrument[int64]
	elements  telemetry.Instrument[int64]
}

type stripe struct {
	lock.RWLocker
	_ cpu.CacheLinePad
}

type entry[T any] struct {
	hash  uint64
	value T
	next  *entry[T]
}

// New returns a new, empty set that hashes its elements with [DefaultHash].
func New[T comparable](options ...synckit.Option) *Set[T] {
	return NewWithHash[T](DefaultHash[T], options...)
}

// NewWithHash returns a new, empty set that hashes its elements with h.
func NewWithHash[T comparable](h Hash[T], options ...synckit.Option) *Set[T] {
	if h == nil {
		panic("hash function must not be nil")
	}

	cfg := config.New(options)

	s := &Set[T]{
		hash:          h,
		growthFactor:  cfg.HashSet.GrowthFactor,
		maxLoadFactor: cfg.HashSet.MaxLoadFactor,
		stripes:       make([]stripe, cfg.HashSet.ConcurrencyLevel),
		buckets:       make([]*entry[T], cfg.HashSet.ConcurrencyLevel),
		telemetry: cfg.Telemetry.Recorder(
			"github.com/dogmatiq/synckit/hashset",
			telemetry.Type[T]("element_type"),
			telemetry.Stringer("lock_policy", cfg.HashSet.LockPolicy),
		),
	}

	for i := range s.stripes {
		s.stripes[i].RWLocker = cfg.HashSet.LockPolicy.NewLock()
	}

	s.rehashes = s.telemetry.Counter("rehashes", "{rehash}", "The number of times the set's bucket table has grown.")
	s.elements = s.telemetry.UpDownCounter("elements", "{element}", "The number of elements in the set.")

	return s
}

// Insert adds v to the set. It returns false if v was already a member.
func (s *Set[T]) Insert(v T) bool {
	h := s.hash(v)
	st := s.stripeFor(h)

	for {
		st.Lock()

		b := &s.buckets[h%uint64(len(s.buckets))]

		for e := *b; e != nil; e = e.next {
			if e.hash == h && e.value == v {
				st.Unlock()
				return false
			}
		}

		if s.overloaded(s.count.Load()) {
			st.Unlock()
			s.Rehash()
			continue
		}

		*b = &entry[T]{h, v, *b}
		overloaded := s.overloaded(s.count.Add(1))

		st.Unlock()

		s.elements(context.Background(), 1)

		if overloaded {
			s.Rehash()
		}

		return true
	}
}

// Remove removes v from the set. It returns false if v was not a member.
func (s *Set[T]) Remove(v T) bool {
	h := s.hash(v)
	st := s.stripeFor(h)

	st.Lock()

	b := &s.buckets[h%uint64(len(s.buckets))]

	for p := b; *p != nil; p = &(*p).next {
		if e := *p; e.hash == h && e.value == v {
			*p = e.next
			s.count.Add(-1)
			st.Unlock()

			s.elements(context.Background(), -1)
			return true
		}
	}

	st.Unlock()
	return false
}

// Contains returns true if v is a member of the set.
func (s *Set[T]) Contains(v T) bool {
	h := s.hash(v)
	st := s.stripeFor(h)

	st.RLock()
	defer st.RUnlock()

	for e := s.buckets[h%uint64(len(s.buckets))]; e != nil; e = e.next {
		if e.hash == h && e.value == v {
			return true
		}
	}

	return false
}

// Rehash grows the set's bucket table if the set is overloaded.
//
// It acquires every stripe, in order, and then checks the load again. If
// another goroutine has already grown the table it returns without doing
// anything. Otherwise it multiplies the bucket count by the growth factor and
// moves every element into its new bucket.
func (s *Set[T]) Rehash() {
	for i := range s.stripes {
		s.stripes[i].Lock()
	}

	before := len(s.buckets)
	count := s.count.Load()
	grown := s.overloaded(count)

	if grown {
		s.grow()
	}

	after := len(s.buckets)

	for i := len(s.stripes) - 1; i >= 0; i-- {
		s.stripes[i].Unlock()
	}

	if grown {
		ctx := context.Background()
		s.rehashes(ctx, 1)
		s.telemetry.Debug(
			ctx,
			"hashset.grown",
			"bucket table grown",
			telemetry.Int("buckets.before", before),
			telemetry.Int("buckets.after", after),
			telemetry.Int("elements", count),
			telemetry.Float("load_factor", float64(count)/float64(after)),
		)
	}
}

// Size returns the number of elements in the set.
func (s *Set[T]) Size() int {
	return int(s.count.Load())
}

// BucketCount returns the number of buckets in the set's table.
func (s *Set[T]) BucketCount() int {
	st := &s.stripes[0]
	st.RLock()
	defer st.RUnlock()

	return len(s.buckets)
}

// StripeCount returns the number of lock stripes, which never changes.
func (s *Set[T]) StripeCount() int {
	return len(s.stripes)
}

func (s *Set[T]) stripeFor(h uint64) *stripe {
	return &s.stripes[h%uint64(len(s.stripes))]
}

// overloaded returns true if a set containing n elements exceeds the maximum
// load factor. At least one stripe must be locked.
func (s *Set[T]) overloaded(n int64) bool {
	return float64(n) > s.maxLoadFactor*float64(len(s.buckets))
}

// grow replaces the bucket table with one that is larger by the growth factor.
// Every stripe must be locked.
func (s *Set[T]) grow() {
	buckets := make([]*entry[T], len(s.buckets)*s.growthFactor)

	for _, e := range s.buckets {
		for e != nil {
			next := e.next
			b := &buckets[e.hash%uint64(len(buckets))]
			e.next = *b
			*b = e
			e = next
		}
	}

	s.buckets = buckets
}
