// Package arena provides a slab allocator whose values have stable addresses
// and are released in bulk.
package arena

import "sync"

// DefaultSlabSize is the number of values in each slab when
// [Arena.SlabSize] is not set.
const DefaultSlabSize = 256

// Arena allocates values of type T from fixed-size slabs.
//
// Slabs are never resized or moved, so a pointer returned by [Arena.New]
// remains valid for as long as the caller holds it, even after the arena has
// been released. There is no way to free an individual value.
//
// The zero value is an empty arena that is ready to use. It is safe for
// concurrent use.
type Arena[T any] struct {
	// SlabSize is the number of values in each slab. It must not be changed
	// after the first call to [Arena.New]. If it is non-positive,
	// [DefaultSlabSize] is used.
	SlabSize int

	m     sync.Mutex
	slab  []T
	next  int
	slabs int
	count int
}

// New returns a pointer to a new zero-valued T.
func (a *Arena[T]) New() *T {
	a.m.Lock()
	defer a.m.Unlock()

	if a.next == len(a.slab) {
		size := a.SlabSize
		if size <= 0 {
			size = DefaultSlabSize
		}

		a.slab = make([]T, size)
		a.next = 0
		a.slabs++
	}

	v := &a.slab[a.next]
	a.next++
	a.count++

	return v
}

// Len returns the number of values allocated since the arena was created or
// last released.
func (a *Arena[T]) Len() int {
	a.m.Lock()
	defer a.m.Unlock()
	return a.count
}

// Slabs returns the number of slabs allocated since the arena was created or
// last released.
func (a *Arena[T]) Slabs() int {
	a.m.Lock()
	defer a.m.Unlock()
	return a.slabs
}

// Release drops the arena's reference to all of its slabs.
//
// The memory backing the values is reclaimed by the garbage collector once no
// pointers into a slab remain. The arena may be reused afterwards.
func (a *Arena[T]) Release() {
	a.m.Lock()
	defer a.m.Unlock()

	a.slab = nil
	a.next = 0
	a.slabs = 0
	a.count = 0
}
