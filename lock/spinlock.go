package lock

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// spinsPerYield is the number of failed acquisition attempts after which a
// spinning goroutine yields the processor.
//
// The holder of a spin lock may have been preempted; yielding lets it run again
// when there are fewer processors than spinning goroutines.
const spinsPerYield = 64

// SpinLock is a mutual exclusion lock that busy-waits until it is acquired.
//
// The zero value is an unlocked lock. A SpinLock must not be copied after first
// use.
type SpinLock struct {
	held atomic.Bool
}

var _ sync.Locker = (*SpinLock)(nil)

// Lock acquires the lock, spinning until it is available.
func (l *SpinLock) Lock() {
	for spins := 1; ; spins++ {
		if !l.held.Load() && l.held.CompareAndSwap(false, true) {
			return
		}

		if spins%spinsPerYield == 0 {
			runtime.Gosched()
		}
	}
}

// TryLock acquires the lock if it is available, without spinning. It returns
// true if the lock was acquired.
func (l *SpinLock) TryLock() bool {
	return l.held.CompareAndSwap(false, true)
}

// Unlock releases the lock.
//
// It panics if the lock is not held.
func (l *SpinLock) Unlock() {
	if !l.held.Swap(false) {
		panic("unlock of unlocked spin lock")
	}
}
