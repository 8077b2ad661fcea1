// Package lock contains the blocking mutual-exclusion primitives used by the
// synckit data structures.
//
// [SpinLock] busy-waits and is intended for critical sections that last a
// handful of memory operations, such as re-linking a list node. [RWLock] and
// [Mutex] suspend the calling goroutine and are interchangeable
// implementations of [RWLocker], selected by a [Policy].
package lock
