package lock

import "sync"

// RWLocker is a lock that can be held either by a single writer or by any
// number of readers.
type RWLocker interface {
	sync.Locker

	// RLock acquires the lock for reading.
	RLock()

	// RUnlock releases a read lock previously acquired by RLock.
	RUnlock()
}

// RWLock is a multi-reader/single-writer lock built on condition variables.
//
// It prefers writers: once a writer is waiting, new readers block until it has
// acquired and released the lock.
//
// The zero value is an unlocked lock. An RWLock must not be copied after first
// use.
type RWLock struct {
	m        sync.Mutex
	readable sync.Cond
	writable sync.Cond

	readers        int
	waitingWriters int
	writing        bool
}

var _ RWLocker = (*RWLock)(nil)

// RLock acquires the lock for reading.
func (l *RWLock) RLock() {
	l.m.Lock()
	defer l.m.Unlock()

	l.init()

	for l.writing || l.waitingWriters > 0 {
		l.readable.Wait()
	}

	l.readers++
}

// RUnlock releases a read lock.
//
// It panics if the lock is not held for reading.
func (l *RWLock) RUnlock() {
	l.m.Lock()
	defer l.m.Unlock()

	if l.readers == 0 {
		panic("read unlock of rwlock that is not read-locked")
	}

	l.readers--

	if l.readers == 0 {
		l.init()
		l.writable.Signal()
	}
}

// Lock acquires the lock for writing.
func (l *RWLock) Lock() {
	l.m.Lock()
	defer l.m.Unlock()

	l.init()
	l.waitingWriters++

	for l.writing || l.readers > 0 {
		l.writable.Wait()
	}

	l.waitingWriters--
	l.writing = true
}

// Unlock releases a write lock.
//
// It panics if the lock is not held for writing.
func (l *RWLock) Unlock() {
	l.m.Lock()
	defer l.m.Unlock()

	if !l.writing {
		panic("unlock of rwlock that is not write-locked")
	}

	l.writing = false
	l.writable.Signal()
	l.readable.Broadcast()
}

// init binds the condition variables to the mutex. l.m must be held.
func (l *RWLock) init() {
	if l.readable.L == nil {
		l.readable.L = &l.m
		l.writable.L = &l.m
	}
}

// Mutex is an [RWLocker] that does not distinguish readers from writers; every
// acquisition is exclusive.
//
// The zero value is an unlocked mutex.
type Mutex struct {
	m sync.Mutex
}

var _ RWLocker = (*Mutex)(nil)

// Lock acquires the mutex.
func (l *Mutex) Lock() { l.m.Lock() }

// Unlock releases the mutex.
func (l *Mutex) Unlock() { l.m.Unlock() }

// RLock acquires the mutex exclusively.
func (l *Mutex) RLock() { l.m.Lock() }

// RUnlock releases the mutex.
func (l *Mutex) RUnlock() { l.m.Unlock() }
