package queue

import (
	"errors"
	"sync"

	fifo "github.com/eapache/queue"
)

// ErrShutdown is returned by [Queue.Put] when the queue has been shut down.
var ErrShutdown = errors.New("queue has been shut down")

// Queue is a bounded first-in first-out queue of values of type T.
//
// It is safe for concurrent use.
type Queue[T any] struct {
	capacity int

	m        sync.Mutex
	notFull  sync.Cond
	notEmpty sync.Cond
	items    *fifo.Queue
	off      bool
}

// New returns a new, empty queue that holds at most capacity items.
//
// It panics if capacity is less than 1.
func New[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		panic("queue capacity must be at least 1")
	}

	q := &Queue[T]{
		capacity: capacity,
		items:    fifo.New(),
	}
	q.notFull.L = &q.m
	q.notEmpty.L = &q.m

	return q
}

// Put adds v to the tail of the queue.
//
// It blocks while the queue is full. It returns [ErrShutdown] without adding v
// if the queue is shut down, including when it is shut down while Put is
// blocked.
func (q *Queue[T]) Put(v T) error {
	q.m.Lock()
	defer q.m.Unlock()

	for !q.off && q.items.Length() >= q.capacity {
		q.notFull.Wait()
	}

	if q.off {
		return ErrShutdown
	}

	q.items.Add(v)
	q.notEmpty.Signal()

	return nil
}

// Get removes and returns the item at the head of the queue.
//
// It blocks while the queue is empty. If the queue is shut down and empty it
// returns the zero value and false. Items buffered before shutdown are still
// returned, in order.
func (q *Queue[T]) Get() (T, bool) {
	q.m.Lock()
	defer q.m.Unlock()

	for !q.off && q.items.Length() == 0 {
		q.notEmpty.Wait()
	}

	if q.items.Length() == 0 {
		var zero T
		return zero, false
	}

	// A nil interface value is stored as an untyped nil.
	v, _ := q.items.Remove().(T)
	q.notFull.Signal()

	return v, true
}

// Shutdown stops the queue from accepting new items and wakes every blocked
// producer and consumer.
//
// It is idempotent.
func (q *Queue[T]) Shutdown() {
	q.m.Lock()
	defer q.m.Unlock()

	if q.off {
		return
	}

	q.off = true
	q.notFull.Broadcast()
	q.notEmpty.Broadcast()
}

// Len returns the number of items currently buffered in the queue.
func (q *Queue[T]) Len() int {
	q.m.Lock()
	defer q.m.Unlock()
	return q.items.Length()
}

// Cap returns the maximum number of items the queue can buffer.
func (q *Queue[T]) Cap() int {
	return q.capacity
}

// IsShutdown returns true if [Queue.Shutdown] has been called.
func (q *Queue[T]) IsShutdown() bool {
	q.m.Lock()
	defer q.m.Unlock()
	return q.off
}
