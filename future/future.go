// Package future provides a write-once container for the result of an
// asynchronous operation.
package future

import (
	"context"
	"sync/atomic"
)

// New returns a future that can be resolved with a value of type T or an
// error, and its associated promise.
func New[T any]() (Future[T], Promise[T]) {
	s := &state[T]{
		ready: make(chan struct{}),
	}

	return Future[T]{s}, Promise[T]{s}
}

// Future represents a value of type T that may not yet be available, or the
// error that prevented it from being computed.
type Future[T any] struct {
	s *state[T]
}

// Ready returns a channel that is closed when the result is available.
func (f Future[T]) Ready() <-chan struct{} {
	return f.s.ready
}

// Get returns the result. It panics if the result is not available.
func (f Future[T]) Get() (T, error) {
	if r := f.s.result.Load(); r != nil {
		return r.Value, r.Err
	}
	panic("future value is not ready")
}

// Wait blocks until the result is available, then returns it.
//
// If ctx is canceled first, it returns the context's error. Canceling ctx has
// no effect on the operation that produces the result.
func (f Future[T]) Wait(ctx context.Context) (T, error) {
	if r := f.s.result.Load(); r != nil {
		return r.Value, r.Err
	}

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-f.s.ready:
		r := f.s.result.Load()
		return r.Value, r.Err
	}
}

// IsResolved returns true if the result is available.
func (f Future[T]) IsResolved() bool {
	return f.s.result.Load() != nil
}

// Promise is used to provide the result of a [Future].
type Promise[T any] struct {
	s *state[T]
}

// Resolve resolves the future with a value.
//
// It panics if the future has already been resolved.
func (p Promise[T]) Resolve(v T) {
	p.s.set(&result[T]{Value: v})
}

// Reject resolves the future with an error.
//
// It panics if err is nil or if the future has already been resolved.
func (p Promise[T]) Reject(err error) {
	if err == nil {
		panic("future must not be rejected with a nil error")
	}
	p.s.set(&result[T]{Err: err})
}

// IsResolved returns true if the future has been resolved, either successfully
// or with an error.
func (p Promise[T]) IsResolved() bool {
	return p.s.result.Load() != nil
}

type state[T any] struct {
	ready  chan struct{}
	result atomic.Pointer[result[T]]
}

type result[T any] struct {
	Value T
	Err   error
}

func (s *state[T]) set(r *result[T]) {
	if !s.result.CompareAndSwap(nil, r) {
		panic("future has already been resolved")
	}
	close(s.ready)
}
