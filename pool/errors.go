package pool

import (
	"errors"
	"fmt"

	"github.com/dogmatiq/synckit/queue"
)

// ErrShutdown is returned by [Pool.Submit] when the pool has been shut down.
var ErrShutdown = queue.ErrShutdown

// ErrTaskExited is the error delivered to a task's future when the task
// terminates its goroutine by calling [runtime.Goexit].
var ErrTaskExited = errors.New("task exited without returning")

// PanicError is the error delivered to a task's future when the task panics.
type PanicError struct {
	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace of the goroutine at the point of the panic.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
