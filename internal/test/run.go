package test

import (
	"time"
)

// Task is a blocking call running in its own goroutine.
type Task struct {
	t    TestingT
	done chan struct{}
	err  error
}

// RunInBackground executes fn in its own goroutine.
//
// If fn has not returned by the time the test ends, the test fails. The
// goroutine itself is not stopped, as the calls under test are not
// cancelable.
func RunInBackground(
	t TestingT,
	fn func() error,
) *Task {
	t.Helper()

	task := &Task{
		t:    t,
		done: make(chan struct{}),
	}

	go func() {
		defer close(task.done)
		task.err = fn()
	}()

	t.Cleanup(func() {
		t.Helper()

		select {
		case <-task.done:
		case <-time.After(DefaultTimeout):
			t.Errorf("background task did not return within %s of the test ending", DefaultTimeout)
		}
	})

	return task
}

// Done returns a channel that is closed when the function returns.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the function returns, then returns its error.
//
// The test fails if the function does not return within [DefaultTimeout].
func (t *Task) Wait() error {
	t.t.Helper()

	select {
	case <-t.done:
		return t.err
	case <-time.After(DefaultTimeout):
		t.t.Fatalf("background task did not return within %s", DefaultTimeout)
		return nil
	}
}

// Err returns the error returned by the function.
//
// It fails the test if the function has not yet returned.
func (t *Task) Err() error {
	t.t.Helper()

	select {
	case <-t.done:
	default:
		t.t.Fatal("background task has not returned")
	}

	return t.err
}
