package future_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/dogmatiq/synckit/future"
	"github.com/dogmatiq/synckit/internal/test"
)

func TestFuture(t *testing.T) {
	t.Parallel()

	t.Run("func Ready()", func(t *testing.T) {
		t.Parallel()

		t.Run("it returns a channel that is closed when the future is resolved", func(t *testing.T) {
			t.Parallel()

			future, promise := New[int]()

			test.ExpectChannelWouldBlock(t, future.Ready())

			go func() {
				time.Sleep(50 * time.Millisecond)
				promise.Resolve(42)
			}()

			test.ExpectChannelToClose(t, future.Ready())
		})
	})

	t.Run("func Get()", func(t *testing.T) {
		t.Parallel()

		t.Run("it returns the value if the future is resolved", func(t *testing.T) {
			t.Parallel()

			future, promise := New[int]()
			promise.Resolve(42)

			// additional calls must return the same value
			for i := 0; i < 2; i++ {
				v, err := future.Get()
				if err != nil {
					t.Fatal(err)
				}
				test.Expect(t, "unexpected value", v, 42)
			}
		})

		t.Run("it returns the error if the future is rejected", func(t *testing.T) {
			t.Parallel()

			future, promise := New[int]()
			want := errors.New("<error>")
			promise.Reject(want)

			v, err := future.Get()
			test.Expect(t, "unexpected error", err, want)
			test.Expect(t, "unexpected value", v, 0)
		})

		t.Run("it panics if the future is not resolved", func(t *testing.T) {
			t.Parallel()

			defer func() {
				expect := "future value is not ready"
				if actual := recover(); actual != expect {
					t.Fatalf("unexpected panic value: got %v, want %q", actual, expect)
				}
			}()

			future, _ := New[int]()
			future.Get()
		})
	})

	t.Run("func Wait()", func(t *testing.T) {
		t.Parallel()

		t.Run("it blocks until the future is resolved", func(t *testing.T) {
			t.Parallel()

			future, promise := New[int]()

			go func() {
				time.Sleep(50 * time.Millisecond)
				promise.Resolve(42)
			}()

			ctx, cancel := test.ContextWithTimeout(t, time.Second)
			defer cancel()

			// additional calls must return the same value
			for i := 0; i < 2; i++ {
				v, err := future.Wait(ctx)
				if err != nil {
					t.Fatal(err)
				}
				test.Expect(t, "unexpected value", v, 42)
			}
		})

		t.Run("it returns the error if the future is rejected", func(t *testing.T) {
			t.Parallel()

			future, promise := New[string]()
			want := errors.New("<error>")

			go promise.Reject(want)

			_, err := future.Wait(context.Background())
			test.Expect(t, "unexpected error", err, want)
		})

		t.Run("it returns an error if the context is canceled", func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			future, _ := New[int]()

			_, err := future.Wait(ctx)
			test.Expect(t, "unexpected error", err, context.DeadlineExceeded)
		})
	})

	t.Run("func Resolve()", func(t *testing.T) {
		t.Parallel()

		t.Run("it panics if the future is already resolved", func(t *testing.T) {
			t.Parallel()

			_, promise := New[int]()
			promise.Reject(errors.New("<error>"))

			defer func() {
				expect := "future has already been resolved"
				if actual := recover(); actual != expect {
					t.Fatalf("unexpected panic value: got %v, want %q", actual, expect)
				}
			}()

			promise.Resolve(42)
		})
	})

	t.Run("func Reject()", func(t *testing.T) {
		t.Parallel()

		t.Run("it panics if the error is nil", func(t *testing.T) {
			t.Parallel()

			future, promise := New[int]()

			defer func() {
				expect := "future must not be rejected with a nil error"
				if actual := recover(); actual != expect {
					t.Fatalf("unexpected panic value: got %v, want %q", actual, expect)
				}

				if future.IsResolved() {
					t.Fatal("did not expect future to be resolved")
				}
			}()

			promise.Reject(nil)
		})
	})

	t.Run("func IsResolved()", func(t *testing.T) {
		t.Parallel()

		t.Run("it returns true if the future is resolved", func(t *testing.T) {
			t.Parallel()

			future, promise := New[int]()

			if future.IsResolved() || promise.IsResolved() {
				t.Fatal("did not expect future to be resolved")
			}

			promise.Resolve(42)

			if !future.IsResolved() || !promise.IsResolved() {
				t.Fatal("expected future to be resolved")
			}
		})
	})
}
