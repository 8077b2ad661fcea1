package queue_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dogmatiq/synckit/internal/test"
	. "github.com/dogmatiq/synckit/queue"
	"pgregory.net/rapid"
)

func TestQueue(t *testing.T) {
	t.Parallel()

	t.Run("func New()", func(t *testing.T) {
		t.Parallel()

		t.Run("it panics if the capacity is less than 1", func(t *testing.T) {
			t.Parallel()

			defer func() {
				test.Expect(
					t,
					"unexpected panic value",
					recover(),
					any("queue capacity must be at least 1"),
				)
			}()

			New[int](0)
		})
	})

	t.Run("func Put()", func(t *testing.T) {
		t.Parallel()

		t.Run("it blocks while the queue is full", func(t *testing.T) {
			t.Parallel()

			q := New[int](2)
			expectPut(t, q, 1)
			expectPut(t, q, 2)

			task := test.RunInBackground(t, func() error {
				return q.Put(3)
			})

			test.ExpectChannelToBlockForDuration(t, 50*time.Millisecond, task.Done())

			expectGet(t, q, 1)

			if err := task.Wait(); err != nil {
				t.Fatal(err)
			}

			expectGet(t, q, 2)
			expectGet(t, q, 3)
		})

		t.Run("it returns an error if the queue has been shut down", func(t *testing.T) {
			t.Parallel()

			q := New[int](1)
			q.Shutdown()

			err := q.Put(1)
			if !errors.Is(err, ErrShutdown) {
				t.Fatalf("unexpected error: got %v, want %v", err, ErrShutdown)
			}

			test.Expect(t, "rejected item was buffered", q.Len(), 0)
		})

		t.Run("it returns an error if the queue is shut down while blocked", func(t *testing.T) {
			t.Parallel()

			q := New[int](1)
			expectPut(t, q, 1)

			task := test.RunInBackground(t, func() error {
				return q.Put(2)
			})

			test.ExpectChannelToBlockForDuration(t, 50*time.Millisecond, task.Done())

			q.Shutdown()

			err := task.Wait()
			if !errors.Is(err, ErrShutdown) {
				t.Fatalf("unexpected error: got %v, want %v", err, ErrShutdown)
			}

			expectGet(t, q, 1)
			expectDrained(t, q)
		})
	})

	t.Run("func Get()", func(t *testing.T) {
		t.Parallel()

		t.Run("it returns items in the order they were added", func(t *testing.T) {
			t.Parallel()

			q := New[string](3)
			expectPut(t, q, "a")
			expectPut(t, q, "b")
			expectPut(t, q, "c")

			expectGet(t, q, "a")
			expectGet(t, q, "b")
			expectGet(t, q, "c")
		})

		t.Run("it blocks while the queue is empty", func(t *testing.T) {
			t.Parallel()

			q := New[int](1)
			result := make(chan int, 1)

			task := test.RunInBackground(t, func() error {
				v, ok := q.Get()
				if !ok {
					return errors.New("queue reported no more items")
				}
				result <- v
				return nil
			})

			test.ExpectChannelToBlockForDuration(t, 50*time.Millisecond, task.Done())

			expectPut(t, q, 42)

			if err := task.Wait(); err != nil {
				t.Fatal(err)
			}

			test.ExpectChannelToReceive(t, result, 42)
		})

		t.Run("it returns buffered items after shutdown", func(t *testing.T) {
			t.Parallel()

			q := New[int](3)
			expectPut(t, q, 1)
			expectPut(t, q, 2)
			q.Shutdown()

			expectGet(t, q, 1)
			expectGet(t, q, 2)
			expectDrained(t, q)
		})

		t.Run("it wakes blocked consumers when the queue is shut down", func(t *testing.T) {
			t.Parallel()

			q := New[int](1)

			var tasks []*test.Task
			for i := 0; i < 3; i++ {
				tasks = append(tasks, test.RunInBackground(t, func() error {
					if _, ok := q.Get(); ok {
						return errors.New("expected no more items")
					}
					return nil
				}))
			}

			test.ExpectChannelToBlockForDuration(t, 50*time.Millisecond, tasks[0].Done())

			q.Shutdown()

			for _, task := range tasks {
				if err := task.Wait(); err != nil {
					t.Fatal(err)
				}
			}
		})

		t.Run("it returns nil interface values", func(t *testing.T) {
			t.Parallel()

			q := New[error](1)
			expectPut(t, q, nil)

			v, ok := q.Get()
			if !ok {
				t.Fatal("expected an item")
			}
			if v != nil {
				t.Fatalf("unexpected value: %v", v)
			}
		})
	})

	t.Run("func Shutdown()", func(t *testing.T) {
		t.Parallel()

		t.Run("it is idempotent", func(t *testing.T) {
			t.Parallel()

			q := New[int](1)
			q.Shutdown()
			q.Shutdown()

			test.Expect(t, "expected queue to be shut down", q.IsShutdown(), true)
		})
	})

	t.Run("it hands off every item between a producer and a consumer", func(t *testing.T) {
		t.Parallel()

		const n = 1000
		q := New[int](1)

		test.RunInBackground(t, func() error {
			defer q.Shutdown()

			for i := 0; i < n; i++ {
				if err := q.Put(i); err != nil {
					return err
				}
			}
			return nil
		})

		for i := 0; i < n; i++ {
			expectGet(t, q, i)
		}

		expectDrained(t, q)
	})

	t.Run("it behaves like a bounded FIFO", func(t *testing.T) {
		t.Parallel()

		rapid.Check(t, func(t *rapid.T) {
			capacity := rapid.IntRange(1, 8).Draw(t, "capacity")
			q := New[int](capacity)
			var model []int

			t.Repeat(
				map[string]func(*rapid.T){
					"put": func(t *rapid.T) {
						if len(model) == capacity {
							t.Skip("queue is full")
						}

						v := rapid.Int().Draw(t, "value")
						if err := q.Put(v); err != nil {
							t.Fatal(err)
						}
						model = append(model, v)
					},
					"get": func(t *rapid.T) {
						if len(model) == 0 {
							t.Skip("queue is empty")
						}

						v, ok := q.Get()
						if !ok {
							t.Fatal("expected an item")
						}

						test.Expect(t, "unexpected item", v, model[0])
						model = model[1:]
					},
					"": func(t *rapid.T) {
						test.Expect(t, "unexpected length", q.Len(), len(model))
						test.Expect(t, "unexpected capacity", q.Cap(), capacity)
					},
				},
			)
		})
	})
}

func expectPut[T any](t *testing.T, q *Queue[T], v T) {
	t.Helper()

	if err := q.Put(v); err != nil {
		t.Fatal(err)
	}
}

func expectGet[T any](t *testing.T, q *Queue[T], want T) {
	t.Helper()

	got, ok := q.Get()
	if !ok {
		t.Fatal("expected an item, queue reported no more items")
	}

	test.Expect(t, "unexpected item", got, want)
}

func expectDrained[T any](t *testing.T, q *Queue[T]) {
	t.Helper()

	if v, ok := q.Get(); ok {
		t.Fatalf("expected no more items, got %v", v)
	}
}
