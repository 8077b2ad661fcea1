package pool

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/dogmatiq/synckit"
	"github.com/dogmatiq/synckit/future"
	"github.com/dogmatiq/synckit/internal/config"
	"github.com/dogmatiq/synckit/internal/signal"
	"github.com/dogmatiq/synckit/internal/telemetry"
	"github.com/dogmatiq/synckit/queue"
)

// Pool is a fixed-size pool of worker goroutines that execute tasks producing
// values of type T.
//
// If a pool becomes unreachable without having been shut down, it is shut down
// automatically, so its workers do not outlive it. Pools should nonetheless be
// shut down explicitly.
type Pool[T any] struct {
	// The workers reference only the inner pool, which allows the handle to
	// become unreachable while they are running.
	*pool[T]
}

type pool[T any] struct {
	workers  int
	tasks    *queue.Queue[task[T]]
	wg       sync.WaitGroup
	shutdown sync.Once
	done     signal.Latch

	telemetry *telemetry.Recorder
	taskCount telemetry.Instrument[int64]
	inflight  telemetry.Instrument[int64]
	duration  telemetry.Instrument[int64]
}

type task[T any] struct {
	fn      func() (T, error)
	promise future.Promise[T]
}

// New returns a new pool and starts its workers.
func New[T any](options ...synckit.Option) *Pool[T] {
	cfg := config.New(options)

	p := &pool[T]{
		workers: cfg.Pool.Workers,
		tasks:   queue.New[task[T]](cfg.Pool.Workers),
		telemetry: cfg.Telemetry.Recorder(
			"github.com/dogmatiq/synckit/pool",
			telemetry.Type[T]("result_type"),
			telemetry.Int("workers", cfg.Pool.Workers),
		),
	}

	p.taskCount = p.telemetry.Counter("tasks", "{task}", "The number of tasks that have been executed.")
	p.inflight = p.telemetry.UpDownCounter("tasks.inflight", "{task}", "The number of tasks that are currently executing.")
	p.duration = p.telemetry.Histogram("tasks.duration", "ms", "The time taken to execute each task.")

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.work()
	}

	p.telemetry.Info(
		context.Background(),
		"pool.started",
		"worker pool started",
	)

	h := &Pool[T]{p}

	runtime.SetFinalizer(h, func(h *Pool[T]) {
		// Shutdown blocks until the workers exit, which must not hold up the
		// finalizer goroutine.
		go h.pool.stop(true)
	})

	return h
}

// Submit enqueues fn for execution by one of the pool's workers.
//
// It blocks while the pool's queue is full. The returned future is resolved
// with the value and error that fn returns. If fn panics the future is
// rejected with a [*PanicError], and if it calls [runtime.Goexit] the future is
// rejected with [ErrTaskExited].
//
// It returns an error wrapping [ErrShutdown] if the pool has been shut down.
func (p *Pool[T]) Submit(fn func() (T, error)) (future.Future[T], error) {
	if fn == nil {
		panic("task function must not be nil")
	}

	f, promise := future.New[T]()

	if err := p.tasks.Put(task[T]{fn, promise}); err != nil {
		return future.Future[T]{}, fmt.Errorf("unable to submit task: %w", err)
	}

	return f, nil
}

// Shutdown stops the pool from accepting new tasks and blocks until every
// task that was already submitted has completed and all of the workers have
// exited.
//
// It is safe to call Shutdown more than once, and from multiple goroutines;
// every call blocks until the workers have exited. It must not be called from
// within a task.
func (p *Pool[T]) Shutdown() {
	runtime.SetFinalizer(p, nil)
	p.stop(false)
}

// Workers returns the number of workers in the pool.
func (p *Pool[T]) Workers() int {
	return p.workers
}

// Done returns a channel that is closed once the pool has shut down and all of
// its workers have exited.
func (p *Pool[T]) Done() <-chan struct{} {
	return p.done.Done()
}

// IsDone returns true if the pool has shut down and all of its workers have
// exited.
func (p *Pool[T]) IsDone() bool {
	return p.done.IsNotified()
}

// Wait blocks until the pool has shut down and all of its workers have exited,
// or until ctx is canceled.
func (p *Pool[T]) Wait(ctx context.Context) error {
	return signal.Wait(ctx, &p.done)
}

// stop shuts the pool down. abandoned is true if the pool is being shut down
// because its handle became unreachable.
func (p *pool[T]) stop(abandoned bool) {
	p.shutdown.Do(func() {
		ctx := context.Background()
		start := time.Now()

		p.telemetry.Info(
			ctx,
			"pool.stopping",
			"worker pool stopping",
			telemetry.Int("tasks.pending", p.tasks.Len()),
			telemetry.Bool("abandoned", abandoned),
		)

		p.tasks.Shutdown()
		p.wg.Wait()

		p.telemetry.Info(
			ctx,
			"pool.stopped",
			"worker pool stopped",
			telemetry.Duration("elapsed", time.Since(start)),
		)

		p.done.Notify()
	})
}

// work executes tasks until the queue is shut down and drained.
func (p *pool[T]) work() {
	defer p.wg.Done()

	for {
		t, ok := p.tasks.Get()
		if !ok {
			return
		}

		p.run(t)
	}
}

// run executes a single task and resolves its future.
func (p *pool[T]) run(t task[T]) {
	ctx, span := p.telemetry.StartSpan(context.Background(), "task")
	p.inflight(ctx, 1)

	start := time.Now()
	returned := false

	defer func() {
		if returned {
			return
		}

		p.inflight(ctx, -1)
		p.duration(ctx, time.Since(start).Milliseconds())

		var err error
		if v := recover(); v != nil {
			err = &PanicError{v, debug.Stack()}
			p.finish(ctx, span, "panicked")
			span.Error("pool.task.panicked", err)
		} else {
			err = ErrTaskExited
			p.finish(ctx, span, "exited")
			span.Error("pool.task.exited", err)

			// This goroutine is being terminated by runtime.Goexit. Start
			// its replacement before the deferred wg.Done() in work() runs,
			// so that the wait group never drops to zero early.
			p.wg.Add(1)
			go p.work()
		}

		span.End()
		t.promise.Reject(err)
	}()

	v, err := t.fn()
	returned = true

	p.inflight(ctx, -1)
	p.duration(ctx, time.Since(start).Milliseconds())

	if err != nil {
		p.finish(ctx, span, "failed")
		span.Error("pool.task.failed", err)
		span.End()
		t.promise.Reject(err)
		return
	}

	p.finish(ctx, span, "succeeded")
	span.OK()
	span.End()
	t.promise.Resolve(v)
}

// finish records the outcome of a task against the task counter and its span.
func (p *pool[T]) finish(ctx context.Context, span *telemetry.Span, outcome string) {
	attr := telemetry.String("outcome", outcome)
	p.taskCount(ctx, 1, attr)
	span.SetAttributes(attr)
}
