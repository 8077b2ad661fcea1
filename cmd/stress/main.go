package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/dogmatiq/ferrite"
	"github.com/dogmatiq/synckit"
	"github.com/dogmatiq/synckit/future"
	"github.com/dogmatiq/synckit/hashset"
	"github.com/dogmatiq/synckit/orderedset"
	"github.com/dogmatiq/synckit/pool"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

var (
	goroutines = ferrite.
			Unsigned[uint]("SYNCKIT_STRESS_GOROUTINES", "the number of goroutines that operate on each set concurrently").
			WithDefault(8).
			WithMinimum(1).
			Required()

	operations = ferrite.
			Unsigned[uint]("SYNCKIT_STRESS_OPERATIONS", "the number of random operations performed by each goroutine").
			WithDefault(10000).
			WithMinimum(1).
			Required()

	keySpace = ferrite.
			Unsigned[uint]("SYNCKIT_STRESS_KEY_SPACE", "the number of distinct values operated on").
			WithDefault(1000).
			WithMinimum(1).
			Required()
)

// set is the interface common to the set implementations under test.
type set interface {
	Insert(int) bool
	Remove(int) bool
	Contains(int) bool
	Size() int
}

func main() {
	ferrite.Init()

	logger := slog.New(
		slog.NewJSONHandler(
			os.Stdout,
			&slog.HandlerOptions{
				Level: slog.LevelDebug,
			},
		),
	)

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		logger.Log(ctx, slog.LevelError, "stress test failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Log(ctx, slog.LevelInfo, "stress test passed")
}

func run(ctx context.Context, logger *slog.Logger) error {
	options := []synckit.Option{
		synckit.WithOptionsFromEnvironment(),
		synckit.WithLogger(logger),
	}

	hs := hashset.New[int](
		append(options, synckit.WithConcurrencyLevel(4))...,
	)

	if err := stress(ctx, logger, "hashset", hs); err != nil {
		return err
	}

	var ordered orderedset.Set[int, orderedset.OrderedComparator[int]]

	if err := stress(ctx, logger, "orderedset", &ordered); err != nil {
		return err
	}

	return double(ctx, logger, options)
}

// stress performs random operations against s from several goroutines, then
// verifies that the set's size matches the number of successful insertions
// and removals.
func stress(
	ctx context.Context,
	logger *slog.Logger,
	name string,
	s set,
) error {
	var (
		inserts, removes, hits atomic.Int64
		start                  = time.Now()
	)

	g, ctx := errgroup.WithContext(ctx)

	for i := uint(0); i < goroutines.Value(); i++ {
		r := rand.New(rand.NewSource(int64(i)))

		g.Go(func() error {
			for j := uint(0); j < operations.Value(); j++ {
				if j%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}

				v := r.Intn(int(keySpace.Value()))

				switch r.Intn(3) {
				case 0:
					if s.Insert(v) {
						inserts.Add(1)
					}
				case 1:
					if s.Remove(v) {
						removes.Add(1)
					}
				default:
					if s.Contains(v) {
						hits.Add(1)
					}
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	want := int(inserts.Load() - removes.Load())
	got := s.Size()

	logger.LogAttrs(
		ctx,
		slog.LevelInfo,
		"set stress run complete",
		slog.String("set", name),
		slog.Int64("inserts", inserts.Load()),
		slog.Int64("removes", removes.Load()),
		slog.Int64("hits", hits.Load()),
		slog.Int64("size", int64(got)),
		slog.Float64("elapsed_ms", float64(time.Since(start).Microseconds())/1000),
	)

	if got != want {
		return fmt.Errorf("%s: size is %d, expected %d", name, got, want)
	}

	return nil
}

// double submits tasks that double their input to a pool, then verifies each
// result and that the pool rejects tasks after it is shut down.
func double(
	ctx context.Context,
	logger *slog.Logger,
	options []synckit.Option,
) error {
	p := pool.New[int](options...)
	defer p.Shutdown()

	n := int(operations.Value())
	futures := make([]future.Future[int], 0, n)

	for i := 0; i < n; i++ {
		i := i
		f, err := p.Submit(func() (int, error) {
			return i * 2, nil
		})
		if err != nil {
			return err
		}
		futures = append(futures, f)
	}

	for i, f := range futures {
		v, err := f.Wait(ctx)
		if err != nil {
			return err
		}

		if v != i*2 {
			return fmt.Errorf("pool: task %d produced %d, expected %d", i, v, i*2)
		}
	}

	p.Shutdown()

	if _, err := p.Submit(func() (int, error) { return 0, nil }); err == nil {
		return fmt.Errorf("pool: task was accepted after shutdown")
	}

	logger.LogAttrs(
		ctx,
		slog.LevelInfo,
		"pool run complete",
		slog.Int64("tasks", int64(n)),
		slog.Int64("workers", int64(p.Workers())),
	)

	return nil
}
