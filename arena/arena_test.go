package arena_test

import (
	"sync"
	"testing"

	. "github.com/dogmatiq/synckit/arena"
	"github.com/dogmatiq/synckit/internal/test"
	"golang.org/x/sync/errgroup"
)

func TestArena(t *testing.T) {
	t.Parallel()

	t.Run("func New()", func(t *testing.T) {
		t.Parallel()

		t.Run("it returns a zero value", func(t *testing.T) {
			t.Parallel()

			var a Arena[[4]int]
			test.Expect(t, "unexpected value", *a.New(), [4]int{})
		})

		t.Run("it returns a distinct value on each call", func(t *testing.T) {
			t.Parallel()

			a := Arena[int]{SlabSize: 2}
			seen := map[*int]struct{}{}

			for i := 0; i < 10; i++ {
				p := a.New()
				if _, ok := seen[p]; ok {
					t.Fatalf("value %d has the same address as an earlier value", i)
				}
				seen[p] = struct{}{}
			}
		})

		t.Run("it does not move earlier values when a new slab is allocated", func(t *testing.T) {
			t.Parallel()

			a := Arena[int]{SlabSize: 3}
			var values []*int

			for i := 0; i < 10; i++ {
				p := a.New()
				*p = i
				values = append(values, p)
			}

			for i, p := range values {
				test.Expect(t, "value changed after allocation", *p, i)
			}

			test.Expect(t, "unexpected slab count", a.Slabs(), 4)
			test.Expect(t, "unexpected length", a.Len(), 10)
		})

		t.Run("it uses the default slab size when none is set", func(t *testing.T) {
			t.Parallel()

			var a Arena[byte]
			for i := 0; i < DefaultSlabSize+1; i++ {
				a.New()
			}

			test.Expect(t, "unexpected slab count", a.Slabs(), 2)
		})

		t.Run("it is safe for concurrent use", func(t *testing.T) {
			t.Parallel()

			a := Arena[int]{SlabSize: 7}

			var (
				g    errgroup.Group
				m    sync.Mutex
				seen = map[*int]struct{}{}
			)

			for i := 0; i < 8; i++ {
				g.Go(func() error {
					for j := 0; j < 100; j++ {
						p := a.New()

						m.Lock()
						seen[p] = struct{}{}
						m.Unlock()
					}
					return nil
				})
			}

			if err := g.Wait(); err != nil {
				t.Fatal(err)
			}

			test.Expect(t, "unexpected number of distinct values", len(seen), 800)
			test.Expect(t, "unexpected length", a.Len(), 800)
		})
	})

	t.Run("func Release()", func(t *testing.T) {
		t.Parallel()

		t.Run("it resets the arena", func(t *testing.T) {
			t.Parallel()

			a := Arena[int]{SlabSize: 2}
			p := a.New()
			*p = 42
			a.New()
			a.New()

			a.Release()

			test.Expect(t, "unexpected length", a.Len(), 0)
			test.Expect(t, "unexpected slab count", a.Slabs(), 0)
			test.Expect(t, "released value was modified", *p, 42)

			test.Expect(t, "unexpected value after release", *a.New(), 0)
		})
	})
}
