package orderedset

import (
	"sync"
	"sync/atomic"

	"github.com/dogmatiq/synckit/arena"
	"golang.org/x/sys/cpu"
)

// Set is an ordered set that uses optimistic synchronization.
//
// Lookups never block. Insertions and removals lock at most two adjacent nodes
// and only for as long as it takes to re-link them, so operations on distinct
// parts of the set proceed in parallel.
//
// The zero value is an empty set that is ready to use. A Set must not be
// copied after first use.
type Set[T any, C Comparator[T]] struct {
	// Comparator defines the order of the set's members. Two values are the
	// same member if it compares them as equal.
	Comparator C

	// Arena is the allocator used for the set's nodes. If it is nil, an
	// arena is created on first use.
	Arena *arena.Arena[Node[T]]

	once sync.Once
	head *Node[T]

	_    cpu.CacheLinePad
	size atomic.Int64
	_    cpu.CacheLinePad
}

// Insert adds v to the set. It returns false if v was already a member.
func (s *Set[T, C]) Insert(v T) bool {
	s.init()

	for {
		pred, curr := s.find(v)

		pred.lock.Lock()
		curr.lock.Lock()

		if !validate(pred, curr) {
			curr.lock.Unlock()
			pred.lock.Unlock()
			continue
		}

		if curr.compareTo(v, s.Comparator) == 0 {
			curr.lock.Unlock()
			pred.lock.Unlock()
			return false
		}

		n := s.Arena.New()
		n.value = v
		n.next.Store(curr)
		pred.next.Store(n)
		s.size.Add(1)

		curr.lock.Unlock()
		pred.lock.Unlock()
		return true
	}
}

// Remove removes v from the set. It returns false if v was not a member.
func (s *Set[T, C]) Remove(v T) bool {
	s.init()

	for {
		pred, curr := s.find(v)

		pred.lock.Lock()
		curr.lock.Lock()

		if !validate(pred, curr) {
			curr.lock.Unlock()
			pred.lock.Unlock()
			continue
		}

		if curr.compareTo(v, s.Comparator) != 0 {
			curr.lock.Unlock()
			pred.lock.Unlock()
			return false
		}

		curr.marked.Store(true)
		pred.next.Store(curr.next.Load())
		s.size.Add(-1)

		curr.lock.Unlock()
		pred.lock.Unlock()
		return true
	}
}

// Contains returns true if v is a member of the set.
//
// It takes no locks. The result reflects some state of the set between the
// call and its return.
func (s *Set[T, C]) Contains(v T) bool {
	s.init()

	_, curr := s.find(v)
	return curr.compareTo(v, s.Comparator) == 0 && !curr.marked.Load()
}

// Size returns the number of members in the set.
func (s *Set[T, C]) Size() int {
	return int(s.size.Load())
}

// Members returns the members of the set, in order.
//
// It takes no locks. Members inserted or removed while the list is being read
// may or may not be included.
func (s *Set[T, C]) Members() []T {
	s.init()

	var members []T

	for n := s.head.next.Load(); n.kind != tailNode; n = n.next.Load() {
		if !n.marked.Load() {
			members = append(members, n.value)
		}
	}

	return members
}

// init allocates the sentinel nodes on first use.
func (s *Set[T, C]) init() {
	s.once.Do(func() {
		if s.Arena == nil {
			s.Arena = &arena.Arena[Node[T]]{}
		}

		head := s.Arena.New()
		head.kind = headNode

		tail := s.Arena.New()
		tail.kind = tailNode

		head.next.Store(tail)
		s.head = head
	})
}

// find returns the last node that sorts before v, and the node that follows
// it.
//
// It takes no locks, so either node may be removed by another goroutine before
// find returns.
func (s *Set[T, C]) find(v T) (pred, curr *Node[T]) {
	pred = s.head
	curr = pred.next.Load()

	for curr.compareTo(v, s.Comparator) < 0 {
		pred = curr
		curr = curr.next.Load()
	}

	return pred, curr
}

// validate returns true if pred and curr are both still in the list and are
// adjacent. Both nodes must be locked.
func validate[T any](pred, curr *Node[T]) bool {
	return !pred.marked.Load() &&
		!curr.marked.Load() &&
		pred.next.Load() == curr
}
