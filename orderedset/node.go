package orderedset

import (
	"sync/atomic"

	"github.com/dogmatiq/synckit/lock"
)

// kind distinguishes the sentinel nodes at either end of the list from nodes
// that hold members.
type kind uint8

const (
	memberNode kind = iota
	headNode
	tailNode
)

// Node is an element of the linked list that backs a [Set].
//
// Nodes are allocated from the set's arena and are never individually freed,
// so a goroutine that is traversing the list may safely hold a pointer to a
// node that has since been removed.
type Node[T any] struct {
	value  T
	kind   kind
	next   atomic.Pointer[Node[T]]
	marked atomic.Bool
	lock   lock.SpinLock
}

// compareTo performs a 3-way comparison of the node's position in the list
// with the position v would occupy.
//
// The head sentinel sorts before every value and the tail sentinel sorts after
// every value.
func (n *Node[T]) compareTo(v T, c Comparator[T]) int {
	switch n.kind {
	case headNode:
		return -1
	case tailNode:
		return +1
	default:
		return c.Compare(n.value, v)
	}
}
