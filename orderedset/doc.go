// Package orderedset provides a sorted set that uses optimistic
// synchronization.
//
// The set is a singly linked list in ascending order. Goroutines traverse it
// without taking any locks, then lock only the two nodes either side of the
// position they wish to change and confirm that those nodes are still adjacent
// and still members before changing anything. If the confirmation fails, the
// operation starts over.
//
// Removal is two-phase: a node is first marked as removed, then unlinked. A
// marked node is never a member, even if another goroutine can still reach it.
package orderedset
