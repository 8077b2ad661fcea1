package orderedset

import "golang.org/x/exp/constraints"

// Comparator is a type that compares two values.
type Comparator[T any] interface {
	// Compare performs a 3-way comparison of a and b.
	Compare(a, b T) int
}

// OrderedComparator is a [Comparator] that compares values that match the
// [constraints.Ordered] constraint.
type OrderedComparator[T constraints.Ordered] struct{}

// Compare performs a 3-way comparison of a and b.
func (OrderedComparator[T]) Compare(a, b T) int {
	if a < b {
		return -1
	}
	if a > b {
		return +1
	}
	return 0
}

// LessComparator is a [Comparator] for types that implement a Less() method.
type LessComparator[T interface{ Less(T) bool }] struct{}

// Compare performs a 3-way comparison of a and b.
func (LessComparator[T]) Compare(a, b T) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return +1
	default:
		return 0
	}
}

// FuncComparator is a [Comparator] implemented by a function.
type FuncComparator[T any] func(a, b T) int

// Compare performs a 3-way comparison of a and b.
func (fn FuncComparator[T]) Compare(a, b T) int {
	return fn(a, b)
}
