// Package synckit is a library of blocking concurrent data structures for
// shared-memory programs.
//
// The data structures themselves live in sub-packages: [queue] is a bounded
// blocking FIFO, [orderedset] is an optimistically synchronized sorted set,
// [hashset] is a lock-striped hash set that grows under load, and [pool] is a
// fixed-size worker pool that returns each task's result through a future.
//
// This package holds the [Option] functions shared by the configurable data
// structures.
package synckit
