// Package pool provides a fixed-size pool of worker goroutines that execute
// submitted tasks and deliver their results through futures.
//
// Tasks are buffered in a bounded queue with one slot per worker, so
// submitting a task blocks only while every worker is busy and the queue is
// full. Shutting a pool down stops it accepting new tasks, lets the workers
// finish every task that was already submitted, and waits for the workers to
// exit.
package pool
