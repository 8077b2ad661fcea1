// Package queue provides a bounded, blocking, first-in first-out queue that
// can be shut down.
//
// It is the hand-off point between producers and consumers that run in
// separate goroutines: producers block while the queue is full and consumers
// block while it is empty. Once the queue is shut down, producers are turned
// away but consumers continue to receive the items that were already
// buffered.
package queue
