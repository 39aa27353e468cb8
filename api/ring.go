// Package api
//
// Bounded circular buffer contract for cross-thread producer/consumer use.

package api

// Ring is a bounded circular buffer contract.
type Ring[T any] interface {
	// Enqueue adds an item, returns false if full.
	Enqueue(item T) bool
	// Dequeue removes the oldest item, returns false if empty.
	Dequeue() (T, bool)
	// Full reports whether no further item can be accepted.
	Full() bool
	// Empty reports whether the buffer holds no items.
	Empty() bool
	// Len returns current number of items.
	Len() int
	// Cap returns usable capacity.
	Cap() int
}
