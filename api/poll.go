// File: api/poll.go
// Package api defines the cooperative suspend/resume contracts shared by all
// channel components.
// License: Apache-2.0

package api

// Status reports the outcome of a single poll attempt.
type Status int

const (
	// Pending means the operation could not progress and registered a waker
	// to be retried later.
	Pending Status = iota
	// Ready means the operation completed and its result is available.
	Ready
)

// Waker resumes one suspended operation. Implementations must be safe for
// concurrent use and must not poll synchronously from inside Wake.
type Waker interface {
	Wake()
}

// WakeFunc adapts a plain function to the Waker interface.
type WakeFunc func()

// Wake implements Waker.
func (f WakeFunc) Wake() { f() }

// Pollable is a suspendable unit of work driven by an external scheduler.
type Pollable interface {
	// Poll attempts to advance the operation. On Pending the given waker has
	// been registered and fires once when a retry may succeed.
	Poll(wk Waker) Status

	// Cancel neutralizes any queued registration so no waker ever fires for
	// an operation that no longer exists.
	Cancel()
}
