// File: channel/sender.go
// Package channel producer handles.
// License: Apache-2.0
//
// The lifecycle phase lives in the handle type: Sender is the open phase and
// exposes Send, ClosingSender is the closing phase and can only be closed.
// An out-of-phase send therefore fails to compile, not at runtime.

package channel

import "sync/atomic"

// Sender is an open-phase producer handle. Handles are not goroutine-safe;
// clone one per producer goroutine.
type Sender[T any] struct {
	core  *core[T]
	spent atomic.Bool
}

// Send stages v for delivery and returns the suspendable operation. The
// value stays with the operation until ownership transfers into the buffer.
func (s *Sender[T]) Send(v T) *SendOp[T] {
	s.ensureLive()
	return &SendOp[T]{core: s.core, value: v}
}

// Clone creates an additional open-phase producer handle, incrementing the
// live-producer count.
func (s *Sender[T]) Clone() *Sender[T] {
	s.ensureLive()
	s.core.senders.Add(1)
	s.core.handles.Add(1)
	return &Sender[T]{core: s.core}
}

// BeginClosing consumes the handle into its closing phase. The producer
// count is unchanged; the unit is released when the closing handle closes.
func (s *Sender[T]) BeginClosing() *ClosingSender[T] {
	if !s.spent.CompareAndSwap(false, true) {
		panic("channel: BeginClosing on a spent Sender")
	}
	return &ClosingSender[T]{core: s.core}
}

// Close releases this producer handle. Closing the last producer moves the
// channel to its closing phase and wakes every suspended receive. Close is
// idempotent.
func (s *Sender[T]) Close() error {
	if !s.spent.CompareAndSwap(false, true) {
		return nil
	}
	s.core.releaseSender()
	return nil
}

func (s *Sender[T]) ensureLive() {
	if s.spent.Load() {
		panic("channel: use of a spent Sender")
	}
}

// ClosingSender is a closing-phase producer handle. No send method exists in
// this phase.
type ClosingSender[T any] struct {
	core  *core[T]
	spent atomic.Bool
}

// Close releases the producer unit carried over from BeginClosing.
func (s *ClosingSender[T]) Close() error {
	if !s.spent.CompareAndSwap(false, true) {
		return nil
	}
	s.core.releaseSender()
	return nil
}
