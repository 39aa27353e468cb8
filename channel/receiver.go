// File: channel/receiver.go
// Package channel consumer handle.
// License: Apache-2.0

package channel

import "sync/atomic"

// Receiver is the consumer handle. It serves both the open and closing
// phases; the closed phase is observed dynamically by Recv once the buffer
// is drained with zero producers left.
type Receiver[T any] struct {
	core  *core[T]
	spent atomic.Bool
}

// Recv returns the suspendable receive operation. It yields a value while
// any remain and completes with ok=false once the channel is closed and
// drained.
func (r *Receiver[T]) Recv() *RecvOp[T] {
	r.ensureLive()
	return &RecvOp[T]{core: r.core}
}

// Clone creates an additional consumer handle. Receivers do not participate
// in the live-producer count.
func (r *Receiver[T]) Clone() *Receiver[T] {
	r.ensureLive()
	r.core.handles.Add(1)
	return &Receiver[T]{core: r.core}
}

// Close releases this consumer handle. Idempotent; receiver destruction
// never affects producer-side liveness.
func (r *Receiver[T]) Close() error {
	if !r.spent.CompareAndSwap(false, true) {
		return nil
	}
	r.core.releaseHandle()
	return nil
}

func (r *Receiver[T]) ensureLive() {
	if r.spent.Load() {
		panic("channel: use of a spent Receiver")
	}
}
