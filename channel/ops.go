// File: channel/ops.go
// Package channel suspendable send/receive operations.
// License: Apache-2.0
//
// Both operations follow the same poll contract: attempt the buffer
// operation, notify exactly one opposite-side waiter on success, or register
// their own waiter and report Pending on a capacity transient. After a
// registration each re-probes the buffer; a slot freed between the attempt
// and the registration would have notified before the waiter was queued, so
// the stale registration is cancelled and the attempt repeats.

package channel

import (
	"sync"

	"github.com/LVC1D/ring-buffer/api"
	"github.com/LVC1D/ring-buffer/core/waitq"
)

// Compile-time poll contract compliance.
var (
	_ api.Pollable = (*SendOp[any])(nil)
	_ api.Pollable = (*RecvOp[any])(nil)
)

// SendOp is a suspendable send. It holds the pending value until ownership
// transfers into the buffer; a failed attempt keeps the value armed so the
// next poll retries it without loss or duplication.
type SendOp[T any] struct {
	mu     sync.Mutex
	core   *core[T]
	value  T
	done   bool
	err    error
	waiter *waitq.Waiter
}

// Poll attempts the send. Ready with a nil Err means delivered; Ready with
// api.ErrClosed means the channel lost its last producer before delivery.
// Polling after Ready reports Ready again without side effects.
func (op *SendOp[T]) Poll(wk api.Waker) api.Status {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.done {
		return api.Ready
	}
	for {
		// The enqueue itself decides liveness: the buffer is sealed under
		// its slot mutex at the closing transition, so an attempt against a
		// channel whose last producer closed cannot land.
		if op.core.buf.Enqueue(op.value) {
			var zero T
			op.value = zero // ownership moved into the buffer
			op.finish(nil)
			op.core.metrics.addSend()
			op.core.consumers.NotifyOne()
			return api.Ready
		}
		if op.core.senders.Load() == 0 {
			op.finish(api.ErrClosed)
			return api.Ready
		}
		if op.waiter == nil || !op.waiter.Swap(wk) {
			op.waiter = op.core.producers.Enqueue(wk)
			op.core.metrics.addSendSuspend()
		}
		if op.core.buf.Full() && op.core.senders.Load() > 0 {
			return api.Pending
		}
		// The transient cleared between attempt and registration; retry.
		op.waiter.Cancel()
		op.waiter = nil
	}
}

// Err returns the send outcome. Meaningful once Poll reported Ready.
func (op *SendOp[T]) Err() error {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.err
}

// Cancel neutralizes a suspended send so its queued notification never
// fires. An undelivered value leaves the channel with the operation.
func (op *SendOp[T]) Cancel() {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.waiter != nil {
		op.waiter.Cancel()
		op.waiter = nil
	}
}

// finish latches the result and retires any registration so a queued
// notification cannot be consumed by a completed operation.
func (op *SendOp[T]) finish(err error) {
	if op.waiter != nil {
		op.waiter.Cancel()
		op.waiter = nil
	}
	op.done = true
	op.err = err
}

// RecvOp is a suspendable receive. It never fails on liveness: once zero
// producers remain and the buffer is drained it completes with ok=false.
type RecvOp[T any] struct {
	mu     sync.Mutex
	core   *core[T]
	val    T
	ok     bool
	done   bool
	waiter *waitq.Waiter
}

// Poll attempts the receive. Ready with ok=true delivers a value; Ready with
// ok=false is permanent end-of-stream.
func (op *RecvOp[T]) Poll(wk api.Waker) api.Status {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.done {
		return api.Ready
	}
	for {
		if v, ok := op.core.buf.Dequeue(); ok {
			op.val, op.ok = v, true
			op.finish()
			op.core.metrics.addRecv()
			op.core.producers.NotifyOne()
			return api.Ready
		}
		// Drained is terminal: once the seal is observed no enqueue can
		// land, so sealed-and-empty can never revert to holding a value.
		if op.core.buf.Drained() {
			op.finish()
			return api.Ready
		}
		if op.waiter == nil || !op.waiter.Swap(wk) {
			op.waiter = op.core.consumers.Enqueue(wk)
			op.core.metrics.addRecvSuspend()
		}
		if op.core.buf.Empty() && !op.core.buf.Drained() {
			return api.Pending
		}
		op.waiter.Cancel()
		op.waiter = nil
	}
}

// Value returns the received value; ok is false once the channel is closed
// and drained. Meaningful once Poll reported Ready.
func (op *RecvOp[T]) Value() (T, bool) {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.val, op.ok
}

// Cancel neutralizes a suspended receive so its queued notification never
// fires.
func (op *RecvOp[T]) Cancel() {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.waiter != nil {
		op.waiter.Cancel()
		op.waiter = nil
	}
}

func (op *RecvOp[T]) finish() {
	if op.waiter != nil {
		op.waiter.Cancel()
		op.waiter = nil
	}
	op.done = true
}
