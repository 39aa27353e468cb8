// File: core/ring/ring.go
// Package ring implements the bounded circular buffer backing the channel.
// License: Apache-2.0
//
// RingBuffer keeps its cursors independently atomic so full/empty probes need
// no lock; the multi-step slot mutation itself runs under a single short-held
// mutex so a half-written slot is never observable.

package ring

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/LVC1D/ring-buffer/api"
)

// Ensure compile-time interface compliance.
var _ api.Ring[any] = (*RingBuffer[any])(nil)

// RingBuffer is a bounded MPMC circular buffer. One slot stays permanently
// unused so that head == tail means empty and (head+1) % capacity == tail
// means full without a separate count field.
type RingBuffer[T any] struct {
	head atomic.Uint64 // next write index
	_    cpu.CacheLinePad
	tail atomic.Uint64 // next read index
	_    cpu.CacheLinePad

	mu       sync.Mutex // guards slot mutation only, never held across probes
	sealed   atomic.Bool
	slots    []T
	capacity uint64
}

// New allocates a ring buffer with usable capacity of capacity-1 slots.
func New[T any](capacity int) (*RingBuffer[T], error) {
	if capacity < 2 {
		return nil, api.ErrInvalidCapacity
	}
	return &RingBuffer[T]{
		slots:    make([]T, capacity),
		capacity: uint64(capacity),
	}, nil
}

// Enqueue writes v into the head slot and advances head; returns false
// without touching the slot array when full.
func (r *RingBuffer[T]) Enqueue(v T) bool {
	if r.Full() {
		return false
	}
	r.mu.Lock()
	if r.sealed.Load() {
		r.mu.Unlock()
		return false
	}
	head := r.head.Load()
	if (head+1)%r.capacity == r.tail.Load() {
		r.mu.Unlock()
		return false
	}
	r.slots[head] = v
	r.head.Store((head + 1) % r.capacity)
	r.mu.Unlock()
	return true
}

// Dequeue reads the tail slot, releases it and advances tail; ok is false
// when empty.
func (r *RingBuffer[T]) Dequeue() (T, bool) {
	var zero T
	if r.Empty() {
		return zero, false
	}
	r.mu.Lock()
	tail := r.tail.Load()
	if r.head.Load() == tail {
		r.mu.Unlock()
		return zero, false
	}
	v := r.slots[tail]
	r.slots[tail] = zero // drop the vacated slot's reference
	r.tail.Store((tail + 1) % r.capacity)
	r.mu.Unlock()
	return v, true
}

// Empty reports whether the buffer holds no items. Snapshot probe, no lock.
func (r *RingBuffer[T]) Empty() bool {
	return r.head.Load() == r.tail.Load()
}

// Full reports whether the buffer cannot accept another item.
func (r *RingBuffer[T]) Full() bool {
	return (r.head.Load()+1)%r.capacity == r.tail.Load()
}

// Len returns the number of live slots in [tail, head).
func (r *RingBuffer[T]) Len() int {
	head := r.head.Load()
	tail := r.tail.Load()
	return int((head + r.capacity - tail) % r.capacity)
}

// Cap returns usable capacity; one slot is reserved to disambiguate full
// from empty.
func (r *RingBuffer[T]) Cap() int {
	return int(r.capacity) - 1
}

// Seal permanently refuses further enqueues. Taking the slot mutex orders
// the seal after every enqueue already in its mutation region, so a sealed
// buffer can only shrink.
func (r *RingBuffer[T]) Seal() {
	r.mu.Lock()
	r.sealed.Store(true)
	r.mu.Unlock()
}

// Sealed reports whether the buffer refuses further enqueues.
func (r *RingBuffer[T]) Sealed() bool {
	return r.sealed.Load()
}

// Drained reports the terminal state: sealed with nothing left to read.
// The seal is checked first; once it is observed, no new value can land, so
// a subsequent empty probe is permanent.
func (r *RingBuffer[T]) Drained() bool {
	return r.sealed.Load() && r.Empty()
}

// Reset finalizes exactly the live range [tail, head) and rewinds both
// cursors. Walking tail to head bounds the release to initialized slots;
// slots outside the live range are never touched.
func (r *RingBuffer[T]) Reset() {
	var zero T
	r.mu.Lock()
	head := r.head.Load()
	for i := r.tail.Load(); i != head; i = (i + 1) % r.capacity {
		r.slots[i] = zero
	}
	r.head.Store(0)
	r.tail.Store(0)
	r.mu.Unlock()
}
