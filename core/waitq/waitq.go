// File: core/waitq/waitq.go
// Package waitq implements the FIFO registry of suspended-operation wakeups.
// License: Apache-2.0
//
// One WaiterQueue instance serves blocked producers and another serves
// blocked consumers. Insertion order equals suspension order; the queue never
// inspects the operation behind a notification, it only fires the waker.
// The queue lock is released before any waker fires.

package waitq

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/LVC1D/ring-buffer/api"
)

type waiterState int32

const (
	stateQueued waiterState = iota
	stateFired
	stateCancelled
)

// Waiter is a single queued wake notification.
type Waiter struct {
	mu    sync.Mutex
	wk    api.Waker
	state waiterState
}

// Cancel neutralizes the notification. A cancelled waiter popped by a notify
// is discarded, never fired.
func (w *Waiter) Cancel() {
	w.mu.Lock()
	if w.state == stateQueued {
		w.state = stateCancelled
	}
	w.mu.Unlock()
}

// Swap re-arms a still-queued waiter with a fresh waker so a re-polled
// pending operation does not queue twice; returns false once the waiter has
// fired or was cancelled.
func (w *Waiter) Swap(wk api.Waker) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != stateQueued {
		return false
	}
	w.wk = wk
	return true
}

// fire triggers the waker exactly once; reports false for a waiter that was
// cancelled or already fired.
func (w *Waiter) fire() bool {
	w.mu.Lock()
	if w.state != stateQueued {
		w.mu.Unlock()
		return false
	}
	w.state = stateFired
	wk := w.wk
	w.mu.Unlock()
	wk.Wake()
	return true
}

// WaiterQueue is a FIFO registry of wake notifications.
type WaiterQueue struct {
	mu sync.Mutex
	q  *queue.Queue
}

// New creates an empty waiter queue.
func New() *WaiterQueue {
	return &WaiterQueue{q: queue.New()}
}

// Enqueue appends a notification for wk and returns its handle.
func (wq *WaiterQueue) Enqueue(wk api.Waker) *Waiter {
	w := &Waiter{wk: wk}
	wq.mu.Lock()
	wq.q.Add(w)
	wq.mu.Unlock()
	return w
}

// NotifyOne pops the oldest live notification and fires it after releasing
// the queue lock. Cancelled entries found on the way are discarded. Reports
// whether a waker fired.
func (wq *WaiterQueue) NotifyOne() bool {
	for {
		wq.mu.Lock()
		if wq.q.Length() == 0 {
			wq.mu.Unlock()
			return false
		}
		w := wq.q.Remove().(*Waiter)
		wq.mu.Unlock()
		if w.fire() {
			return true
		}
	}
}

// NotifyAll drains the queue and fires every live notification outside the
// lock; returns the number fired. Used once per channel, at the transition
// to the closing phase.
func (wq *WaiterQueue) NotifyAll() int {
	wq.mu.Lock()
	drained := make([]*Waiter, 0, wq.q.Length())
	for wq.q.Length() > 0 {
		drained = append(drained, wq.q.Remove().(*Waiter))
	}
	wq.mu.Unlock()

	fired := 0
	for _, w := range drained {
		if w.fire() {
			fired++
		}
	}
	return fired
}

// Len reports queued notifications, including cancelled entries not yet
// reaped by a notify.
func (wq *WaiterQueue) Len() int {
	wq.mu.Lock()
	defer wq.mu.Unlock()
	return wq.q.Length()
}
