// File: sched/await.go
// Package sched blocking entry point for callers outside a driver.
// License: Apache-2.0

package sched

import "github.com/LVC1D/ring-buffer/api"

// parker is a waker that releases one blocked goroutine. The buffer of one
// makes a wake arriving before the park observable.
type parker chan struct{}

// Wake implements api.Waker.
func (p parker) Wake() {
	select {
	case p <- struct{}{}:
	default:
	}
}

// Await polls op to completion on the calling goroutine, parking between
// failed attempts until the registered waker fires.
func Await(op api.Pollable) {
	p := make(parker, 1)
	for op.Poll(p) == api.Pending {
		<-p
	}
}
