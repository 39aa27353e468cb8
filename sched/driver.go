// File: sched/driver.go
// Package sched drives suspendable operations to completion.
// License: Apache-2.0
//
// Driver dispatches poll attempts across worker goroutines. A task's waker
// re-submits the task to the run queue, so a suspended operation consumes no
// worker until its notification fires.

package sched

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/LVC1D/ring-buffer/api"
)

type driverConfig struct {
	workers    int
	queueDepth int
}

// DriverOption customizes driver initialization.
type DriverOption func(*driverConfig)

// WithWorkers sets the number of polling worker goroutines.
func WithWorkers(n int) DriverOption {
	return func(c *driverConfig) { c.workers = n }
}

// WithQueueDepth sets the run queue depth before submission falls back to a
// spilling goroutine.
func WithQueueDepth(n int) DriverOption {
	return func(c *driverConfig) { c.queueDepth = n }
}

// Driver manages a pool of workers polling spawned tasks.
type Driver struct {
	runq    chan *Task
	closeCh chan struct{}
	closed  atomic.Bool
	mu      sync.RWMutex // orders in-flight Spawns before the close latch
	wg      sync.WaitGroup
	spills  sync.WaitGroup
}

// NewDriver creates a driver and starts its workers.
func NewDriver(opts ...DriverOption) *Driver {
	cfg := driverConfig{workers: runtime.NumCPU(), queueDepth: 1024}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.workers <= 0 {
		cfg.workers = runtime.NumCPU()
	}
	if cfg.queueDepth < cfg.workers {
		cfg.queueDepth = cfg.workers
	}
	d := &Driver{
		runq:    make(chan *Task, cfg.queueDepth),
		closeCh: make(chan struct{}),
	}
	for i := 0; i < cfg.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Spawn schedules op for polling and returns its join handle. Returns an
// error if the driver is closed. Holding the read lock across the submission
// means any accepted task is queued before the close latch can be set, so
// Close's drain always sees it.
func (d *Driver) Spawn(op api.Pollable) (*Task, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed.Load() {
		return nil, api.ErrDriverClosed
	}
	t := &Task{op: op, d: d, done: make(chan struct{})}
	d.schedule(t)
	return t, nil
}

// Close stops the workers after draining tasks already queued; every task
// accepted by Spawn is run before Close returns. Suspended tasks whose
// wakers fire later are not resumed.
func (d *Driver) Close() {
	d.mu.Lock()
	latched := d.closed.CompareAndSwap(false, true)
	d.mu.Unlock()
	if !latched {
		return
	}
	close(d.closeCh)
	d.wg.Wait()
	d.spills.Wait()
	// Wakers may park a task after the workers exit; run the leftovers.
	for {
		select {
		case t := <-d.runq:
			t.run()
		default:
			return
		}
	}
}

// resubmit re-enters a woken task. After close the workers are gone, so the
// task gets a direct poll instead; an operation already Ready still
// completes.
func (d *Driver) resubmit(t *Task) {
	d.mu.RLock()
	if d.closed.Load() {
		d.mu.RUnlock()
		if t.queued.CompareAndSwap(false, true) {
			go t.run()
		}
		return
	}
	d.schedule(t)
	d.mu.RUnlock()
}

// schedule queues a task for the workers. Callers hold the read lock with
// the close latch unset, which orders every submission (spills included)
// before Close's shutdown sequence.
func (d *Driver) schedule(t *Task) {
	if !t.queued.CompareAndSwap(false, true) {
		return // a resubmission is already in flight
	}
	select {
	case d.runq <- t:
	default:
		// Run queue momentarily full; spill to a goroutine rather than
		// block the waker. If the driver shuts down first, poll the task
		// here instead of dropping it. Close waits for spills before its
		// final drain, so a spilled enqueue is never left unpopped.
		d.spills.Add(1)
		go func() {
			defer d.spills.Done()
			select {
			case d.runq <- t:
			case <-d.closeCh:
				t.run()
			}
		}()
	}
}

func (d *Driver) worker() {
	defer d.wg.Done()
	for {
		select {
		case t := <-d.runq:
			t.run()
		case <-d.closeCh:
			for {
				select {
				case t := <-d.runq:
					t.run()
				default:
					return
				}
			}
		}
	}
}

// Task is a spawned operation's join handle. It is also the waker passed to
// every poll of its operation.
type Task struct {
	op       api.Pollable
	d        *Driver
	done     chan struct{}
	queued   atomic.Bool
	finished atomic.Bool
}

// Wake implements api.Waker by re-submitting the task.
func (t *Task) Wake() { t.d.resubmit(t) }

// Done is closed once the operation reports Ready.
func (t *Task) Done() <-chan struct{} { return t.done }

func (t *Task) run() {
	t.queued.Store(false)
	if t.poll() == api.Ready {
		if t.finished.CompareAndSwap(false, true) {
			close(t.done)
		}
	}
}

// poll shields workers from panicking operations; a panicking task is
// treated as finished.
func (t *Task) poll() (st api.Status) {
	defer func() {
		if r := recover(); r != nil {
			st = api.Ready
		}
	}()
	return t.op.Poll(t)
}
