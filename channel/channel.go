// File: channel/channel.go
// Package channel implements a bounded MPMC channel with a cooperative
// suspend/resume API over a fixed-capacity ring buffer.
// License: Apache-2.0
//
// The shared core combines one ring buffer, one waiter queue per side, and a
// live-producer counter. It is jointly owned by every handle; the last handle
// release finalizes the buffer's live range.

package channel

import (
	"sync/atomic"

	"github.com/LVC1D/ring-buffer/core/ring"
	"github.com/LVC1D/ring-buffer/core/waitq"
)

type config struct {
	metrics *Metrics
}

// Option customizes channel construction.
type Option func(*config)

// WithMetrics attaches a counter set updated by every operation.
func WithMetrics(m *Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// core is the shared channel state behind every handle.
type core[T any] struct {
	buf       *ring.RingBuffer[T]
	producers *waitq.WaiterQueue // suspended sends
	consumers *waitq.WaiterQueue // suspended receives

	senders atomic.Int64 // live producer handles; zero latches the closing phase
	handles atomic.Int64 // all live handles; zero finalizes the buffer

	metrics *Metrics
}

// New creates a channel with usable capacity of capacity-1 values and returns
// its initial open-phase handle pair.
func New[T any](capacity int, opts ...Option) (*Sender[T], *Receiver[T], error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	buf, err := ring.New[T](capacity)
	if err != nil {
		return nil, nil, err
	}
	c := &core[T]{
		buf:       buf,
		producers: waitq.New(),
		consumers: waitq.New(),
		metrics:   cfg.metrics,
	}
	c.senders.Store(1)
	c.handles.Store(2)
	return &Sender[T]{core: c}, &Receiver[T]{core: c}, nil
}

// releaseSender drops one unit of the producer count. The decrement to zero
// happens exactly once across all handles; it seals the buffer against
// further enqueues and then wakes every suspended receive so each
// re-evaluates against the draining buffer. The seal serializes with
// in-flight enqueues on the buffer's slot mutex, so a send either lands
// before the closing transition or fails after it, never both.
func (c *core[T]) releaseSender() {
	if c.senders.Add(-1) == 0 {
		c.buf.Seal()
		c.metrics.addCloseWakes(c.consumers.NotifyAll())
	}
	c.releaseHandle()
}

// releaseHandle drops one shared-ownership reference; the last one finalizes
// the buffer's live range.
func (c *core[T]) releaseHandle() {
	if c.handles.Add(-1) == 0 {
		c.buf.Reset()
	}
}
