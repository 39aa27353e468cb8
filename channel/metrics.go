// File: channel/metrics.go
// Package channel counters for channel activity.
// License: Apache-2.0

package channel

import "sync/atomic"

// Metrics aggregates channel counters. All mutators are nil-receiver safe,
// so an unmetered channel pays a single nil check per operation.
type Metrics struct {
	sends        atomic.Uint64
	receives     atomic.Uint64
	sendSuspends atomic.Uint64
	recvSuspends atomic.Uint64
	closeWakes   atomic.Uint64
}

// NewMetrics creates an empty counter set.
func NewMetrics() *Metrics { return &Metrics{} }

func (m *Metrics) addSend() {
	if m != nil {
		m.sends.Add(1)
	}
}

func (m *Metrics) addRecv() {
	if m != nil {
		m.receives.Add(1)
	}
}

func (m *Metrics) addSendSuspend() {
	if m != nil {
		m.sendSuspends.Add(1)
	}
}

func (m *Metrics) addRecvSuspend() {
	if m != nil {
		m.recvSuspends.Add(1)
	}
}

func (m *Metrics) addCloseWakes(n int) {
	if m != nil {
		m.closeWakes.Add(uint64(n))
	}
}

// Snapshot returns the current counter values keyed for a metrics registry.
func (m *Metrics) Snapshot() map[string]any {
	if m == nil {
		return nil
	}
	return map[string]any{
		"channel.sends":         m.sends.Load(),
		"channel.receives":      m.receives.Load(),
		"channel.send_suspends": m.sendSuspends.Load(),
		"channel.recv_suspends": m.recvSuspends.Load(),
		"channel.close_wakes":   m.closeWakes.Load(),
	}
}
