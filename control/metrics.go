// control/metrics.go
// License: Apache-2.0
//
// Runtime metrics collector for channel and driver counters.
// Exposes counters in a thread-safe map with dynamic registration and a JSON
// snapshot export for debugging surfaces.

package control

import (
	"sync"
	"time"

	"github.com/sugawarayuuta/sonnet"
)

// MetricsRegistry holds mutable and read-only metrics.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Merge bulk-loads a snapshot, e.g. a channel.Metrics Snapshot.
func (mr *MetricsRegistry) Merge(vals map[string]any) {
	mr.mu.Lock()
	for k, v := range vals {
		mr.metrics[k] = v
	}
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// GetSnapshot returns the latest metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	return out
}

// ExportJSON encodes the current snapshot.
func (mr *MetricsRegistry) ExportJSON() ([]byte, error) {
	return sonnet.Marshal(mr.GetSnapshot())
}
