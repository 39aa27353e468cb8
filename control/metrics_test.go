// control/metrics_test.go
// License: Apache-2.0

package control

import (
	"testing"

	"github.com/sugawarayuuta/sonnet"
)

func TestRegistrySetAndSnapshot(t *testing.T) {
	reg := NewMetricsRegistry()
	reg.Set("channel.sends", uint64(7))
	reg.Merge(map[string]any{"channel.receives": uint64(7), "channel.send_suspends": uint64(2)})

	snap := reg.GetSnapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot has %d keys, want 3", len(snap))
	}
	if snap["channel.sends"] != uint64(7) {
		t.Errorf("channel.sends = %v, want 7", snap["channel.sends"])
	}

	// Snapshot is a copy: mutating it must not touch the registry.
	snap["channel.sends"] = uint64(0)
	if reg.GetSnapshot()["channel.sends"] != uint64(7) {
		t.Error("snapshot mutation leaked into the registry")
	}
}

func TestExportJSON(t *testing.T) {
	reg := NewMetricsRegistry()
	reg.Set("channel.sends", uint64(3))
	reg.Set("channel.receives", uint64(1))

	raw, err := reg.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	var decoded map[string]uint64
	if err := sonnet.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["channel.sends"] != 3 || decoded["channel.receives"] != 1 {
		t.Errorf("decoded %v, want sends=3 receives=1", decoded)
	}
}
