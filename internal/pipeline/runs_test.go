package pipeline

import (
	"testing"
	"time"
)

func TestNewRunIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := newRunID()
		if len(id) != 26 {
			t.Fatalf("run ID length = %d, want 26: %q", len(id), id)
		}
		if seen[id] {
			t.Fatalf("duplicate run ID %q", id)
		}
		seen[id] = true
	}
}

func TestEncodeULID(t *testing.T) {
	tests := []struct {
		name string
		in   [16]byte
		want string
	}{
		{"zero", [16]byte{}, "00000000000000000000000000"},
		{"all ones", [16]byte{
			0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
			0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		}, "7ZZZZZZZZZZZZZZZZZZZZZZZZZ"},
		{"low bit", [16]byte{15: 0x01}, "00000000000000000000000001"},
		{"high bits", [16]byte{0: 0xE0}, "70000000000000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeULID(tt.in); got != tt.want {
				t.Errorf("encodeULID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunSetFindings(t *testing.T) {
	run := NewRun("/problems", nil)
	run.SetFindings(map[string][]string{
		"hello":              {"has no WA submissions", "has no TLE submissions"},
		"hello/problem.yaml": {"there is no metadata"},
	})

	snap := run.Snapshot()
	if snap.Progress.Findings != 3 {
		t.Errorf("Findings = %d, want 3", snap.Progress.Findings)
	}
	if got := run.Findings(); len(got) != 2 {
		t.Errorf("findings map has %d keys, want 2", len(got))
	}
}

func TestRunStoreCleanup(t *testing.T) {
	store := NewRunStore(time.Minute)

	stale := NewRun("/old", nil)
	stale.UpdatedAt = time.Now().Add(-2 * time.Minute)
	store.Put(stale)

	fresh := NewRun("/new", nil)
	store.Put(fresh)

	store.Cleanup()

	if store.Get(stale.ID) != nil {
		t.Errorf("stale run survived cleanup")
	}
	if store.Get(fresh.ID) == nil {
		t.Errorf("fresh run evicted by cleanup")
	}
}

func TestRunSnapshotIsCopy(t *testing.T) {
	run := NewRun("/problems", []string{"hello"})
	snap := run.Snapshot()
	snap.Problems[0] = "mutated"
	if run.Problems[0] != "hello" {
		t.Errorf("snapshot shares problem slice with run")
	}
}
