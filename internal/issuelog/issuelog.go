// Package issuelog collects audit findings as an append-only multimap from a
// key (statement filename, problem shortname, or the run-wide sentinel) to the
// messages reported against it.
package issuelog

import (
	"sort"
	"sync"
)

// GeneralKey collects findings that concern the whole run rather than a single
// file or problem.
const GeneralKey = "_general_"

// Log is an append-only, keyed list of findings. Keys are never removed and
// messages are never mutated or deduplicated; callers dedupe before logging
// where they want set semantics. Safe for concurrent appends.
type Log struct {
	mu      sync.Mutex
	entries map[string][]string
}

// New returns an empty log.
func New() *Log {
	return &Log{entries: make(map[string][]string)}
}

// FromSnapshot rebuilds a log from a snapshot map, copying it. Used to render
// reports for finished runs whose findings were captured earlier.
func FromSnapshot(m map[string][]string) *Log {
	l := New()
	for k, msgs := range m {
		cp := make([]string, len(msgs))
		copy(cp, msgs)
		l.entries[k] = cp
	}
	return l
}

// Warn records a finding under the given key.
func (l *Log) Warn(key, message string) {
	l.append(key, message)
}

// Error records an error under the given key. Warnings and errors are stored
// identically; callers choose wording.
func (l *Log) Error(key, message string) {
	l.append(key, message)
}

func (l *Log) append(key, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[key] = append(l.entries[key], message)
}

// Keys returns all keys in lexicographic order.
func (l *Log) Keys() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	keys := make([]string, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Messages returns the findings for a key in insertion order.
func (l *Log) Messages(key string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	msgs := l.entries[key]
	out := make([]string, len(msgs))
	copy(out, msgs)
	return out
}

// Len returns the total number of recorded findings.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, msgs := range l.entries {
		n += len(msgs)
	}
	return n
}

// Merge appends every entry of other into l, preserving other's per-key
// insertion order. Used to fold per-worker log partitions into the run log.
func (l *Log) Merge(other *Log) {
	if other == nil {
		return
	}
	other.mu.Lock()
	defer other.mu.Unlock()
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, msgs := range other.entries {
		l.entries[k] = append(l.entries[k], msgs...)
	}
}

// Snapshot returns a copy of the full key/message map.
func (l *Log) Snapshot() map[string][]string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string][]string, len(l.entries))
	for k, msgs := range l.entries {
		cp := make([]string, len(msgs))
		copy(cp, msgs)
		out[k] = cp
	}
	return out
}
