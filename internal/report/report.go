package report

import (
	"sort"
	"sync"

	"github.com/eugenenazirov/replace-tokens/internal/input"
)

// Entry describes one rewritten file.
type Entry struct {
	Path         string
	Encoding     input.FileEncoding
	Replacements int
	Bytes        int
}

// Summary aggregates the entries of a run.
type Summary struct {
	Files        int
	Replacements int
	Bytes        int
}

// Recorder collects entries from concurrent file tasks.
type Recorder interface {
	Record(entry Entry)
	Entries() []Entry
	Summary() Summary
}

// MemoryRecorder keeps entries in memory and guards access with a RWMutex.
type MemoryRecorder struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryRecorder returns an empty recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Record stores entry.
func (r *MemoryRecorder) Record(entry Entry) {
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
}

// Entries returns a copy of the recorded entries sorted by path.
func (r *MemoryRecorder) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

// Summary totals the recorded entries.
func (r *MemoryRecorder) Summary() Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Summary{Files: len(r.entries)}
	for _, e := range r.entries {
		s.Replacements += e.Replacements
		s.Bytes += e.Bytes
	}
	return s
}
