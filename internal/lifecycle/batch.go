package lifecycle

import (
	"sort"
	"sync"
)

// Batch accumulates the unit lifecycle decisions of one reconciliation
// pass: which units to stop and disable, and which to restart and enable.
// It is a value owned by the caller of the pass, not ambient process
// state, so independent passes can carry independent batches.
//
// A unit lives in at most one of the two sets; marking a unit moves it if
// it was in the other set (last action wins). The mutex guards against
// passes driven from multiple goroutines; the commit sequence itself is
// still single-batch-at-a-time by contract.
type Batch struct {
	mu    sync.Mutex
	start map[string]struct{}
	stop  map[string]struct{}
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{
		start: make(map[string]struct{}),
		stop:  make(map[string]struct{}),
	}
}

// MarkStart schedules a unit for restart+enable, removing any pending
// stop for the same unit.
func (b *Batch) MarkStart(unit string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.stop, unit)
	b.start[unit] = struct{}{}
}

// MarkStop schedules a unit for disable+stop, removing any pending start
// for the same unit.
func (b *Batch) MarkStop(unit string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.start, unit)
	b.stop[unit] = struct{}{}
}

// StartSet returns the units scheduled for restart+enable, sorted for
// deterministic command lines.
func (b *Batch) StartSet() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return sortedKeys(b.start)
}

// StopSet returns the units scheduled for disable+stop, sorted.
func (b *Batch) StopSet() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return sortedKeys(b.stop)
}

// Empty reports whether the batch holds no pending operations.
func (b *Batch) Empty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.start) == 0 && len(b.stop) == 0
}

// Clear drops all pending operations so the next pass starts clean.
func (b *Batch) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.start = make(map[string]struct{})
	b.stop = make(map[string]struct{})
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
