package ledger

import (
	"context"
	"sync"
)

// MemoryLedger is an in-memory Ledger for tests and embedded hosts that
// manage their own session lifetime. Safe for concurrent use.
type MemoryLedger struct {
	mu      sync.Mutex
	markers map[string]bool
}

// NewMemoryLedger creates an empty MemoryLedger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{markers: make(map[string]bool)}
}

// Has reports whether the completion marker for jobID exists.
func (ml *MemoryLedger) Has(ctx context.Context, jobID string) (bool, error) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return ml.markers[MarkerKey(jobID)], nil
}

// Set creates the completion marker for jobID, returning true if it was
// newly created.
func (ml *MemoryLedger) Set(ctx context.Context, jobID string) (bool, error) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	key := MarkerKey(jobID)
	if ml.markers[key] {
		return false, nil
	}
	ml.markers[key] = true
	return true, nil
}

// Len returns the number of markers currently set.
func (ml *MemoryLedger) Len() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.markers)
}
