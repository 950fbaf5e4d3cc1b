// Package testutil provides testing utilities for jobwatch tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// Backend is an in-process stand-in for the grading backend. It serves
// the grade-result endpoint from a mutable status table, so tests can
// flip a job to completed mid-run.
type Backend struct {
	srv *httptest.Server

	mu       sync.Mutex
	statuses map[string]string
	probes   map[string]int
}

// NewBackend starts a backend whose jobs all report the given initial
// status. Jobs absent from the table report "not_found". The server is
// shut down automatically when the test completes.
func NewBackend(t *testing.T, jobs map[string]string) *Backend {
	t.Helper()

	b := &Backend{
		statuses: make(map[string]string, len(jobs)),
		probes:   make(map[string]int),
	}
	for id, s := range jobs {
		b.statuses[id] = s
	}

	b.srv = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.srv.Close)
	return b
}

// URL returns the backend's base URL.
func (b *Backend) URL() string {
	return b.srv.URL
}

// SetStatus updates the status a job reports on subsequent probes.
func (b *Backend) SetStatus(jobID, status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statuses[jobID] = status
}

// Probes returns how many times the given job has been probed.
func (b *Backend) Probes(jobID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.probes[jobID]
}

func (b *Backend) handle(w http.ResponseWriter, r *http.Request) {
	const prefix = "/ai_grading/grade_result/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	jobID := strings.TrimPrefix(r.URL.Path, prefix)

	b.mu.Lock()
	b.probes[jobID]++
	status, ok := b.statuses[jobID]
	b.mu.Unlock()

	if !ok {
		status = "not_found"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}

// WaitUntil polls cond until it returns true or the timeout elapses.
func WaitUntil(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out after %s waiting for %s", timeout, msg)
}
