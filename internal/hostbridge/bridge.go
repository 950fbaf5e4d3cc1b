package hostbridge

import (
	"context"
	"sync"
	"time"
)

// signalBuffer is the number of undelivered signals the bridge holds
// before Push blocks. Completions arrive seconds apart, so a small
// buffer keeps pollers from ever waiting on a slow host.
const signalBuffer = 16

// Signal is the payload delivered to the host for one fresh completion.
type Signal struct {
	// Rerun asks the host to re-synchronize (e.g. re-render). Always true
	// for signals produced by the watcher.
	Rerun bool `json:"rerun"`

	// Timestamp is the wall-clock time of the push in Unix milliseconds.
	// Hosts use it to de-duplicate redelivered signals.
	Timestamp int64 `json:"timestamp"`

	// JobID identifies the job whose completion produced the signal.
	JobID string `json:"job_id"`
}

// NewSignal builds a rerun signal for the given job with a fresh timestamp.
func NewSignal(jobID string) Signal {
	return Signal{
		Rerun:     true,
		Timestamp: time.Now().UnixMilli(),
		JobID:     jobID,
	}
}

// Bridge delivers watcher signals to the embedding application.
type Bridge struct {
	ready     chan struct{}
	readyOnce sync.Once
	signals   chan Signal
}

// New creates a Bridge.
func New() *Bridge {
	return &Bridge{
		ready:   make(chan struct{}),
		signals: make(chan Signal, signalBuffer),
	}
}

// SignalReady fires the readiness handshake. Safe to call multiple times;
// only the first call has any effect.
func (b *Bridge) SignalReady() {
	b.readyOnce.Do(func() {
		close(b.ready)
	})
}

// Ready returns a channel that is closed once the watcher has initialized.
func (b *Bridge) Ready() <-chan struct{} {
	return b.ready
}

// Push delivers a completion signal to the host. It blocks until the
// signal is buffered or accepted, or until ctx is cancelled. The caller
// guarantees at-most-once semantics per job; the bridge never duplicates
// or drops a signal it accepted.
func (b *Bridge) Push(ctx context.Context, sig Signal) error {
	select {
	case b.signals <- sig:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Signals returns the channel the host consumes completion signals from.
func (b *Bridge) Signals() <-chan Signal {
	return b.signals
}
