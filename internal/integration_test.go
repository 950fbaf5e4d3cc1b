// Package internal contains integration tests that verify the packages
// work together: a real HTTP probe client, a file-backed ledger, the
// watcher's pollers, and the host bridge.
package internal

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gradeflow/jobwatch/internal/event"
	"github.com/gradeflow/jobwatch/internal/hostbridge"
	"github.com/gradeflow/jobwatch/internal/job"
	"github.com/gradeflow/jobwatch/internal/ledger"
	"github.com/gradeflow/jobwatch/internal/status"
	"github.com/gradeflow/jobwatch/internal/testutil"
	"github.com/gradeflow/jobwatch/internal/watcher"
)

const batchJSON = `{
	"job-a": {"name": "essay.pdf", "submitted_at": "09:00"},
	"job-b": {"name": "quiz.pdf", "submitted_at": "09:05"}
}`

func TestWatcherAgainstHTTPBackend(t *testing.T) {
	backend := testutil.NewBackend(t, map[string]string{
		"job-a": "pending",
		"job-b": "pending",
	})

	l, err := ledger.NewFileLedger(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileLedger: %v", err)
	}

	bridge := hostbridge.New()
	bus := event.NewBus()

	var notified atomic.Int32
	w := watcher.New(batchJSON, status.NewClient(backend.URL()), l, bridge, bus,
		watcher.WithPollInterval(10*time.Millisecond),
		watcher.WithNotifier(watcher.NotifierFunc(func(job.Descriptor) {
			notified.Add(1)
		})))

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	select {
	case <-bridge.Ready():
	case <-time.After(time.Second):
		t.Fatal("readiness handshake never fired")
	}

	// Let both pollers issue some probes before anything completes.
	testutil.WaitUntil(t, time.Second, func() bool {
		return backend.Probes("job-a") >= 2 && backend.Probes("job-b") >= 2
	}, "initial probes")
	if n := notified.Load(); n != 0 {
		t.Fatalf("notified %d times before any completion", n)
	}

	backend.SetStatus("job-a", "completed")

	var sig hostbridge.Signal
	select {
	case sig = <-bridge.Signals():
	case <-time.After(time.Second):
		t.Fatal("no bridge signal after completion")
	}
	if sig.JobID != "job-a" {
		t.Errorf("signal for %q, want job-a", sig.JobID)
	}
	if !sig.Rerun {
		t.Error("signal should request a rerun")
	}

	testutil.WaitUntil(t, time.Second, func() bool {
		return notified.Load() == 1
	}, "first notification")

	has, err := l.Has(context.Background(), "job-a")
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if !has {
		t.Error("completion marker missing from ledger")
	}

	// job-b keeps polling.
	probesBefore := backend.Probes("job-b")
	testutil.WaitUntil(t, time.Second, func() bool {
		return backend.Probes("job-b") > probesBefore
	}, "job-b to keep polling")
}

func TestRestartAcrossProcessesDoesNotRenotify(t *testing.T) {
	backend := testutil.NewBackend(t, map[string]string{
		"job-a": "completed",
		"job-b": "pending",
	})
	sessionDir := t.TempDir()

	runOnce := func() int32 {
		l, err := ledger.NewFileLedger(sessionDir)
		if err != nil {
			t.Fatalf("NewFileLedger: %v", err)
		}

		bridge := hostbridge.New()
		var notified atomic.Int32
		w := watcher.New(batchJSON, status.NewClient(backend.URL()), l, bridge, event.NewBus(),
			watcher.WithPollInterval(10*time.Millisecond),
			watcher.WithNotifier(watcher.NotifierFunc(func(job.Descriptor) {
				notified.Add(1)
			})))

		if err := w.Start(context.Background()); err != nil {
			t.Fatalf("Start: %v", err)
		}
		defer w.Stop()

		// Drain the signal so the poller is not blocked on the bridge.
		go func() {
			for range bridge.Signals() {
			}
		}()

		testutil.WaitUntil(t, time.Second, func() bool {
			has, err := l.Has(context.Background(), "job-a")
			return err == nil && has
		}, "job-a marker")
		return notified.Load()
	}

	if n := runOnce(); n != 1 {
		t.Fatalf("first run notified %d times, want 1", n)
	}

	// Same session dir, fresh everything else: the marker must suppress
	// the second notification.
	if n := runOnce(); n != 0 {
		t.Fatalf("second run notified %d times, want 0", n)
	}
}

func TestUnknownJobKeepsPolling(t *testing.T) {
	backend := testutil.NewBackend(t, nil) // every probe reports not_found

	l, err := ledger.NewFileLedger(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileLedger: %v", err)
	}

	w := watcher.New(`{"ghost": {}}`, status.NewClient(backend.URL()), l,
		hostbridge.New(), event.NewBus(),
		watcher.WithPollInterval(10*time.Millisecond))

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	testutil.WaitUntil(t, time.Second, func() bool {
		return backend.Probes("ghost") >= 3
	}, "probes for unknown job")

	if len(w.Polling()) != 1 {
		t.Errorf("unknown job should still be polled, polling = %v", w.Polling())
	}
}
