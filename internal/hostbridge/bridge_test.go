package hostbridge_test

import (
	"context"
	"testing"
	"time"

	"github.com/gradeflow/jobwatch/internal/hostbridge"
)

func TestSignalReadyFiresOnce(t *testing.T) {
	b := hostbridge.New()

	select {
	case <-b.Ready():
		t.Fatal("ready channel should not fire before SignalReady")
	default:
	}

	b.SignalReady()
	b.SignalReady() // second call must be a no-op, not a panic

	select {
	case <-b.Ready():
	case <-time.After(time.Second):
		t.Fatal("ready channel did not fire")
	}
}

func TestPushDeliversSignal(t *testing.T) {
	b := hostbridge.New()

	sig := hostbridge.NewSignal("job-1")
	if !sig.Rerun {
		t.Error("NewSignal should set Rerun")
	}
	if sig.Timestamp == 0 {
		t.Error("NewSignal should set a timestamp")
	}

	if err := b.Push(context.Background(), sig); err != nil {
		t.Fatalf("Push: %v", err)
	}

	select {
	case got := <-b.Signals():
		if got.JobID != "job-1" {
			t.Errorf("JobID = %q, want %q", got.JobID, "job-1")
		}
	case <-time.After(time.Second):
		t.Fatal("signal not delivered")
	}
}

func TestPushHonorsCancellation(t *testing.T) {
	b := hostbridge.New()

	// Fill the buffer so the next Push must block.
	ctx := context.Background()
	for i := 0; i < 16; i++ {
		if err := b.Push(ctx, hostbridge.NewSignal("fill")); err != nil {
			t.Fatalf("Push %d: %v", i, err)
		}
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := b.Push(cancelled, hostbridge.NewSignal("blocked")); err == nil {
		t.Error("Push with cancelled context should return an error")
	}
}
