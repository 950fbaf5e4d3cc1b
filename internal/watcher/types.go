package watcher

import (
	"context"

	"github.com/gradeflow/jobwatch/internal/job"
	"github.com/gradeflow/jobwatch/internal/status"
)

// Prober issues one status probe for a job.
type Prober interface {
	// Fetch returns the job's decoded status. Any error reads as
	// "still pending" and is retried on the next tick.
	Fetch(ctx context.Context, jobID string) (status.Result, error)
}

// Notifier raises the user-visible completion alert for a job. It is
// invoked at most once per job across the lifetime of the session.
type Notifier interface {
	Notify(d job.Descriptor)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(d job.Descriptor)

// Notify calls f(d).
func (f NotifierFunc) Notify(d job.Descriptor) { f(d) }

// nopNotifier discards notifications. Used when no alert surface is wired,
// e.g. hosts that react to bridge signals only.
type nopNotifier struct{}

func (nopNotifier) Notify(job.Descriptor) {}
