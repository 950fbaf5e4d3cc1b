package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "watcher.job_completed").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// WatcherReadyEvent is emitted exactly once after the watcher has parsed
// its inputs. It signals "component initialized", not "jobs resolved";
// it fires even when the batch payload was malformed.
type WatcherReadyEvent struct {
	baseEvent
	JobCount int // Jobs accepted for polling after ledger de-duplication
}

// NewWatcherReadyEvent creates a WatcherReadyEvent.
func NewWatcherReadyEvent(jobCount int) WatcherReadyEvent {
	return WatcherReadyEvent{
		baseEvent: newBaseEvent("watcher.ready"),
		JobCount:  jobCount,
	}
}

// JobCompletedEvent is emitted when a job's probe first observes the
// completed status and the ledger marker was newly set. It is never
// emitted for a job whose marker already existed.
type JobCompletedEvent struct {
	baseEvent
	JobID       string // Opaque job identifier
	Name        string // Display name (placeholder if the host omitted it)
	SubmittedAt string // Submission label (placeholder if omitted)
}

// NewJobCompletedEvent creates a JobCompletedEvent.
func NewJobCompletedEvent(jobID, name, submittedAt string) JobCompletedEvent {
	return JobCompletedEvent{
		baseEvent:   newBaseEvent("watcher.job_completed"),
		JobID:       jobID,
		Name:        name,
		SubmittedAt: submittedAt,
	}
}

// JobSkippedEvent is emitted when a job reaches completed status but the
// ledger marker already existed, so no notification was raised. The
// poller still retires.
type JobSkippedEvent struct {
	baseEvent
	JobID string // Opaque job identifier
}

// NewJobSkippedEvent creates a JobSkippedEvent.
func NewJobSkippedEvent(jobID string) JobSkippedEvent {
	return JobSkippedEvent{
		baseEvent: newBaseEvent("watcher.job_skipped"),
		JobID:     jobID,
	}
}
