package ledger

import "context"

// markerPrefix is the key prefix for completion markers.
const markerPrefix = "job-completed-"

// Ledger tracks which job IDs have already notified the user.
type Ledger interface {
	// Has reports whether a completion marker exists for the job.
	Has(ctx context.Context, jobID string) (bool, error)

	// Set creates the completion marker for the job if it does not
	// already exist. It returns true if the marker was newly created,
	// false if another writer got there first. The check and the create
	// are a single atomic step.
	Set(ctx context.Context, jobID string) (bool, error)
}

// MarkerKey derives the storage key for a job's completion marker.
func MarkerKey(jobID string) string {
	return markerPrefix + jobID
}
