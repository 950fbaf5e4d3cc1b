// Package job defines the descriptor and batch types for outstanding
// grading jobs handed to the watcher by the hosting application.
package job

import (
	"encoding/json"
	"fmt"

	"github.com/gradeflow/jobwatch/internal/errors"
)

// Placeholder values used when a descriptor omits optional fields.
const (
	PlaceholderName        = "unnamed job"
	PlaceholderSubmittedAt = "unknown time"
)

// Descriptor identifies one outstanding job. It is immutable once parsed;
// the watcher owns it for the lifetime of the job's polling loop.
type Descriptor struct {
	// ID is the opaque job identifier, unique within the batch.
	ID string `json:"-"`

	// Name is the human-readable label for the job.
	Name string `json:"name,omitempty"`

	// SubmittedAt is the submission timestamp as provided by the host.
	// It is opaque display text, not a parsed time.
	SubmittedAt string `json:"submitted_at,omitempty"`
}

// DisplayName returns the job's label, falling back to a placeholder.
func (d Descriptor) DisplayName() string {
	if d.Name == "" {
		return PlaceholderName
	}
	return d.Name
}

// DisplaySubmittedAt returns the submission timestamp, falling back to a
// placeholder.
func (d Descriptor) DisplaySubmittedAt() string {
	if d.SubmittedAt == "" {
		return PlaceholderSubmittedAt
	}
	return d.SubmittedAt
}

// Batch maps job IDs to their descriptors.
type Batch map[string]Descriptor

// ParseBatch decodes a serialized job batch. A malformed payload yields an
// empty batch and the decode error; callers log the error and proceed with
// zero jobs rather than surfacing a failure to the user (fail-open).
func ParseBatch(data string) (Batch, error) {
	if data == "" {
		return Batch{}, nil
	}

	var raw map[string]Descriptor
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return Batch{}, fmt.Errorf("%w: %v", errors.ErrMalformedBatch, err)
	}

	batch := make(Batch, len(raw))
	for id, d := range raw {
		d.ID = id
		batch[id] = d
	}
	return batch, nil
}

// IDs returns the job IDs present in the batch, in no particular order.
func (b Batch) IDs() []string {
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	return ids
}
