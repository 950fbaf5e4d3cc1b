package ledger

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// FileLedger is a file-backed Ledger. Each marker is an empty file named
// after the marker key inside a session-scoped directory. Sessions isolate
// by directory: two users (or two distinct sessions) must be given distinct
// base directories.
type FileLedger struct {
	baseDir string
	mu      sync.Mutex
}

// NewFileLedger creates a FileLedger rooted at the given session directory.
// The directory is created if it does not exist.
func NewFileLedger(baseDir string) (*FileLedger, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}
	return &FileLedger{baseDir: baseDir}, nil
}

// BaseDir returns the session directory backing this ledger.
func (fl *FileLedger) BaseDir() string {
	return fl.baseDir
}

// Has reports whether the completion marker for jobID exists.
func (fl *FileLedger) Has(ctx context.Context, jobID string) (bool, error) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	_, err := os.Stat(fl.markerPath(jobID))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check marker: %w", err)
	}
	return true, nil
}

// Set creates the completion marker for jobID. The marker file is opened
// with O_EXCL so that the check and the create are one atomic step even
// across processes sharing the session directory.
func (fl *FileLedger) Set(ctx context.Context, jobID string) (bool, error) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	f, err := os.OpenFile(fl.markerPath(jobID), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create marker: %w", err)
	}
	return true, f.Close()
}

// Clear removes every marker in the session directory. Used by the clean
// command; the watcher itself never deletes markers.
func (fl *FileLedger) Clear() (int, error) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	entries, err := os.ReadDir(fl.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read ledger directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(fl.baseDir, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove marker: %w", err)
		}
		removed++
	}
	return removed, nil
}

// markerPath converts a job ID to a marker file path. The key is
// percent-escaped so that opaque job IDs cannot traverse out of the
// session directory.
func (fl *FileLedger) markerPath(jobID string) string {
	return filepath.Join(fl.baseDir, url.PathEscape(MarkerKey(jobID)))
}
