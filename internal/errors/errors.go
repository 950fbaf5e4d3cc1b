// Package errors provides centralized error definitions for the jobwatch
// codebase: sentinel errors for the watcher's failure modes plus thin
// wrapping helpers.
//
// Callers import only this package for error handling; the standard
// library functions they need are re-exported.
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrWatcherStarted) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Watcher-related sentinel errors
var (
	// ErrWatcherStarted indicates that Start was called on a running watcher.
	ErrWatcherStarted = New("watcher already started")
	// ErrMalformedBatch indicates that a job batch payload did not decode.
	// Callers treat the batch as empty rather than failing.
	ErrMalformedBatch = New("malformed job batch")
)

// Probe-related sentinel errors
var (
	// ErrProbe indicates that a status probe failed. Probe failures are
	// transient by contract: the poller retries on the next tick.
	ErrProbe = New("status probe failed")
)

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
