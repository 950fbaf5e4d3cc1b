// Package ledger records which jobs have already triggered their one
// permitted user notification.
//
// The ledger is the durability boundary of the watcher: markers survive a
// full restart of the watcher within the same session, so a re-rendered
// page never re-alerts for a job that already completed. Markers are
// keyed per job and never expire; a session-scoped backing store is
// expected to discard them when the session ends.
//
// Set performs an atomic check-then-set and reports whether the marker was
// newly created. Concurrent pollers for different jobs never touch the
// same key, but a slow in-flight probe can race its own rescheduled tick,
// so the create must be a single compare-and-set.
package ledger
