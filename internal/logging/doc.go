// Package logging provides structured logging for the watcher.
// It wraps Go's log/slog package to produce JSON-formatted logs with
// persistent attributes, so every line from a job's polling loop carries
// the job ID without threading it through call sites.
package logging
