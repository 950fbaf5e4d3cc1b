// Package watcher supervises background job-completion polling for the
// hosting dashboard.
//
// A Watcher is handed a serialized job batch and a probe client. On Start
// it parses the batch (fail-open on malformed payloads), skips every job
// whose completion marker already exists in the ledger, and spawns one
// poller goroutine per remaining job. Each poller probes the backend on a
// fixed cadence until it observes the completed status or the watcher is
// stopped; transient probe failures retry indefinitely with no backoff.
//
// The first completed observation stops that job's ticker, then performs
// the guarded notification step: an atomic ledger check-then-set decides
// whether this poller owns the job's one permitted user notification. The
// winner alerts the user and pushes a rerun signal through the host
// bridge; a loser (a previous watcher instance got there first) retires
// silently.
//
// The Watcher uses narrow interfaces ([Prober], [Notifier]) so the
// concrete HTTP client and alert surface stay encapsulated. Tests can
// substitute mock implementations.
//
// Lifecycle:
//
//	w := watcher.New(batchJSON, prober, ledger, bridge, bus)
//	w.Start(ctx)   // handshake + per-job pollers
//	// ... jobs complete ...
//	w.Stop()       // cancels context, waits for all pollers
package watcher
