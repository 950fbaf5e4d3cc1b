// Package hostbridge is the signaling boundary between the watcher and its
// embedding application.
//
// The bridge carries two things: a readiness handshake that fires exactly
// once after the watcher has parsed its inputs (success or failure), and
// completion signals pushed at most once per freshly-completed job. Each
// signal asks the host to re-synchronize its own state; what the host does
// with it is out of this package's hands. Hosts that re-render wholesale
// de-duplicate by the signal's timestamp.
package hostbridge
