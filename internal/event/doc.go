// Package event defines the watcher's event types and a small synchronous
// pub-sub bus for delivering them. The bus decouples the watcher from
// observers (CLI logging, the TUI host, tests) without direct dependencies.
package event
