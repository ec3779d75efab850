// Package session orchestrates concurrent access to persisted variable
// snapshots: one lock per session ID, garbage collected by reference
// counting, over any ports.SnapshotStore.
package session
