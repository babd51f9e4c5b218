// Package history records completed export jobs.
//
// Jobs are persisted through the Store interface with two backends: an
// in-memory store for tests and ephemeral runs, and a SQLite store for
// durable history that survives process restarts.
package history
