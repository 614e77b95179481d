// Package sqlite provides SQLite-backed implementations of the metadata
// store interfaces: local user accounts and per-identity chat history.
//
// All stores share one database file, opened in WAL mode. Schema changes
// are applied through embedded, versioned SQL migrations at startup.
package sqlite
