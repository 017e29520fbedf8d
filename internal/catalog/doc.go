// Package catalog persists scan runs to a local SQLite database so status can
// be reported without rescanning and runs can be compared over time. The
// store is single-writer: an flock next to the database guards against two
// kartoteka processes recording runs concurrently.
package catalog
