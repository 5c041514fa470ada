// Package settings provides the persisted key/value store that preset stores
// and the CLI read and write string values through.
//
// Store is the narrow port consumers depend on. SQLite backs it on disk
// (modernc.org/sqlite, WAL mode, busy retries); Memory backs it in tests and
// for callers that only need a scratch store. Missing keys are not errors:
// GetString returns the caller's fallback.
package settings
