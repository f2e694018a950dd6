// Package sqlite provides a SQLite-based implementation of driven.ScanStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Record fields map to nullable columns so an absent field stays distinct from
// an empty one.
//
// # Data Location
//
// By default, the database is stored at ~/.dentract/data/scans.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
