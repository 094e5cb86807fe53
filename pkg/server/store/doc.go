// Package store defines the storage interfaces consumed by the endpoints.
//
// Interfaces here are implemented by the gorm subpackage (PostgreSQL) and the
// dir subpackage (image files on disk). Handlers receive store handles by
// injection; nothing in this package is global.
//
// Errors are tagged with the three kinds the API distinguishes: ErrConflict,
// ErrNotFound, and (at the endpoint layer) unauthorized. Every operation is a
// single store interaction; nothing is retried.
package store
