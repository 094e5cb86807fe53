// Package db carries the embedded SQL migrations for the Fantasy Forge API.
package db

import "embed"

// Migrations holds the SQL migration files used by "forgectl db migrate" and
// by server startup.
//
//go:embed migrations/*.sql
var Migrations embed.FS
