// Package phishnet holds assets embedded into the binaries.
package phishnet

import "embed"

// Migrations contains the goose SQL migrations for the scan history database.
//
//go:embed migrations/*.sql
var Migrations embed.FS
