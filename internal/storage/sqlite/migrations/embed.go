// Package migrations embeds the SQLite schema migrations for the engine
// store.
package migrations

import "embed"

// FS exposes the embedded migration files.
//
//go:embed *.sql
var FS embed.FS
