// Package migrations embeds the SQL schema applied by goose.
package migrations

import "embed"

// FS holds every migration file of this directory.
//
//go:embed *.sql
var FS embed.FS
