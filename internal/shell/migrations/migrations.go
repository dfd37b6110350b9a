// Package migrations embeds the goose migrations of the shell's cache database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
