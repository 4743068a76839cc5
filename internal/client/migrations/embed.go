// Package migrations embeds the local history schema migrations applied with
// goose when the CLI opens its database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
