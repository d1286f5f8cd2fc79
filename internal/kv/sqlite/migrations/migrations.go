// Package migrations embeds the SQLite schema for the kv driver.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
