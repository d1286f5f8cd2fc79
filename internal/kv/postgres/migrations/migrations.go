// Package migrations embeds the PostgreSQL schema for the kv driver.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
