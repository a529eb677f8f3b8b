// Package migrations embeds the SQL migration files for the goose
// programmatic API used at server start and in integration tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
