package migrations

import "embed"

// SQL holds the schema files applied in filename order at startup.
//
//go:embed *.sql
var SQL embed.FS
