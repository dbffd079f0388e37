package migrations

import "embed"

// FS embeds the SQL migration files in this directory; the iofs source
// driver reads them at startup.
//
//go:embed *.sql
var FS embed.FS

const Version = 1
