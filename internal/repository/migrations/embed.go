// Package migrations embeds the schema of every supported engine, one
// directory per database type, in golang-migrate file naming.
package migrations

import "embed"

//go:embed sqlite/*.sql mysql/*.sql postgres/*.sql
var FS embed.FS
