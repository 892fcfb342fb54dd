// Package appfs exposes the app's embedded files (DB migrations).
package appfs

import "embed"

//go:embed migrations/*.sql
var FS embed.FS
