// Package assets embeds static files shipped inside the server binary.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed sql/*.sql
var sqlFS embed.FS

// Migrations returns the SQL migration files rooted at the sql directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(sqlFS, "sql")
	if err != nil {
		// sql/ is embedded at build time; Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}
