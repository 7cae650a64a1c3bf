package plaza

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations is the embedded database schema, rooted at the migration
// files so it feeds db.Migrate directly.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		// embed guarantees the directory exists at build time.
		panic(err)
	}
	return sub
}
