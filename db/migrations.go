// Package db holds the goose migrations, embedded so the binary can migrate
// without the source tree.
package db

import "embed"

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var Migrations embed.FS

// MigrationsDir returns the embedded directory for a database driver.
func MigrationsDir(driver string) string {
	if driver == "sqlite3" || driver == "sqlite" {
		return "migrations/sqlite"
	}
	return "migrations/postgres"
}
