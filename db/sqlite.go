package db

import "strings"

// SQLiteSource turns on foreign key enforcement for a go-sqlite3 DSN. The
// driver leaves it off per connection, which would make ON DELETE clauses inert.
func SQLiteSource(source string) string {
	if strings.Contains(source, "_foreign_keys=") || strings.Contains(source, "_fk=") {
		return source
	}
	sep := "?"
	if strings.Contains(source, "?") {
		sep = "&"
	}
	return source + sep + "_foreign_keys=on"
}
