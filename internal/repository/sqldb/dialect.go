package sqldb

import (
	"fmt"
	"strings"
)

// dialect captures what differs between the databases we can run against.
//
// The CRUD statements are the same everywhere except for the bind-parameter
// syntax: Postgres numbers them ($1, $2), SQLite takes plain positional ?.
// The CREATE TABLE statement differs more (SERIAL vs AUTOINCREMENT,
// TIMESTAMPTZ vs DATETIME), so each dialect spells it out in full.
type dialect struct {
	name        string // "postgres" or "sqlite", used in logs
	driver      string // name registered with database/sql
	createTable string
	placeholder func(n int) string
}

var postgresDialect = dialect{
	name:   "postgres",
	driver: "postgres", // registered by github.com/lib/pq
	createTable: `
		CREATE TABLE flavors (
			id         SERIAL PRIMARY KEY,
			name       VARCHAR(100) NOT NULL,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
}

// AUTOINCREMENT keeps SQLite from reusing the id of a deleted row,
// which matches how a Postgres sequence behaves.
var sqliteDialect = dialect{
	name:   "sqlite",
	driver: "sqlite", // registered by modernc.org/sqlite
	createTable: `
		CREATE TABLE flavors (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       VARCHAR(100) NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	placeholder: func(int) string { return "?" },
}

// dialectFor picks a dialect from the scheme of a database URL and returns the
// DSN to hand to sql.Open.
//
//	postgres://localhost/acme-ice-cream-api  → postgres, URL passed through
//	postgresql://user:pw@db:5432/flavors     → postgres, URL passed through
//	sqlite://data/flavors.db                 → sqlite, "data/flavors.db"
//	sqlite::memory:                          → sqlite, ":memory:"
func dialectFor(databaseURL string) (dialect, string, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"),
		strings.HasPrefix(databaseURL, "postgresql://"):
		return postgresDialect, databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return sqliteDialect, strings.TrimPrefix(databaseURL, "sqlite://"), nil
	case strings.HasPrefix(databaseURL, "sqlite:"):
		return sqliteDialect, strings.TrimPrefix(databaseURL, "sqlite:"), nil
	}
	return dialect{}, "", fmt.Errorf("sqldb: unsupported database URL scheme in %q (want postgres://, postgresql:// or sqlite:)", redact(databaseURL))
}

// SupportedURL reports whether Open knows how to handle databaseURL.
func SupportedURL(databaseURL string) bool {
	_, _, err := dialectFor(databaseURL)
	return err == nil
}

// redact strips everything after the scheme so credentials never reach a log line.
func redact(databaseURL string) string {
	if i := strings.Index(databaseURL, "://"); i >= 0 {
		return databaseURL[:i+3] + "…"
	}
	return "…"
}

// statements holds the SQL issued by the repository, rendered for one dialect.
type statements struct {
	list   string
	create string
	update string
	delete string
	seed   string
	drop   string
}

const flavorColumns = "id, name, updated_at"

func (d dialect) statements() statements {
	p := d.placeholder
	return statements{
		list: `SELECT ` + flavorColumns + ` FROM flavors ORDER BY id`,
		create: fmt.Sprintf(`INSERT INTO flavors (name) VALUES (%s) RETURNING `+flavorColumns,
			p(1)),
		update: fmt.Sprintf(`UPDATE flavors SET name = %s WHERE id = %s RETURNING `+flavorColumns,
			p(1), p(2)),
		delete: fmt.Sprintf(`DELETE FROM flavors WHERE id = %s RETURNING `+flavorColumns,
			p(1)),
		seed: fmt.Sprintf(`INSERT INTO flavors (name) VALUES (%s)`, p(1)),
		drop: `DROP TABLE IF EXISTS flavors`,
	}
}
