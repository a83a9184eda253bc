// Package sqldb implements repository.FlavorRepository on top of database/sql.
//
// TWO BACKENDS, ONE PACKAGE:
// Production runs against PostgreSQL through github.com/lib/pq. Tests and
// single-binary deployments run against SQLite through modernc.org/sqlite, a
// pure Go translation of SQLite (no CGo, no C compiler). Both understand
// INSERT/UPDATE/DELETE ... RETURNING, so the repository code is shared and
// only the DDL and bind-parameter syntax come from the dialect.
//
// The backend is chosen from the database URL:
//
//	postgres://localhost/acme-ice-cream-api?sslmode=disable
//	sqlite://data/flavors.db
//	sqlite::memory:
//
// ONE CONNECTION:
// sql.DB is a pool, but the service holds a single logical connection for its
// whole lifetime. Open caps the pool at one connection.
// That is also what keeps an in-memory SQLite database alive: every new
// connection to ":memory:" would otherwise see its own empty database.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/acme-ice-cream/internal/apperror"

	// BLANK IMPORTS:
	// Each driver registers itself with database/sql in its init() function.
	// "postgres" comes from lib/pq, "sqlite" from modernc.org/sqlite.
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DB wraps the *sql.DB handle together with the statements rendered for its dialect.
type DB struct {
	conn    *sql.DB
	dialect dialect
	stmts   statements
	logger  *slog.Logger
}

// Open connects to the database named by databaseURL and verifies the
// connection with a ping. It does not touch the schema; call Reset for that.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*DB, error) {
	d, dsn, err := dialectFor(databaseURL)
	if err != nil {
		return nil, err
	}

	// sql.Open() does NOT open a connection; it only validates its arguments.
	conn, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqldb: opening %s database: %w", d.name, err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	// Ping forces the first real connection, so a refused connection or a bad
	// path fails here rather than on the first request.
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqldb: connecting to %s database: %w", d.name, err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &DB{
		conn:    conn,
		dialect: d,
		stmts:   d.statements(),
		logger:  logger.With(slog.String("component", "sqldb"), slog.String("dialect", d.name)),
	}, nil
}

// Dialect returns "postgres" or "sqlite".
func (db *DB) Dialect() string {
	return db.dialect.name
}

// Ping checks that the connection is still usable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// observe logs one finished statement. Successful statements and misses go
// to debug; failures are logged at error with the SQLSTATE code when the driver
// reports one.
func (db *DB) observe(ctx context.Context, op string, start time.Time, err error) {
	attrs := []slog.Attr{
		slog.String("op", op),
		slog.Duration("duration", time.Since(start)),
	}
	if err == nil {
		db.logger.LogAttrs(ctx, slog.LevelDebug, "query completed", attrs...)
		return
	}
	if apperror.IsNotFound(err) {
		db.logger.LogAttrs(ctx, slog.LevelDebug, "query matched no rows", attrs...)
		return
	}
	if code := Code(err); code != "" {
		attrs = append(attrs, slog.String("code", code))
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	db.logger.LogAttrs(ctx, slog.LevelError, "query failed", attrs...)
}
