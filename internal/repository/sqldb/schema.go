package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/acme-ice-cream/internal/model"
)

// Reset drops the flavors table, recreates it and inserts the seed rows.
//
// It runs on every startup, so nothing survives a restart. All statements run
// inside one transaction: if any of them fails the previous table is left as
// it was and the caller must not start serving.
//
// Dropping the table also drops its sequence (Postgres SERIAL) or its
// sqlite_sequence entry (SQLite AUTOINCREMENT), so the seeded rows always get
// ids 1 to 4.
func (db *DB) Reset(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { db.observe(ctx, "reset", start, err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqldb: beginning reset: %w", err)
	}
	// Rollback after a successful Commit is a no-op returning sql.ErrTxDone.
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, db.stmts.drop); err != nil {
		return fmt.Errorf("sqldb: dropping flavors table: %w", err)
	}
	if _, err = tx.ExecContext(ctx, db.dialect.createTable); err != nil {
		return fmt.Errorf("sqldb: creating flavors table: %w", err)
	}
	for _, name := range model.SeedFlavors {
		if _, err = tx.ExecContext(ctx, db.stmts.seed, name); err != nil {
			return fmt.Errorf("sqldb: seeding flavor %q: %w", name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqldb: committing reset: %w", err)
	}
	return nil
}
