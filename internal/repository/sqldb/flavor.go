package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sakif/acme-ice-cream/internal/apperror"
	"github.com/sakif/acme-ice-cream/internal/model"
	"github.com/sakif/acme-ice-cream/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// If *DB stops implementing repository.FlavorRepository, this line fails to compile.
var _ repository.FlavorRepository = (*DB)(nil)

// row is satisfied by both *sql.Row and *sql.Rows, so one scan function serves
// single-row RETURNING statements and the list query alike.
type row interface {
	Scan(dest ...any) error
}

// scanFlavor reads the columns of flavorColumns, in order.
func scanFlavor(r row) (*model.Flavor, error) {
	var f model.Flavor
	if err := r.Scan(&f.ID, &f.Name, timestamp{&f.UpdatedAt}); err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns all flavors ordered by id.
//
// The table is unpaginated; it only ever holds what clients have created.
func (db *DB) List(ctx context.Context) (flavors []model.Flavor, err error) {
	start := time.Now()
	defer func() { db.observe(ctx, "list", start, err) }()

	rows, err := db.conn.QueryContext(ctx, db.stmts.list)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing flavors: %w", err)
	}
	// rows holds the single pooled connection until it is closed.
	defer rows.Close()

	// Non-nil so an empty table encodes as [] rather than null.
	flavors = make([]model.Flavor, 0)
	for rows.Next() {
		f, err := scanFlavor(rows)
		if err != nil {
			return nil, fmt.Errorf("sqldb: scanning flavor row: %w", err)
		}
		flavors = append(flavors, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: iterating flavors: %w", err)
	}

	return flavors, nil
}

// Create inserts a flavor. The database assigns id and updated_at; RETURNING
// hands both back in the same round trip.
func (db *DB) Create(ctx context.Context, name string) (f *model.Flavor, err error) {
	start := time.Now()
	defer func() { db.observe(ctx, "create", start, err) }()

	f, err = scanFlavor(db.conn.QueryRowContext(ctx, db.stmts.create, name))
	if err != nil {
		return nil, fmt.Errorf("sqldb: creating flavor: %w", err)
	}
	return f, nil
}

// Update renames one flavor and returns the row as stored.
//
// updated_at is deliberately left alone: the column keeps its insert-time value.
//
// sql.ErrNoRows from a RETURNING statement means the WHERE clause matched
// nothing, which we translate to apperror.NotFound.
func (db *DB) Update(ctx context.Context, id int64, name string) (f *model.Flavor, err error) {
	start := time.Now()
	defer func() { db.observe(ctx, "update", start, err) }()

	f, err = scanFlavor(db.conn.QueryRowContext(ctx, db.stmts.update, name, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Flavor", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqldb: updating flavor %d: %w", id, err)
	}
	return f, nil
}

// Delete removes one flavor and returns the row that was removed.
// Same not-found detection as Update.
func (db *DB) Delete(ctx context.Context, id int64) (f *model.Flavor, err error) {
	start := time.Now()
	defer func() { db.observe(ctx, "delete", start, err) }()

	f, err = scanFlavor(db.conn.QueryRowContext(ctx, db.stmts.delete, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Flavor", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqldb: deleting flavor %d: %w", id, err)
	}
	return f, nil
}
