// Package repository declares the data-access contract for flavors.
//
// Each method maps to exactly one SQL statement. Implementations return
// apperror.NotFound when an update or delete matched no row, and wrap every
// other driver error.
package repository

import (
	"context"

	"github.com/sakif/acme-ice-cream/internal/model"
)

type FlavorRepository interface {
	// List returns every flavor ordered by id. An empty table yields an empty, non-nil slice.
	List(ctx context.Context) ([]model.Flavor, error)
	// Create inserts a flavor and returns the stored row with its assigned id and timestamp.
	Create(ctx context.Context, name string) (*model.Flavor, error)
	// Update renames the flavor with the given id and returns the updated row.
	Update(ctx context.Context, id int64, name string) (*model.Flavor, error)
	// Delete removes the flavor with the given id and returns the deleted row.
	Delete(ctx context.Context, id int64) (*model.Flavor, error)
}
