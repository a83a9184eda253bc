// Package service sits between the HTTP handlers and the repository.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (this package)   → checks required input, logs outcomes
//	Repository (data layer)  → runs exactly one SQL statement per call
//
// The only rule for flavors is "a name must be present".
//
// FlavorService takes a repository.FlavorRepository (interface), not the
// concrete sqldb.DB, so tests swap in an in-memory mock.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/acme-ice-cream/internal/apperror"
	"github.com/sakif/acme-ice-cream/internal/model"
	"github.com/sakif/acme-ice-cream/internal/repository"
)

// NameRequiredMessage is returned to clients when a create or update carries no name.
const NameRequiredMessage = "Name is required"

// ValidateName is the presence check applied to every incoming name.
// An empty name is rejected; anything else is accepted as sent.
func ValidateName(name string) error {
	if name == "" {
		return apperror.ValidationFailed("name", NameRequiredMessage)
	}
	return nil
}

// FlavorService handles flavor operations.
type FlavorService struct {
	repo   repository.FlavorRepository
	logger *slog.Logger
}

// NewFlavorService creates a new FlavorService.
func NewFlavorService(repo repository.FlavorRepository, logger *slog.Logger) *FlavorService {
	return &FlavorService{
		repo:   repo,
		logger: logger,
	}
}

// List returns every flavor.
func (s *FlavorService) List(ctx context.Context) ([]model.Flavor, error) {
	flavors, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list flavors", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing flavors: %w", err)
	}
	return flavors, nil
}

// Create stores a new flavor.
//
// PRESENCE CHECK ONLY:
// An empty name is rejected before the database is touched. Anything else is
// passed through untouched: no trimming, no length check. A name longer than
// the column allows fails in the database and surfaces as an internal error.
func (s *FlavorService) Create(ctx context.Context, name string) (*model.Flavor, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	flavor, err := s.repo.Create(ctx, name)
	if err != nil {
		s.logger.Error("failed to create flavor",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating flavor: %w", err)
	}

	s.logger.Info("flavor created",
		slog.Int64("id", flavor.ID),
		slog.String("name", flavor.Name),
	)
	return flavor, nil
}

// Update renames the flavor with the given id.
// Returns apperror.ErrNotFound if no flavor has that id.
func (s *FlavorService) Update(ctx context.Context, id int64, name string) (*model.Flavor, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	flavor, err := s.repo.Update(ctx, id, name)
	if err != nil {
		// A miss is a normal 404, not something an operator needs to see.
		if apperror.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to update flavor",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating flavor: %w", err)
	}

	s.logger.Info("flavor updated",
		slog.Int64("id", flavor.ID),
		slog.String("name", flavor.Name),
	)
	return flavor, nil
}

// Delete removes the flavor with the given id.
// Returns apperror.ErrNotFound if no flavor has that id.
func (s *FlavorService) Delete(ctx context.Context, id int64) error {
	flavor, err := s.repo.Delete(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		s.logger.Error("failed to delete flavor",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting flavor: %w", err)
	}

	s.logger.Info("flavor deleted",
		slog.Int64("id", flavor.ID),
		slog.String("name", flavor.Name),
	)
	return nil
}
