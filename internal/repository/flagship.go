package repository

import (
	"context"

	"musafir/internal/domain"
)

// FlagshipFilter narrows flagship listings.
type FlagshipFilter struct {
	Status     domain.FlagshipStatus
	Category   string
	Visibility domain.Visibility
}

// FlagshipRepository defines the persistence operations for flagships.
type FlagshipRepository interface {
	// Create persists a new flagship draft.
	Create(ctx context.Context, flagship *domain.Flagship) error

	// GetByID retrieves a flagship by ID.
	GetByID(ctx context.Context, id string) (*domain.Flagship, error)

	// List retrieves flagships matching the filter. Zero-valued filter
	// fields are ignored.
	List(ctx context.Context, filter FlagshipFilter) ([]*domain.Flagship, error)

	// Update replaces a flagship's stored state.
	Update(ctx context.Context, flagship *domain.Flagship) error
}
