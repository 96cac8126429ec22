package repository

import (
	"context"
	"time"

	"musafir/internal/domain"
)

// RegistrationRepository defines the persistence operations for registrations.
type RegistrationRepository interface {
	// Create persists a new registration.
	Create(ctx context.Context, reg *domain.Registration) error

	// GetByID retrieves a registration by ID.
	GetByID(ctx context.Context, id string) (*domain.Registration, error)

	// GetByUserAndFlagship retrieves a user's registration for a flagship.
	// Returns nil if the user has not registered.
	GetByUserAndFlagship(ctx context.Context, userID, flagshipID string) (*domain.Registration, error)

	// ListByFlagship retrieves all registrations for a flagship.
	ListByFlagship(ctx context.Context, flagshipID string) ([]*domain.Registration, error)

	// ListByUserBefore retrieves a user's registrations for flagships
	// that ended before the cutoff.
	ListByUserBefore(ctx context.Context, userID string, cutoff time.Time) ([]*domain.Registration, error)

	// ListByUserAfter retrieves a user's registrations for flagships
	// that end on or after the cutoff.
	ListByUserAfter(ctx context.Context, userID string, cutoff time.Time) ([]*domain.Registration, error)

	// Update replaces a registration's stored state.
	Update(ctx context.Context, reg *domain.Registration) error

	// CountByStatus returns per-status registration counts for a flagship.
	CountByStatus(ctx context.Context, flagshipID string) (map[domain.RegistrationStatus]int, error)
}
