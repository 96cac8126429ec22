package repository

import (
	"context"

	"musafir/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrNotFound when
	// no account exists.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// BankAccountRepository defines the persistence operations for
// settlement bank accounts.
type BankAccountRepository interface {
	// GetByID retrieves a bank account by ID.
	GetByID(ctx context.Context, id string) (*domain.BankAccount, error)

	// ListActive retrieves the bank accounts payments can be made into.
	ListActive(ctx context.Context) ([]*domain.BankAccount, error)
}
