package repository

import (
	"context"

	"musafir/internal/domain"
)

// PaymentRepository defines the persistence operations for payments.
type PaymentRepository interface {
	// Create persists a new payment submission.
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by ID.
	GetByID(ctx context.Context, id string) (*domain.Payment, error)

	// ListByRegistration retrieves all payments for a registration.
	ListByRegistration(ctx context.Context, registrationID string) ([]*domain.Payment, error)

	// UpdateStatus updates the status of a payment.
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error

	// SumApprovedByFlagship returns the total approved amount across a
	// flagship's registrations.
	SumApprovedByFlagship(ctx context.Context, flagshipID string) (int64, error)

	// SumPendingByFlagship returns the total pending amount across a
	// flagship's registrations.
	SumPendingByFlagship(ctx context.Context, flagshipID string) (int64, error)
}

// RefundRepository defines the persistence operations for refunds.
type RefundRepository interface {
	// Create persists a new refund request.
	Create(ctx context.Context, refund *domain.Refund) error

	// GetByID retrieves a refund by ID.
	GetByID(ctx context.Context, id string) (*domain.Refund, error)

	// GetPendingByRegistration retrieves the pending refund for a
	// registration. Returns nil if none is pending.
	GetPendingByRegistration(ctx context.Context, registrationID string) (*domain.Refund, error)

	// Update replaces a refund's stored state.
	Update(ctx context.Context, refund *domain.Refund) error

	// CountByStatusForFlagship returns per-status refund counts across
	// a flagship's registrations.
	CountByStatusForFlagship(ctx context.Context, flagshipID string) (map[domain.RefundStatus]int, error)
}
