package postgres

import (
	"context"
	"database/sql"
	"errors"

	"musafir/internal/domain"
	"musafir/internal/repository"
)

// RefundRepository is a PostgreSQL implementation of repository.RefundRepository.
type RefundRepository struct {
	q Querier
}

// NewRefundRepository creates a new PostgreSQL refund repository.
func NewRefundRepository(db *sql.DB) *RefundRepository {
	return &RefundRepository{q: db}
}

// NewRefundRepositoryWithTx creates a refund repository using a transaction.
func NewRefundRepositoryWithTx(tx *sql.Tx) *RefundRepository {
	return &RefundRepository{q: tx}
}

const refundColumns = `id, registration_id, bank_details, reason, feedback, rating, status, created_at`

// Create persists a new refund request.
func (r *RefundRepository) Create(ctx context.Context, refund *domain.Refund) error {
	query := `
		INSERT INTO refunds (` + refundColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		refund.ID,
		refund.RegistrationID,
		refund.BankDetails,
		refund.Reason,
		refund.Feedback,
		refund.Rating,
		refund.Status,
		refund.CreatedAt,
	)
	return err
}

// GetByID retrieves a refund by ID.
func (r *RefundRepository) GetByID(ctx context.Context, id string) (*domain.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE id = $1`

	refund, err := scanRefund(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return refund, nil
}

// GetPendingByRegistration retrieves the pending refund for a registration.
// Returns nil if none is pending.
func (r *RefundRepository) GetPendingByRegistration(ctx context.Context, registrationID string) (*domain.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE registration_id = $1 AND status = $2 LIMIT 1`

	refund, err := scanRefund(r.q.QueryRowContext(ctx, query, registrationID, domain.RefundStatusPending))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return refund, nil
}

// Update replaces a refund's stored state.
func (r *RefundRepository) Update(ctx context.Context, refund *domain.Refund) error {
	query := `
		UPDATE refunds
		SET bank_details = $1, reason = $2, feedback = $3, rating = $4, status = $5
		WHERE id = $6
	`

	result, err := r.q.ExecContext(ctx, query,
		refund.BankDetails,
		refund.Reason,
		refund.Feedback,
		refund.Rating,
		refund.Status,
		refund.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountByStatusForFlagship returns per-status refund counts across a
// flagship's registrations.
func (r *RefundRepository) CountByStatusForFlagship(ctx context.Context, flagshipID string) (map[domain.RefundStatus]int, error) {
	query := `
		SELECT rf.status, COUNT(*)
		FROM refunds rf
		JOIN registrations rg ON rg.id = rf.registration_id
		WHERE rg.flagship_id = $1
		GROUP BY rf.status
	`

	rows, err := r.q.QueryContext(ctx, query, flagshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.RefundStatus]int)
	for rows.Next() {
		var status domain.RefundStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanRefund(row rowScanner) (*domain.Refund, error) {
	var refund domain.Refund
	err := row.Scan(
		&refund.ID,
		&refund.RegistrationID,
		&refund.BankDetails,
		&refund.Reason,
		&refund.Feedback,
		&refund.Rating,
		&refund.Status,
		&refund.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &refund, nil
}

// Ensure RefundRepository implements repository.RefundRepository.
var _ repository.RefundRepository = (*RefundRepository)(nil)
