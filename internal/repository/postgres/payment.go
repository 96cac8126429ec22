package postgres

import (
	"context"
	"database/sql"
	"errors"

	"musafir/internal/domain"
	"musafir/internal/repository"
)

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// NewPaymentRepositoryWithTx creates a payment repository using a transaction.
func NewPaymentRepositoryWithTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

const paymentColumns = `id, registration_id, bank_account_id, amount, payment_type, screenshot, status, created_at`

// Create persists a new payment submission.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.RegistrationID,
		payment.BankAccountID,
		payment.Amount,
		payment.PaymentType,
		payment.Screenshot,
		payment.Status,
		payment.CreatedAt,
	)
	return err
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var p domain.Payment
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.RegistrationID,
		&p.BankAccountID,
		&p.Amount,
		&p.PaymentType,
		&p.Screenshot,
		&p.Status,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByRegistration retrieves all payments for a registration.
func (r *PaymentRepository) ListByRegistration(ctx context.Context, registrationID string) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE registration_id = $1 ORDER BY created_at`

	rows, err := r.q.QueryContext(ctx, query, registrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(
			&p.ID,
			&p.RegistrationID,
			&p.BankAccountID,
			&p.Amount,
			&p.PaymentType,
			&p.Screenshot,
			&p.Status,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

// UpdateStatus updates the status of a payment.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	query := `UPDATE payments SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
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

// SumApprovedByFlagship returns the total approved amount across a flagship's registrations.
func (r *PaymentRepository) SumApprovedByFlagship(ctx context.Context, flagshipID string) (int64, error) {
	return r.sumByStatus(ctx, flagshipID, domain.PaymentStatusApproved)
}

// SumPendingByFlagship returns the total pending amount across a flagship's registrations.
func (r *PaymentRepository) SumPendingByFlagship(ctx context.Context, flagshipID string) (int64, error) {
	return r.sumByStatus(ctx, flagshipID, domain.PaymentStatusPending)
}

func (r *PaymentRepository) sumByStatus(ctx context.Context, flagshipID string, status domain.PaymentStatus) (int64, error) {
	query := `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN registrations r ON r.id = p.registration_id
		WHERE r.flagship_id = $1 AND p.status = $2
	`

	var total int64
	err := r.q.QueryRowContext(ctx, query, flagshipID, status).Scan(&total)
	return total, err
}

// Ensure PaymentRepository implements repository.PaymentRepository.
var _ repository.PaymentRepository = (*PaymentRepository)(nil)
