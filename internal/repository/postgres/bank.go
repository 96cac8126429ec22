package postgres

import (
	"context"
	"database/sql"
	"errors"

	"musafir/internal/domain"
	"musafir/internal/repository"
)

// BankAccountRepository is a PostgreSQL implementation of repository.BankAccountRepository.
type BankAccountRepository struct {
	db *sql.DB
}

// NewBankAccountRepository creates a new PostgreSQL bank account repository.
func NewBankAccountRepository(db *sql.DB) *BankAccountRepository {
	return &BankAccountRepository{db: db}
}

const bankColumns = `id, bank_name, account_title, account_number, iban, active`

// GetByID retrieves a bank account by ID.
func (r *BankAccountRepository) GetByID(ctx context.Context, id string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankColumns + ` FROM bank_accounts WHERE id = $1`

	var b domain.BankAccount
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID,
		&b.BankName,
		&b.AccountTitle,
		&b.AccountNumber,
		&b.IBAN,
		&b.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListActive retrieves the bank accounts payments can be made into.
func (r *BankAccountRepository) ListActive(ctx context.Context) ([]*domain.BankAccount, error) {
	query := `SELECT ` + bankColumns + ` FROM bank_accounts WHERE active ORDER BY bank_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.BankAccount
	for rows.Next() {
		var b domain.BankAccount
		if err := rows.Scan(
			&b.ID,
			&b.BankName,
			&b.AccountTitle,
			&b.AccountNumber,
			&b.IBAN,
			&b.Active,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, &b)
	}
	return accounts, rows.Err()
}

// Ensure BankAccountRepository implements repository.BankAccountRepository.
var _ repository.BankAccountRepository = (*BankAccountRepository)(nil)
