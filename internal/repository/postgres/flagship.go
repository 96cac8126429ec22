package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"musafir/internal/domain"
	"musafir/internal/repository"
)

// FlagshipRepository is a PostgreSQL implementation of repository.FlagshipRepository.
// Option lists, seat allocation, dates, and discounts are stored as JSONB columns;
// everything the listing filters on is a plain column.
type FlagshipRepository struct {
	q Querier
}

// NewFlagshipRepository creates a new PostgreSQL flagship repository.
func NewFlagshipRepository(db *sql.DB) *FlagshipRepository {
	return &FlagshipRepository{q: db}
}

// NewFlagshipRepositoryWithTx creates a flagship repository using a transaction.
func NewFlagshipRepositoryWithTx(tx *sql.Tx) *FlagshipRepository {
	return &FlagshipRepository{q: tx}
}

const flagshipColumns = `
	id, name, destination, category, visibility, status, description,
	start_date, end_date, base_price, locations, tiers, mattress_tiers,
	room_sharing, seats, dates, discounts, bank_account_id, published,
	created_at, updated_at
`

// Create persists a new flagship draft.
func (r *FlagshipRepository) Create(ctx context.Context, f *domain.Flagship) error {
	query := `
		INSERT INTO flagships (` + flagshipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	blobs, err := marshalFlagshipBlobs(f)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, query,
		f.ID,
		f.Name,
		f.Destination,
		f.Category,
		f.Visibility,
		f.Status,
		f.Description,
		f.StartDate,
		f.EndDate,
		f.BasePrice,
		blobs.locations,
		blobs.tiers,
		blobs.mattressTiers,
		blobs.roomSharing,
		blobs.seats,
		blobs.dates,
		blobs.discounts,
		nullString(f.BankAccountID),
		f.Published,
		f.CreatedAt,
		f.UpdatedAt,
	)
	return err
}

// GetByID retrieves a flagship by ID.
func (r *FlagshipRepository) GetByID(ctx context.Context, id string) (*domain.Flagship, error) {
	query := `SELECT ` + flagshipColumns + ` FROM flagships WHERE id = $1`

	f, err := scanFlagship(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// List retrieves flagships matching the filter.
func (r *FlagshipRepository) List(ctx context.Context, filter repository.FlagshipFilter) ([]*domain.Flagship, error) {
	query := `SELECT ` + flagshipColumns + ` FROM flagships WHERE 1=1`
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Visibility != "" {
		args = append(args, filter.Visibility)
		query += fmt.Sprintf(" AND visibility = $%d", len(args))
	}
	query += " ORDER BY created_at DESC LIMIT 100"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flagships []*domain.Flagship
	for rows.Next() {
		f, err := scanFlagship(rows)
		if err != nil {
			return nil, err
		}
		flagships = append(flagships, f)
	}
	return flagships, rows.Err()
}

// Update replaces a flagship's stored state.
func (r *FlagshipRepository) Update(ctx context.Context, f *domain.Flagship) error {
	query := `
		UPDATE flagships
		SET name = $1, destination = $2, category = $3, visibility = $4, status = $5,
			description = $6, start_date = $7, end_date = $8, base_price = $9,
			locations = $10, tiers = $11, mattress_tiers = $12, room_sharing = $13,
			seats = $14, dates = $15, discounts = $16, bank_account_id = $17,
			published = $18, updated_at = $19
		WHERE id = $20
	`

	blobs, err := marshalFlagshipBlobs(f)
	if err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, query,
		f.Name,
		f.Destination,
		f.Category,
		f.Visibility,
		f.Status,
		f.Description,
		f.StartDate,
		f.EndDate,
		f.BasePrice,
		blobs.locations,
		blobs.tiers,
		blobs.mattressTiers,
		blobs.roomSharing,
		blobs.seats,
		blobs.dates,
		blobs.discounts,
		nullString(f.BankAccountID),
		f.Published,
		f.UpdatedAt,
		f.ID,
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

type flagshipBlobs struct {
	locations     []byte
	tiers         []byte
	mattressTiers []byte
	roomSharing   []byte
	seats         []byte
	dates         []byte
	discounts     []byte
}

func marshalFlagshipBlobs(f *domain.Flagship) (*flagshipBlobs, error) {
	var b flagshipBlobs
	var err error

	if b.locations, err = json.Marshal(f.Locations); err != nil {
		return nil, err
	}
	if b.tiers, err = json.Marshal(f.Tiers); err != nil {
		return nil, err
	}
	if b.mattressTiers, err = json.Marshal(f.MattressTiers); err != nil {
		return nil, err
	}
	if b.roomSharing, err = json.Marshal(f.RoomSharing); err != nil {
		return nil, err
	}
	if b.seats, err = json.Marshal(f.Seats); err != nil {
		return nil, err
	}
	if b.dates, err = json.Marshal(f.Dates); err != nil {
		return nil, err
	}
	if b.discounts, err = json.Marshal(f.Discounts); err != nil {
		return nil, err
	}
	return &b, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlagship(row rowScanner) (*domain.Flagship, error) {
	var f domain.Flagship
	var locations, tiers, mattressTiers, roomSharing, seatsBlob, dates, discounts []byte
	var bankAccountID sql.NullString

	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Destination,
		&f.Category,
		&f.Visibility,
		&f.Status,
		&f.Description,
		&f.StartDate,
		&f.EndDate,
		&f.BasePrice,
		&locations,
		&tiers,
		&mattressTiers,
		&roomSharing,
		&seatsBlob,
		&dates,
		&discounts,
		&bankAccountID,
		&f.Published,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(locations, &f.Locations); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tiers, &f.Tiers); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(mattressTiers, &f.MattressTiers); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(roomSharing, &f.RoomSharing); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(seatsBlob, &f.Seats); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(dates, &f.Dates); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(discounts, &f.Discounts); err != nil {
		return nil, err
	}

	if bankAccountID.Valid {
		f.BankAccountID = bankAccountID.String
	}
	return &f, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure FlagshipRepository implements repository.FlagshipRepository.
var _ repository.FlagshipRepository = (*FlagshipRepository)(nil)
