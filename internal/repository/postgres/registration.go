package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"

	"musafir/internal/domain"
	"musafir/internal/repository"
)

// RegistrationRepository is a PostgreSQL implementation of repository.RegistrationRepository.
type RegistrationRepository struct {
	q Querier
}

// NewRegistrationRepository creates a new PostgreSQL registration repository.
func NewRegistrationRepository(db *sql.DB) *RegistrationRepository {
	return &RegistrationRepository{q: db}
}

// NewRegistrationRepositoryWithTx creates a registration repository using a transaction.
func NewRegistrationRepositoryWithTx(tx *sql.Tx) *RegistrationRepository {
	return &RegistrationRepository{q: tx}
}

const registrationColumns = `
	id, user_id, flagship_id, city, gender, tier, room_sharing, sleep_preference,
	mattress_tier, trip_type, companions, expectations, price, due_amount,
	status, re_evaluation_requested, created_at
`

// Create persists a new registration. A second registration for the
// same user and flagship violates the unique index and maps to
// repository.ErrDuplicate.
func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (` + registrationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	companions, err := json.Marshal(reg.Companions)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, query,
		reg.ID,
		reg.UserID,
		reg.FlagshipID,
		reg.City,
		reg.Gender,
		reg.Tier,
		reg.RoomSharing,
		reg.SleepPreference,
		reg.MattressTier,
		reg.TripType,
		companions,
		reg.Expectations,
		reg.Price,
		reg.DueAmount,
		reg.Status,
		reg.ReEvaluationRequested,
		reg.CreatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves a registration by ID.
func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`

	reg, err := scanRegistration(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

// GetByUserAndFlagship retrieves a user's registration for a flagship.
// Returns nil if the user has not registered.
func (r *RegistrationRepository) GetByUserAndFlagship(ctx context.Context, userID, flagshipID string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id = $1 AND flagship_id = $2`

	reg, err := scanRegistration(r.q.QueryRowContext(ctx, query, userID, flagshipID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return reg, nil
}

// ListByFlagship retrieves all registrations for a flagship.
func (r *RegistrationRepository) ListByFlagship(ctx context.Context, flagshipID string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE flagship_id = $1 ORDER BY created_at`

	return r.queryRegistrations(ctx, query, flagshipID)
}

// ListByUserBefore retrieves a user's registrations for flagships that
// ended before the cutoff.
func (r *RegistrationRepository) ListByUserBefore(ctx context.Context, userID string, cutoff time.Time) ([]*domain.Registration, error) {
	query := `
		SELECT ` + qualifiedRegistrationColumns + `
		FROM registrations r
		JOIN flagships f ON f.id = r.flagship_id
		WHERE r.user_id = $1 AND f.end_date < $2
		ORDER BY f.end_date DESC
	`
	return r.queryRegistrations(ctx, query, userID, cutoff)
}

// ListByUserAfter retrieves a user's registrations for flagships that
// end on or after the cutoff.
func (r *RegistrationRepository) ListByUserAfter(ctx context.Context, userID string, cutoff time.Time) ([]*domain.Registration, error) {
	query := `
		SELECT ` + qualifiedRegistrationColumns + `
		FROM registrations r
		JOIN flagships f ON f.id = r.flagship_id
		WHERE r.user_id = $1 AND f.end_date >= $2
		ORDER BY f.start_date
	`
	return r.queryRegistrations(ctx, query, userID, cutoff)
}

const qualifiedRegistrationColumns = `
	r.id, r.user_id, r.flagship_id, r.city, r.gender, r.tier, r.room_sharing, r.sleep_preference,
	r.mattress_tier, r.trip_type, r.companions, r.expectations, r.price, r.due_amount,
	r.status, r.re_evaluation_requested, r.created_at
`

func (r *RegistrationRepository) queryRegistrations(ctx context.Context, query string, args ...any) ([]*domain.Registration, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// Update replaces a registration's stored state.
func (r *RegistrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	query := `
		UPDATE registrations
		SET city = $1, gender = $2, tier = $3, room_sharing = $4, sleep_preference = $5,
			mattress_tier = $6, trip_type = $7, companions = $8, expectations = $9,
			price = $10, due_amount = $11, status = $12, re_evaluation_requested = $13
		WHERE id = $14
	`

	companions, err := json.Marshal(reg.Companions)
	if err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, query,
		reg.City,
		reg.Gender,
		reg.Tier,
		reg.RoomSharing,
		reg.SleepPreference,
		reg.MattressTier,
		reg.TripType,
		companions,
		reg.Expectations,
		reg.Price,
		reg.DueAmount,
		reg.Status,
		reg.ReEvaluationRequested,
		reg.ID,
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

// CountByStatus returns per-status registration counts for a flagship.
func (r *RegistrationRepository) CountByStatus(ctx context.Context, flagshipID string) (map[domain.RegistrationStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM registrations WHERE flagship_id = $1 GROUP BY status`

	rows, err := r.q.QueryContext(ctx, query, flagshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.RegistrationStatus]int)
	for rows.Next() {
		var status domain.RegistrationStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	var reg domain.Registration
	var companions []byte

	err := row.Scan(
		&reg.ID,
		&reg.UserID,
		&reg.FlagshipID,
		&reg.City,
		&reg.Gender,
		&reg.Tier,
		&reg.RoomSharing,
		&reg.SleepPreference,
		&reg.MattressTier,
		&reg.TripType,
		&companions,
		&reg.Expectations,
		&reg.Price,
		&reg.DueAmount,
		&reg.Status,
		&reg.ReEvaluationRequested,
		&reg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(companions) > 0 {
		if err := json.Unmarshal(companions, &reg.Companions); err != nil {
			return nil, err
		}
	}
	return &reg, nil
}

// Ensure RegistrationRepository implements repository.RegistrationRepository.
var _ repository.RegistrationRepository = (*RegistrationRepository)(nil)
