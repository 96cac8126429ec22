package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"musafir/internal/domain"
	"musafir/internal/repository"
	"musafir/internal/repository/postgres"
)

// RefundService handles refund requests and their admin resolution.
type RefundService struct {
	db               *sql.DB
	refundRepo       repository.RefundRepository
	registrationRepo repository.RegistrationRepository
	notifier         *NotificationService
}

// NewRefundService creates a new RefundService.
func NewRefundService(
	db *sql.DB,
	refundRepo repository.RefundRepository,
	registrationRepo repository.RegistrationRepository,
	notifier *NotificationService,
) *RefundService {
	return &RefundService{
		db:               db,
		refundRepo:       refundRepo,
		registrationRepo: registrationRepo,
		notifier:         notifier,
	}
}

// CreateRefundRequest contains the parameters for a refund request.
type CreateRefundRequest struct {
	UserID         string
	RegistrationID string
	BankDetails    string
	Reason         string
	Feedback       string
	Rating         int
}

// CreateRefund opens a refund request and moves the registration into
// refund processing.
func (s *RefundService) CreateRefund(ctx context.Context, req CreateRefundRequest) (*domain.Refund, error) {
	if req.RegistrationID == "" {
		return nil, ErrInvalidRegistrationID
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	reg, err := s.registrationRepo.GetByID(ctx, req.RegistrationID)
	if err != nil {
		return nil, err
	}
	if req.UserID != "" && reg.UserID != req.UserID {
		return nil, ErrForbidden
	}
	// Only money that was actually verified can come back, and only once.
	if reg.DueAmount >= reg.Price || reg.Status == domain.RegistrationStatusRefunded {
		return nil, ErrRegistrationNotRefundable
	}

	pending, err := s.refundRepo.GetPendingByRegistration(ctx, req.RegistrationID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, ErrRefundAlreadyRequested
	}

	refund := &domain.Refund{
		ID:             uuid.New().String(),
		RegistrationID: req.RegistrationID,
		BankDetails:    req.BankDetails,
		Reason:         req.Reason,
		Feedback:       req.Feedback,
		Rating:         req.Rating,
		Status:         domain.RefundStatusPending,
		CreatedAt:      time.Now(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txRefundRepo := postgres.NewRefundRepositoryWithTx(tx)
	txRegistrationRepo := postgres.NewRegistrationRepositoryWithTx(tx)

	if err = txRefundRepo.Create(ctx, refund); err != nil {
		return nil, err
	}

	reg.Status = domain.RegistrationStatusRefundProcessing
	if err = txRegistrationRepo.Update(ctx, reg); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return refund, nil
}

// ApproveRefund clears a pending refund (admin).
func (s *RefundService) ApproveRefund(ctx context.Context, refundID string) (*domain.Refund, error) {
	return s.decide(ctx, refundID, domain.RefundStatusCleared)
}

// RejectRefund declines a pending refund (admin); the registration
// returns to its confirmed state.
func (s *RefundService) RejectRefund(ctx context.Context, refundID string) (*domain.Refund, error) {
	return s.decide(ctx, refundID, domain.RefundStatusRejected)
}

func (s *RefundService) decide(ctx context.Context, refundID string, status domain.RefundStatus) (*domain.Refund, error) {
	if refundID == "" {
		return nil, ErrInvalidRefundID
	}

	refund, err := s.refundRepo.GetByID(ctx, refundID)
	if err != nil {
		return nil, err
	}
	if refund.Status != domain.RefundStatusPending {
		return nil, ErrRefundNotPending
	}

	reg, err := s.registrationRepo.GetByID(ctx, refund.RegistrationID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txRefundRepo := postgres.NewRefundRepositoryWithTx(tx)
	txRegistrationRepo := postgres.NewRegistrationRepositoryWithTx(tx)

	refund.Status = status
	if err = txRefundRepo.Update(ctx, refund); err != nil {
		return nil, err
	}

	reg.Status = registrationStatusAfterRefund(status)
	if err = txRegistrationRepo.Update(ctx, reg); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	s.notifier.NotifyRefundDecided(ctx, refund, reg)
	return refund, nil
}

// registrationStatusAfterRefund is the state a refund decision leaves
// the registration in. A cleared refund releases the seat for good; a
// rejected one keeps the money and the seat.
func registrationStatusAfterRefund(status domain.RefundStatus) domain.RegistrationStatus {
	if status == domain.RefundStatusCleared {
		return domain.RegistrationStatusRefunded
	}
	return domain.RegistrationStatusConfirmed
}

// GetRefund retrieves a refund by ID.
func (s *RefundService) GetRefund(ctx context.Context, refundID string) (*domain.Refund, error) {
	if refundID == "" {
		return nil, ErrInvalidRefundID
	}
	return s.refundRepo.GetByID(ctx, refundID)
}
