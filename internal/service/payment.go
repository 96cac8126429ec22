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

// PaymentService handles bank-transfer submissions and their admin
// verification.
type PaymentService struct {
	db               *sql.DB
	paymentRepo      repository.PaymentRepository
	registrationRepo repository.RegistrationRepository
	bankRepo         repository.BankAccountRepository
	notifier         *NotificationService
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	db *sql.DB,
	paymentRepo repository.PaymentRepository,
	registrationRepo repository.RegistrationRepository,
	bankRepo repository.BankAccountRepository,
	notifier *NotificationService,
) *PaymentService {
	return &PaymentService{
		db:               db,
		paymentRepo:      paymentRepo,
		registrationRepo: registrationRepo,
		bankRepo:         bankRepo,
		notifier:         notifier,
	}
}

// CreatePaymentRequest contains the parameters for a payment submission.
// Screenshot is the stored filename of the uploaded transfer proof.
type CreatePaymentRequest struct {
	UserID         string
	RegistrationID string
	BankAccountID  string
	Amount         int64
	PaymentType    domain.PaymentType
	Screenshot     string
}

// CreatePayment records a pending payment submission against an
// accepted registration.
func (s *PaymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error) {
	if req.RegistrationID == "" {
		return nil, ErrInvalidRegistrationID
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidPaymentAmount
	}
	if req.PaymentType != domain.PaymentTypeFull && req.PaymentType != domain.PaymentTypePartial {
		return nil, ErrInvalidPaymentType
	}

	reg, err := s.registrationRepo.GetByID(ctx, req.RegistrationID)
	if err != nil {
		return nil, err
	}
	if req.UserID != "" && reg.UserID != req.UserID {
		return nil, ErrForbidden
	}
	if reg.Status != domain.RegistrationStatusAccepted {
		return nil, ErrRegistrationNotPayable
	}
	if req.PaymentType == domain.PaymentTypeFull && req.Amount != reg.DueAmount {
		return nil, ErrInvalidPaymentAmount
	}
	if req.Amount > reg.DueAmount {
		return nil, ErrInvalidPaymentAmount
	}

	bank, err := s.bankRepo.GetByID(ctx, req.BankAccountID)
	if err != nil || !bank.Active {
		return nil, ErrInvalidBankAccount
	}

	payment := &domain.Payment{
		ID:             uuid.New().String(),
		RegistrationID: req.RegistrationID,
		BankAccountID:  bank.ID,
		Amount:         req.Amount,
		PaymentType:    req.PaymentType,
		Screenshot:     req.Screenshot,
		Status:         domain.PaymentStatusPending,
		CreatedAt:      time.Now(),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// GetPayment retrieves a payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}
	return s.paymentRepo.GetByID(ctx, paymentID)
}

// ApprovePayment verifies a pending payment (admin). The payment
// status, the registration's due amount, and its confirmation are
// committed in one transaction.
func (s *PaymentService) ApprovePayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentStatusPending {
		return nil, ErrPaymentNotPending
	}

	reg, err := s.registrationRepo.GetByID(ctx, payment.RegistrationID)
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

	txPaymentRepo := postgres.NewPaymentRepositoryWithTx(tx)
	txRegistrationRepo := postgres.NewRegistrationRepositoryWithTx(tx)

	if err = txPaymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentStatusApproved); err != nil {
		return nil, err
	}

	reg.DueAmount -= payment.Amount
	if reg.DueAmount < 0 {
		reg.DueAmount = 0
	}
	if reg.DueAmount == 0 {
		reg.Status = domain.RegistrationStatusConfirmed
	}

	if err = txRegistrationRepo.Update(ctx, reg); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	payment.Status = domain.PaymentStatusApproved
	s.notifier.NotifyPaymentDecided(ctx, payment, reg)

	return payment, nil
}

// RejectPayment declines a pending payment (admin). The registration's
// due amount is untouched; the traveller resubmits.
func (s *PaymentService) RejectPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentStatusPending {
		return nil, ErrPaymentNotPending
	}

	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentStatusRejected); err != nil {
		return nil, err
	}
	payment.Status = domain.PaymentStatusRejected

	if reg, regErr := s.registrationRepo.GetByID(ctx, payment.RegistrationID); regErr == nil {
		s.notifier.NotifyPaymentDecided(ctx, payment, reg)
	}

	return payment, nil
}
