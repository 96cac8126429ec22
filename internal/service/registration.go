package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"musafir/internal/domain"
	"musafir/internal/pricing"
	"musafir/internal/redis"
	"musafir/internal/repository"
)

// RegistrationService handles registration drafts, submission, and the
// jury (admin) decisions.
type RegistrationService struct {
	registrationRepo repository.RegistrationRepository
	flagshipRepo     repository.FlagshipRepository
	draftStore       redis.DraftStoreInterface
	notifier         *NotificationService
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	registrationRepo repository.RegistrationRepository,
	flagshipRepo repository.FlagshipRepository,
	draftStore redis.DraftStoreInterface,
	notifier *NotificationService,
) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		flagshipRepo:     flagshipRepo,
		draftStore:       draftStore,
		notifier:         notifier,
	}
}

// SaveDraft persists a user's in-progress selections between pages.
func (s *RegistrationService) SaveDraft(ctx context.Context, userID string, draft *domain.RegistrationDraft) error {
	if userID == "" {
		return ErrInvalidUserID
	}
	if draft == nil || draft.FlagshipID == "" {
		return ErrInvalidFlagshipID
	}
	return s.draftStore.SetRegistrationDraft(ctx, userID, draft)
}

// GetDraft retrieves a user's in-progress selections, nil if none.
func (s *RegistrationService) GetDraft(ctx context.Context, userID, flagshipID string) (*domain.RegistrationDraft, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if flagshipID == "" {
		return nil, ErrInvalidFlagshipID
	}
	return s.draftStore.GetRegistrationDraft(ctx, userID, flagshipID)
}

// Submit turns a draft's selections into a pending registration. The
// price is computed here, server-side, from the flagship's configured
// surcharges; client-supplied totals are never trusted.
func (s *RegistrationService) Submit(ctx context.Context, userID string, draft *domain.RegistrationDraft) (*domain.Registration, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if draft == nil || draft.FlagshipID == "" {
		return nil, ErrInvalidFlagshipID
	}

	f, err := s.flagshipRepo.GetByID(ctx, draft.FlagshipID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if f.Status != domain.FlagshipStatusLive || f.EndDate.Before(now) {
		return nil, ErrFlagshipNotLive
	}
	if !f.Dates.RegistrationDeadline.IsZero() && f.Dates.RegistrationDeadline.Before(now) {
		return nil, ErrRegistrationClosed
	}

	existing, err := s.registrationRepo.GetByUserAndFlagship(ctx, userID, draft.FlagshipID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRegistration
	}

	price, err := s.computePrice(f, draft)
	if err != nil {
		return nil, err
	}

	switch draft.TripType {
	case domain.TripTypeSolo, domain.TripTypeGroup, domain.TripTypePartner:
	default:
		return nil, ErrInvalidTripType
	}

	switch draft.Gender {
	case domain.GenderFemale, domain.GenderMale:
	default:
		return nil, ErrInvalidGender
	}

	reg := &domain.Registration{
		ID:              uuid.New().String(),
		UserID:          userID,
		FlagshipID:      draft.FlagshipID,
		City:            draft.City,
		Gender:          draft.Gender,
		Tier:            draft.Tier,
		RoomSharing:     draft.RoomSharing,
		SleepPreference: draft.SleepPreference,
		MattressTier:    draft.MattressTier,
		TripType:        draft.TripType,
		Companions:      draft.Companions,
		Expectations:    draft.Expectations,
		Price:           price,
		DueAmount:       price,
		Status:          domain.RegistrationStatusPending,
		CreatedAt:       now,
	}

	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if err == repository.ErrDuplicate {
			return nil, ErrDuplicateRegistration
		}
		return nil, err
	}

	// The draft served its purpose; a failure to clear it only means
	// it expires on its own.
	_ = s.draftStore.ClearRegistrationDraft(ctx, userID, draft.FlagshipID)

	s.notifier.NotifyRegistrationSubmitted(ctx, reg, f)

	return reg, nil
}

// computePrice reconciles the draft's selections against the
// flagship's configured options and accumulates the ticket price.
func (s *RegistrationService) computePrice(f *domain.Flagship, draft *domain.RegistrationDraft) (int64, error) {
	quote := pricing.NewQuote(f.BasePrice)

	loc, ok := f.LocationByName(draft.City)
	if !ok {
		return 0, ErrUnknownCity
	}
	quote.Select(pricing.CategoryLocation, loc.Price)

	// Categories with no options configured contribute nothing.
	if len(f.Tiers) > 0 {
		tier, ok := f.TierByName(draft.Tier)
		if !ok {
			return 0, ErrUnknownTier
		}
		quote.Select(pricing.CategoryTier, tier.Price)
	}

	if len(f.RoomSharing) > 0 {
		room, ok := f.RoomSharingByName(draft.RoomSharing)
		if !ok {
			return 0, ErrUnknownRoomSharing
		}
		quote.Select(pricing.CategoryRoomSharing, room.Price)
	}

	if draft.SleepPreference == domain.SleepPreferenceBed && len(f.MattressTiers) > 0 {
		bed, ok := f.MattressTierByName(draft.MattressTier)
		if !ok {
			return 0, ErrUnknownMattressTier
		}
		quote.Select(pricing.CategoryBed, bed.Price)
	}

	return quote.Total(), nil
}

// GetByID retrieves a registration, restricted to its owner or an admin.
func (s *RegistrationService) GetByID(ctx context.Context, requester *domain.User, id string) (*domain.Registration, error) {
	if id == "" {
		return nil, ErrInvalidRegistrationID
	}

	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if requester.Role != domain.RoleAdmin && reg.UserID != requester.ID {
		return nil, ErrForbidden
	}

	s.deriveNotReserved(ctx, reg)
	return reg, nil
}

// PastPassport lists a user's registrations for trips that have ended.
func (s *RegistrationService) PastPassport(ctx context.Context, userID string) ([]*domain.Registration, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.registrationRepo.ListByUserBefore(ctx, userID, time.Now())
}

// UpcomingPassport lists a user's registrations for trips still ahead.
func (s *RegistrationService) UpcomingPassport(ctx context.Context, userID string) ([]*domain.Registration, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	regs, err := s.registrationRepo.ListByUserAfter(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}
	for _, reg := range regs {
		s.deriveNotReserved(ctx, reg)
	}
	return regs, nil
}

// RequestReEvaluation asks the jury to take a second look at a
// rejected registration.
func (s *RegistrationService) RequestReEvaluation(ctx context.Context, userID, registrationID string) (*domain.Registration, error) {
	if registrationID == "" {
		return nil, ErrInvalidRegistrationID
	}

	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.UserID != userID {
		return nil, ErrForbidden
	}
	if reg.Status != domain.RegistrationStatusRejected {
		return nil, ErrRegistrationNotRejected
	}

	reg.ReEvaluationRequested = true
	if err := s.registrationRepo.Update(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// ListByFlagship lists every registration for a flagship (admin).
func (s *RegistrationService) ListByFlagship(ctx context.Context, flagshipID string) ([]*domain.Registration, error) {
	if flagshipID == "" {
		return nil, ErrInvalidFlagshipID
	}

	regs, err := s.registrationRepo.ListByFlagship(ctx, flagshipID)
	if err != nil {
		return nil, err
	}
	for _, reg := range regs {
		s.deriveNotReserved(ctx, reg)
	}
	return regs, nil
}

// Approve accepts a pending registration (admin).
func (s *RegistrationService) Approve(ctx context.Context, registrationID string) (*domain.Registration, error) {
	return s.decide(ctx, registrationID, domain.RegistrationStatusAccepted)
}

// Reject declines a pending registration (admin).
func (s *RegistrationService) Reject(ctx context.Context, registrationID string) (*domain.Registration, error) {
	return s.decide(ctx, registrationID, domain.RegistrationStatusRejected)
}

func (s *RegistrationService) decide(ctx context.Context, registrationID string, status domain.RegistrationStatus) (*domain.Registration, error) {
	if registrationID == "" {
		return nil, ErrInvalidRegistrationID
	}

	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.Status != domain.RegistrationStatusPending {
		return nil, ErrRegistrationNotPending
	}

	reg.Status = status
	reg.ReEvaluationRequested = false
	if err := s.registrationRepo.Update(ctx, reg); err != nil {
		return nil, err
	}

	s.notifier.NotifyRegistrationDecided(ctx, reg)
	return reg, nil
}

// deriveNotReserved marks an accepted registration that missed its
// advance payment deadline. Display-only; the stored status is not
// rewritten.
func (s *RegistrationService) deriveNotReserved(ctx context.Context, reg *domain.Registration) {
	if reg.Status != domain.RegistrationStatusAccepted || reg.DueAmount < reg.Price {
		return
	}

	f, err := s.flagshipRepo.GetByID(ctx, reg.FlagshipID)
	if err != nil {
		return
	}
	deadline := f.Dates.AdvancePaymentDeadline
	if !deadline.IsZero() && deadline.Before(time.Now()) {
		reg.Status = domain.RegistrationStatusNotReserved
	}
}
