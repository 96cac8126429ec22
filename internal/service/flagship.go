package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"musafir/internal/domain"
	"musafir/internal/redis"
	"musafir/internal/repository"
	"musafir/internal/seats"
	"musafir/internal/wizard"
)

// submissionLockTTL caps how long a wizard submit can hold its step
// lock if the process dies mid-upsert.
const submissionLockTTL = 30 * time.Second

// FlagshipService drives the flagship creation wizard.
type FlagshipService struct {
	flagshipRepo repository.FlagshipRepository
	bankRepo     repository.BankAccountRepository
	lockStore    redis.LockStoreInterface
	cacheStore   redis.CacheStoreInterface
	draftStore   redis.DraftStoreInterface
	notifier     *NotificationService
}

// NewFlagshipService creates a new FlagshipService.
func NewFlagshipService(
	flagshipRepo repository.FlagshipRepository,
	bankRepo repository.BankAccountRepository,
	lockStore redis.LockStoreInterface,
	cacheStore redis.CacheStoreInterface,
	draftStore redis.DraftStoreInterface,
	notifier *NotificationService,
) *FlagshipService {
	return &FlagshipService{
		flagshipRepo: flagshipRepo,
		bankRepo:     bankRepo,
		lockStore:    lockStore,
		cacheStore:   cacheStore,
		draftStore:   draftStore,
		notifier:     notifier,
	}
}

// CreateFlagshipRequest contains the Basics step fields.
type CreateFlagshipRequest struct {
	AdminID     string
	Name        string
	Destination string
	Category    string
	Visibility  domain.Visibility
	StartDate   time.Time
	EndDate     time.Time
}

// CreateDraft handles the Basics step: it validates the fields locally
// and, only on success, creates the draft and assigns its identifier.
func (s *FlagshipService) CreateDraft(ctx context.Context, req CreateFlagshipRequest) (*domain.Flagship, error) {
	now := time.Now()
	f := &domain.Flagship{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Destination: req.Destination,
		Category:    req.Category,
		Visibility:  req.Visibility,
		Status:      domain.FlagshipStatusDraft,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := wizard.ValidateStep(f, wizard.StepBasics); err != nil {
		return nil, err
	}

	if err := s.flagshipRepo.Create(ctx, f); err != nil {
		return nil, err
	}

	if req.AdminID != "" {
		// Remember the wizard session so the admin can resume it.
		_ = s.draftStore.SetActiveFlagship(ctx, req.AdminID, f.ID)
	}

	return f, nil
}

// StepUpdate carries one wizard step's fields. Nil fields are left
// untouched; the step names which group is being submitted.
type StepUpdate struct {
	Step wizard.Step

	// Basics
	Name        *string
	Destination *string
	Category    *string
	Visibility  *domain.Visibility
	StartDate   *time.Time
	EndDate     *time.Time

	// Content
	Description *string

	// Pricing
	BasePrice     *int64
	Locations     []domain.Location
	Tiers         []domain.Tier
	MattressTiers []domain.MattressTier
	RoomSharing   []domain.RoomSharingOption

	// Seats. When FemalePercent or BedPercent is set the split is
	// derived from the slider; explicit counts win otherwise.
	Seats         *domain.SeatAllocation
	FemalePercent *float64
	BedPercent    *float64

	// Dates
	Dates *domain.ImportantDates

	// Discounts
	Discounts *domain.DiscountConfig

	// Payment
	BankAccountID *string
	Publish       *bool
}

// UpsertStep applies one wizard step submission: guard check, local
// validation, then the persisted partial update. A concurrent submit
// for the same flagship and step is rejected with ErrSubmissionInFlight.
// When the Payment step publishes, the submitting admin's wizard
// session ends with it.
func (s *FlagshipService) UpsertStep(ctx context.Context, adminID, flagshipID string, update StepUpdate) (*domain.Flagship, error) {
	if flagshipID == "" {
		return nil, ErrInvalidFlagshipID
	}

	acquired, err := s.lockStore.AcquireSubmissionLock(ctx, flagshipID, string(update.Step), submissionLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrSubmissionInFlight
	}
	defer func() {
		_ = s.lockStore.ReleaseSubmissionLock(ctx, flagshipID, string(update.Step))
	}()

	f, err := s.flagshipRepo.GetByID(ctx, flagshipID)
	if err != nil {
		return nil, err
	}

	if f.Status != domain.FlagshipStatusDraft {
		return nil, ErrFlagshipNotEditable
	}

	if guard := wizard.CheckGuard(f, update.Step); guard != nil {
		return nil, guard
	}

	merged := *f
	if err := s.applyUpdate(ctx, &merged, update); err != nil {
		return nil, err
	}

	// Local validation always completes before any write is issued.
	if err := wizard.ValidateStep(&merged, update.Step); err != nil {
		return nil, err
	}

	if update.Step == wizard.StepPayment && merged.Published {
		merged.Status = domain.FlagshipStatusLive
	}

	merged.UpdatedAt = time.Now()
	if err := s.flagshipRepo.Update(ctx, &merged); err != nil {
		return nil, err
	}

	_ = s.cacheStore.InvalidateFlagship(ctx, merged.ID)

	if merged.Status == domain.FlagshipStatusLive && f.Status != domain.FlagshipStatusLive {
		if adminID != "" {
			_ = s.draftStore.ClearActiveFlagship(ctx, adminID)
		}
		s.notifier.NotifyFlagshipPublished(ctx, &merged)
	}

	return &merged, nil
}

func (s *FlagshipService) applyUpdate(ctx context.Context, f *domain.Flagship, update StepUpdate) error {
	if update.Name != nil {
		f.Name = *update.Name
	}
	if update.Destination != nil {
		f.Destination = *update.Destination
	}
	if update.Category != nil {
		f.Category = *update.Category
	}
	if update.Visibility != nil {
		f.Visibility = *update.Visibility
	}
	if update.StartDate != nil {
		f.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		f.EndDate = *update.EndDate
	}
	if update.Description != nil {
		f.Description = *update.Description
	}
	if update.BasePrice != nil {
		f.BasePrice = *update.BasePrice
	}
	if update.Locations != nil {
		f.Locations = update.Locations
	}
	if update.Tiers != nil {
		f.Tiers = update.Tiers
	}
	if update.MattressTiers != nil {
		f.MattressTiers = update.MattressTiers
	}
	if update.RoomSharing != nil {
		f.RoomSharing = update.RoomSharing
	}
	if update.Seats != nil {
		f.Seats = *update.Seats
	}
	if update.FemalePercent != nil {
		f.Seats.Female, f.Seats.Male = seats.SplitByPercent(f.Seats.Total, *update.FemalePercent)
	}
	if update.BedPercent != nil {
		f.Seats.Bed, f.Seats.Mattress = seats.SplitByPercent(f.Seats.Total, *update.BedPercent)
	}
	if update.Dates != nil {
		f.Dates = *update.Dates
	}
	if update.Discounts != nil {
		f.Discounts = *update.Discounts
	}
	if update.BankAccountID != nil {
		bank, err := s.bankRepo.GetByID(ctx, *update.BankAccountID)
		if err != nil || !bank.Active {
			return ErrInvalidBankAccount
		}
		f.BankAccountID = bank.ID
	}
	if update.Publish != nil {
		f.Published = *update.Publish
	}
	return nil
}

// GetByID retrieves a flagship, serving hot reads from cache. A live
// flagship whose end date has passed reads as completed.
func (s *FlagshipService) GetByID(ctx context.Context, id string) (*domain.Flagship, error) {
	if id == "" {
		return nil, ErrInvalidFlagshipID
	}

	if cached, err := s.cacheStore.GetFlagship(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	f, err := s.flagshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	deriveCompletion(f, time.Now())
	_ = s.cacheStore.SetFlagship(ctx, f)
	return f, nil
}

// List retrieves flagships matching the filter.
func (s *FlagshipService) List(ctx context.Context, filter repository.FlagshipFilter) ([]*domain.Flagship, error) {
	flagships, err := s.flagshipRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, f := range flagships {
		deriveCompletion(f, now)
	}
	return flagships, nil
}

// Abandon resets an admin's wizard session without touching the
// persisted draft.
func (s *FlagshipService) Abandon(ctx context.Context, adminID string) error {
	if adminID == "" {
		return ErrInvalidUserID
	}
	return s.draftStore.ClearActiveFlagship(ctx, adminID)
}

// ActiveDraft returns the flagship an admin's wizard session is
// editing, nil when there is none.
func (s *FlagshipService) ActiveDraft(ctx context.Context, adminID string) (*domain.Flagship, error) {
	if adminID == "" {
		return nil, ErrInvalidUserID
	}

	id, err := s.draftStore.GetActiveFlagship(ctx, adminID)
	if err != nil || id == "" {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func deriveCompletion(f *domain.Flagship, now time.Time) {
	if f.Status == domain.FlagshipStatusLive && !f.EndDate.IsZero() && f.EndDate.Before(now) {
		f.Status = domain.FlagshipStatusCompleted
	}
}
