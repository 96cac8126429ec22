package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"musafir/internal/domain"
	"musafir/internal/service"
	"musafir/internal/wizard"
)

func newFlagshipService(
	flagshipRepo *MockFlagshipRepository,
	bankRepo *MockBankAccountRepository,
	lockStore *MockLockStore,
) *service.FlagshipService {
	return service.NewFlagshipService(
		flagshipRepo,
		bankRepo,
		lockStore,
		NewMockCacheStore(),
		NewMockDraftStore(),
		service.NewNotificationService(nil),
	)
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func boolPtr(b bool) *bool { return &b }

func timePtr(t time.Time) *time.Time { return &t }

func seatAllocation() *domain.SeatAllocation {
	return &domain.SeatAllocation{
		Total:    100,
		Female:   60,
		Male:     40,
		Bed:      70,
		Mattress: 30,
		PerCity:  map[string]int{"Lahore": 70, "Islamabad": 30},
	}
}

func basicsRequest() service.CreateFlagshipRequest {
	start := time.Now().AddDate(0, 2, 0)
	return service.CreateFlagshipRequest{
		AdminID:     "admin-1",
		Name:        "Hunza Flagship",
		Destination: "Hunza",
		Category:    "MOUNTAIN",
		Visibility:  domain.VisibilityPublic,
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 7),
	}
}

// walkToStep drives a draft through the wizard up to (excluding) the
// target step.
func walkToStep(t *testing.T, svc *service.FlagshipService, id string, target wizard.Step) {
	t.Helper()
	ctx := context.Background()

	steps := []service.StepUpdate{
		{Step: wizard.StepContent, Description: strPtr("Seven days in the Karakoram.")},
		{
			Step:      wizard.StepPricing,
			BasePrice: int64Ptr(50000),
			Locations: []domain.Location{
				{Name: "Lahore", Enabled: true, Price: 5000},
				{Name: "Islamabad", Enabled: true, Price: 3000},
				{Name: "Karachi", Enabled: false, Price: 9000},
			},
			Tiers:       []domain.Tier{{Name: "Standard", Price: 0}, {Name: "Premium", Price: 15000}},
			RoomSharing: []domain.RoomSharingOption{{Name: "QUAD", Price: 0}, {Name: "DOUBLE", Price: 8000}},
		},
		{Step: wizard.StepSeats, Seats: seatAllocation()},
		{
			Step: wizard.StepDates,
			Dates: &domain.ImportantDates{
				RegistrationDeadline:   time.Now().AddDate(0, 1, 0),
				AdvancePaymentDeadline: time.Now().AddDate(0, 1, 10),
				EarlyBirdDeadline:      time.Now().AddDate(0, 0, 14),
			},
		},
		{
			Step: wizard.StepDiscounts,
			Discounts: &domain.DiscountConfig{
				EarlyBird: domain.Discount{Enabled: true, Amount: 5000, Count: 10},
			},
		},
	}

	for _, update := range steps {
		if update.Step.Index() >= target.Index() {
			return
		}
		if _, err := svc.UpsertStep(ctx, "admin-1", id, update); err != nil {
			t.Fatalf("step %s failed: %v", update.Step, err)
		}
	}
}

func TestWizard_BasicsCreatesDraft(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	svc := newFlagshipService(flagshipRepo, NewMockBankAccountRepository(), NewMockLockStore())

	f, err := svc.CreateDraft(context.Background(), basicsRequest())
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	if f.ID == "" {
		t.Fatal("expected draft to be assigned an ID")
	}
	if f.Status != domain.FlagshipStatusDraft {
		t.Fatalf("expected status DRAFT, got %s", f.Status)
	}
	if flagshipRepo.CreateCallCount != 1 {
		t.Fatalf("expected 1 create call, got %d", flagshipRepo.CreateCallCount)
	}
}

func TestWizard_BasicsValidationFailsBeforeCreate(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	svc := newFlagshipService(flagshipRepo, NewMockBankAccountRepository(), NewMockLockStore())

	req := basicsRequest()
	req.EndDate = req.StartDate // end must be strictly after start

	_, err := svc.CreateDraft(context.Background(), req)
	var fieldErrs wizard.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected field errors, got %v", err)
	}
	if _, ok := fieldErrs["end_date"]; !ok {
		t.Fatalf("expected end_date error, got %v", fieldErrs)
	}
	if flagshipRepo.CreateCallCount != 0 {
		t.Fatal("draft must not be persisted when validation fails")
	}
}

func TestWizard_SkippingAheadRedirectsToEarliestUnmetStep(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	svc := newFlagshipService(flagshipRepo, NewMockBankAccountRepository(), NewMockLockStore())

	f, err := svc.CreateDraft(context.Background(), basicsRequest())
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	// Jump straight to seats without configuring pricing locations.
	_, err = svc.UpsertStep(context.Background(), "admin-1", f.ID, service.StepUpdate{
		Step:  wizard.StepSeats,
		Seats: seatAllocation(),
	})

	var guard *wizard.GuardError
	if !errors.As(err, &guard) {
		t.Fatalf("expected guard error, got %v", err)
	}
	if guard.Redirect != wizard.StepPricing {
		t.Fatalf("expected redirect to PRICING, got %s", guard.Redirect)
	}
}

func TestWizard_FullFlowPublishesFlagship(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	bankRepo := NewMockBankAccountRepository()
	bankRepo.AddAccount(&domain.BankAccount{ID: "bank-1", BankName: "Meezan", Active: true})
	svc := newFlagshipService(flagshipRepo, bankRepo, NewMockLockStore())

	f, err := svc.CreateDraft(context.Background(), basicsRequest())
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	walkToStep(t, svc, f.ID, wizard.StepPayment)

	published, err := svc.UpsertStep(context.Background(), "admin-1", f.ID, service.StepUpdate{
		Step:          wizard.StepPayment,
		BankAccountID: strPtr("bank-1"),
		Publish:       boolPtr(true),
	})
	if err != nil {
		t.Fatalf("payment step failed: %v", err)
	}

	if published.Status != domain.FlagshipStatusLive {
		t.Fatalf("expected status LIVE after publish, got %s", published.Status)
	}
	if published.BankAccountID != "bank-1" {
		t.Fatalf("expected bank account to be recorded, got %q", published.BankAccountID)
	}
}

func TestWizard_PublishEndsWizardSession(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	bankRepo := NewMockBankAccountRepository()
	bankRepo.AddAccount(&domain.BankAccount{ID: "bank-1", BankName: "Meezan", Active: true})
	draftStore := NewMockDraftStore()
	svc := service.NewFlagshipService(
		flagshipRepo,
		bankRepo,
		NewMockLockStore(),
		NewMockCacheStore(),
		draftStore,
		service.NewNotificationService(nil),
	)

	f, err := svc.CreateDraft(context.Background(), basicsRequest())
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	// The session follows the draft until publish.
	active, err := svc.ActiveDraft(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("ActiveDraft failed: %v", err)
	}
	if active == nil || active.ID != f.ID {
		t.Fatalf("expected active session on draft %s, got %v", f.ID, active)
	}

	walkToStep(t, svc, f.ID, wizard.StepPayment)
	if _, err := svc.UpsertStep(context.Background(), "admin-1", f.ID, service.StepUpdate{
		Step:          wizard.StepPayment,
		BankAccountID: strPtr("bank-1"),
		Publish:       boolPtr(true),
	}); err != nil {
		t.Fatalf("payment step failed: %v", err)
	}

	active, err = svc.ActiveDraft(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("ActiveDraft failed: %v", err)
	}
	if active != nil {
		t.Fatalf("wizard session must end on publish, still on %s", active.ID)
	}
}

func TestWizard_PaymentStepRejectsInactiveBankAccount(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	bankRepo := NewMockBankAccountRepository()
	bankRepo.AddAccount(&domain.BankAccount{ID: "bank-1", BankName: "Meezan", Active: false})
	svc := newFlagshipService(flagshipRepo, bankRepo, NewMockLockStore())

	f, err := svc.CreateDraft(context.Background(), basicsRequest())
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}
	walkToStep(t, svc, f.ID, wizard.StepPayment)

	_, err = svc.UpsertStep(context.Background(), "admin-1", f.ID, service.StepUpdate{
		Step:          wizard.StepPayment,
		BankAccountID: strPtr("bank-1"),
		Publish:       boolPtr(true),
	})
	if !errors.Is(err, service.ErrInvalidBankAccount) {
		t.Fatalf("expected ErrInvalidBankAccount, got %v", err)
	}
}

func TestWizard_ConcurrentSubmitIsRejected(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	lockStore := NewMockLockStore()
	svc := newFlagshipService(flagshipRepo, NewMockBankAccountRepository(), lockStore)

	f, err := svc.CreateDraft(context.Background(), basicsRequest())
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	lockStore.ForceHeld = true
	_, err = svc.UpsertStep(context.Background(), "admin-1", f.ID, service.StepUpdate{
		Step:        wizard.StepContent,
		Description: strPtr("duplicate click"),
	})
	if !errors.Is(err, service.ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}
	if flagshipRepo.UpdateCallCount != 0 {
		t.Fatal("no write may happen while a submission is in flight")
	}
}

func TestWizard_LiveFlagshipIsNotEditable(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	start := time.Now().AddDate(0, 1, 0)
	flagshipRepo.AddFlagship(&domain.Flagship{
		ID:        "flagship-1",
		Name:      "Skardu Flagship",
		Status:    domain.FlagshipStatusLive,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 5),
	})
	svc := newFlagshipService(flagshipRepo, NewMockBankAccountRepository(), NewMockLockStore())

	_, err := svc.UpsertStep(context.Background(), "admin-1", "flagship-1", service.StepUpdate{
		Step:        wizard.StepContent,
		Description: strPtr("late edit"),
	})
	if !errors.Is(err, service.ErrFlagshipNotEditable) {
		t.Fatalf("expected ErrFlagshipNotEditable, got %v", err)
	}
}

func TestWizard_SeatSliderDerivesComplement(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	svc := newFlagshipService(flagshipRepo, NewMockBankAccountRepository(), NewMockLockStore())

	f, err := svc.CreateDraft(context.Background(), basicsRequest())
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}
	walkToStep(t, svc, f.ID, wizard.StepSeats)

	female := 65.0
	updated, err := svc.UpsertStep(context.Background(), "admin-1", f.ID, service.StepUpdate{
		Step: wizard.StepSeats,
		Seats: &domain.SeatAllocation{
			Total:    100,
			Bed:      100,
			PerCity:  map[string]int{"Lahore": 70, "Islamabad": 30},
			Mattress: 0,
		},
		FemalePercent: &female,
	})
	if err != nil {
		t.Fatalf("seats step failed: %v", err)
	}

	if updated.Seats.Female != 65 || updated.Seats.Male != 35 {
		t.Fatalf("expected 65/35 split, got %d/%d", updated.Seats.Female, updated.Seats.Male)
	}
	if updated.Seats.Female+updated.Seats.Male != updated.Seats.Total {
		t.Fatal("gender split must always sum to total")
	}
}

func TestWizard_SeatMismatchReturnsFieldErrors(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	svc := newFlagshipService(flagshipRepo, NewMockBankAccountRepository(), NewMockLockStore())

	f, err := svc.CreateDraft(context.Background(), basicsRequest())
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}
	walkToStep(t, svc, f.ID, wizard.StepSeats)

	_, err = svc.UpsertStep(context.Background(), "admin-1", f.ID, service.StepUpdate{
		Step: wizard.StepSeats,
		Seats: &domain.SeatAllocation{
			Total:    100,
			Female:   60,
			Male:     50, // 110 != 100
			Bed:      70,
			Mattress: 30,
			PerCity:  map[string]int{"Lahore": 70, "Islamabad": 30},
		},
	})

	var fieldErrs wizard.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected field errors, got %v", err)
	}
	if _, ok := fieldErrs["seats.gender"]; !ok {
		t.Fatalf("expected gender sum error, got %v", fieldErrs)
	}
}

func TestWizard_CompletedDerivedFromEndDate(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	flagshipRepo.AddFlagship(&domain.Flagship{
		ID:        "flagship-past",
		Name:      "Kumrat Flagship",
		Status:    domain.FlagshipStatusLive,
		StartDate: time.Now().AddDate(0, -1, 0),
		EndDate:   time.Now().AddDate(0, 0, -7),
	})
	svc := newFlagshipService(flagshipRepo, NewMockBankAccountRepository(), NewMockLockStore())

	f, err := svc.GetByID(context.Background(), "flagship-past")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if f.Status != domain.FlagshipStatusCompleted {
		t.Fatalf("expected derived status COMPLETED, got %s", f.Status)
	}

	// The stored row is untouched.
	stored, _ := flagshipRepo.GetByID(context.Background(), "flagship-past")
	if stored.Status != domain.FlagshipStatusLive {
		t.Fatalf("stored status must stay LIVE, got %s", stored.Status)
	}
}
