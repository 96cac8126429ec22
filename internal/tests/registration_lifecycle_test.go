package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"musafir/internal/domain"
	"musafir/internal/service"
)

func liveFlagship() *domain.Flagship {
	start := time.Now().AddDate(0, 2, 0)
	return &domain.Flagship{
		ID:          "flagship-1",
		Name:        "Hunza Flagship",
		Destination: "Hunza",
		Status:      domain.FlagshipStatusLive,
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 7),
		BasePrice:   50000,
		Locations: []domain.Location{
			{Name: "Lahore", Enabled: true, Price: 5000},
			{Name: "Islamabad", Enabled: true, Price: 3000},
			{Name: "Karachi", Enabled: false, Price: 9000},
		},
		Tiers:       []domain.Tier{{Name: "Standard", Price: 0}, {Name: "Premium", Price: 15000}},
		RoomSharing: []domain.RoomSharingOption{{Name: "QUAD", Price: 0}, {Name: "DOUBLE", Price: 8000}},
		MattressTiers: []domain.MattressTier{
			{Name: "Bed", Price: 4000},
			{Name: "Mattress", Price: 0},
		},
		Seats: domain.SeatAllocation{Total: 100, Female: 60, Male: 40, Bed: 70, Mattress: 30},
		Dates: domain.ImportantDates{
			RegistrationDeadline:   time.Now().AddDate(0, 1, 0),
			AdvancePaymentDeadline: time.Now().AddDate(0, 1, 10),
			EarlyBirdDeadline:      time.Now().AddDate(0, 0, 14),
		},
	}
}

func validDraft() *domain.RegistrationDraft {
	return &domain.RegistrationDraft{
		FlagshipID:      "flagship-1",
		City:            "Lahore",
		Gender:          domain.GenderFemale,
		Tier:            "Premium",
		RoomSharing:     "DOUBLE",
		SleepPreference: domain.SleepPreferenceBed,
		MattressTier:    "Bed",
		TripType:        domain.TripTypeSolo,
		Expectations:    "First time up north.",
	}
}

func newRegistrationService(
	registrationRepo *MockRegistrationRepository,
	flagshipRepo *MockFlagshipRepository,
	draftStore *MockDraftStore,
) *service.RegistrationService {
	return service.NewRegistrationService(
		registrationRepo,
		flagshipRepo,
		draftStore,
		service.NewNotificationService(nil),
	)
}

func TestRegistration_SubmitComputesPriceServerSide(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	flagshipRepo.AddFlagship(liveFlagship())
	registrationRepo := NewMockRegistrationRepository()
	svc := newRegistrationService(registrationRepo, flagshipRepo, NewMockDraftStore())

	reg, err := svc.Submit(context.Background(), "user-1", validDraft())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// base 50000 + Lahore 5000 + Premium 15000 + DOUBLE 8000 + Bed 4000
	want := int64(82000)
	if reg.Price != want {
		t.Fatalf("expected price %d, got %d", want, reg.Price)
	}
	if reg.DueAmount != want {
		t.Fatalf("due amount must start at full price, got %d", reg.DueAmount)
	}
	if reg.Status != domain.RegistrationStatusPending {
		t.Fatalf("expected PENDING, got %s", reg.Status)
	}
}

func TestRegistration_MattressPreferenceSkipsBedSurcharge(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	flagshipRepo.AddFlagship(liveFlagship())
	svc := newRegistrationService(NewMockRegistrationRepository(), flagshipRepo, NewMockDraftStore())

	draft := validDraft()
	draft.SleepPreference = domain.SleepPreferenceMattress
	draft.MattressTier = "Mattress"

	reg, err := svc.Submit(context.Background(), "user-1", draft)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	want := int64(78000) // no bed surcharge
	if reg.Price != want {
		t.Fatalf("expected price %d, got %d", want, reg.Price)
	}
}

func TestRegistration_UnknownCityRejected(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	flagshipRepo.AddFlagship(liveFlagship())
	svc := newRegistrationService(NewMockRegistrationRepository(), flagshipRepo, NewMockDraftStore())

	draft := validDraft()
	draft.City = "Karachi" // configured but disabled

	_, err := svc.Submit(context.Background(), "user-1", draft)
	if !errors.Is(err, service.ErrUnknownCity) {
		t.Fatalf("expected ErrUnknownCity, got %v", err)
	}
}

func TestRegistration_MissingGenderRejected(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	flagshipRepo.AddFlagship(liveFlagship())
	registrationRepo := NewMockRegistrationRepository()
	svc := newRegistrationService(registrationRepo, flagshipRepo, NewMockDraftStore())

	draft := validDraft()
	draft.Gender = ""

	_, err := svc.Submit(context.Background(), "user-1", draft)
	if !errors.Is(err, service.ErrInvalidGender) {
		t.Fatalf("expected ErrInvalidGender, got %v", err)
	}

	draft.Gender = "OTHERWISE"
	_, err = svc.Submit(context.Background(), "user-1", draft)
	if !errors.Is(err, service.ErrInvalidGender) {
		t.Fatalf("expected ErrInvalidGender, got %v", err)
	}
	if registrationRepo.CreateCallCount != 0 {
		t.Fatalf("no registration may be created without a gender, got %d creates", registrationRepo.CreateCallCount)
	}
}

func TestRegistration_DuplicateRejected(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	flagshipRepo.AddFlagship(liveFlagship())
	registrationRepo := NewMockRegistrationRepository()
	svc := newRegistrationService(registrationRepo, flagshipRepo, NewMockDraftStore())

	if _, err := svc.Submit(context.Background(), "user-1", validDraft()); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	_, err := svc.Submit(context.Background(), "user-1", validDraft())
	if !errors.Is(err, service.ErrDuplicateRegistration) {
		t.Fatalf("expected ErrDuplicateRegistration, got %v", err)
	}
	if registrationRepo.CreateCallCount != 1 {
		t.Fatalf("expected exactly 1 create call, got %d", registrationRepo.CreateCallCount)
	}
}

func TestRegistration_ClosedAfterDeadline(t *testing.T) {
	t.Parallel()

	f := liveFlagship()
	f.Dates.RegistrationDeadline = time.Now().AddDate(0, 0, -1)
	flagshipRepo := NewMockFlagshipRepository()
	flagshipRepo.AddFlagship(f)
	svc := newRegistrationService(NewMockRegistrationRepository(), flagshipRepo, NewMockDraftStore())

	_, err := svc.Submit(context.Background(), "user-1", validDraft())
	if !errors.Is(err, service.ErrRegistrationClosed) {
		t.Fatalf("expected ErrRegistrationClosed, got %v", err)
	}
}

func TestRegistration_DraftFlagshipNotOpen(t *testing.T) {
	t.Parallel()

	f := liveFlagship()
	f.Status = domain.FlagshipStatusDraft
	flagshipRepo := NewMockFlagshipRepository()
	flagshipRepo.AddFlagship(f)
	svc := newRegistrationService(NewMockRegistrationRepository(), flagshipRepo, NewMockDraftStore())

	_, err := svc.Submit(context.Background(), "user-1", validDraft())
	if !errors.Is(err, service.ErrFlagshipNotLive) {
		t.Fatalf("expected ErrFlagshipNotLive, got %v", err)
	}
}

func TestRegistration_SubmitClearsDraft(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	flagshipRepo.AddFlagship(liveFlagship())
	draftStore := NewMockDraftStore()
	svc := newRegistrationService(NewMockRegistrationRepository(), flagshipRepo, draftStore)

	if err := svc.SaveDraft(context.Background(), "user-1", validDraft()); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}

	if _, err := svc.Submit(context.Background(), "user-1", validDraft()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	draft, err := svc.GetDraft(context.Background(), "user-1", "flagship-1")
	if err != nil {
		t.Fatalf("GetDraft failed: %v", err)
	}
	if draft != nil {
		t.Fatal("draft must be cleared after submission")
	}
}

func TestRegistration_ApproveThenRejectFails(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	flagshipRepo.AddFlagship(liveFlagship())
	registrationRepo := NewMockRegistrationRepository()
	svc := newRegistrationService(registrationRepo, flagshipRepo, NewMockDraftStore())

	reg, err := svc.Submit(context.Background(), "user-1", validDraft())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	approved, err := svc.Approve(context.Background(), reg.ID)
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if approved.Status != domain.RegistrationStatusAccepted {
		t.Fatalf("expected ACCEPTED, got %s", approved.Status)
	}

	if _, err := svc.Reject(context.Background(), reg.ID); !errors.Is(err, service.ErrRegistrationNotPending) {
		t.Fatalf("expected ErrRegistrationNotPending, got %v", err)
	}
}

func TestRegistration_ReEvaluationOnlyForRejected(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	flagshipRepo.AddFlagship(liveFlagship())
	registrationRepo := NewMockRegistrationRepository()
	svc := newRegistrationService(registrationRepo, flagshipRepo, NewMockDraftStore())

	reg, err := svc.Submit(context.Background(), "user-1", validDraft())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// Pending registrations cannot ask for re-evaluation.
	if _, err := svc.RequestReEvaluation(context.Background(), "user-1", reg.ID); !errors.Is(err, service.ErrRegistrationNotRejected) {
		t.Fatalf("expected ErrRegistrationNotRejected, got %v", err)
	}

	if _, err := svc.Reject(context.Background(), reg.ID); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	// Another user cannot ask on someone else's behalf.
	if _, err := svc.RequestReEvaluation(context.Background(), "user-2", reg.ID); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := svc.RequestReEvaluation(context.Background(), "user-1", reg.ID)
	if err != nil {
		t.Fatalf("RequestReEvaluation failed: %v", err)
	}
	if !updated.ReEvaluationRequested {
		t.Fatal("expected re-evaluation flag to be set")
	}
}

func TestRegistration_NotReservedDerivedAfterAdvanceDeadline(t *testing.T) {
	t.Parallel()

	f := liveFlagship()
	f.Dates.AdvancePaymentDeadline = time.Now().AddDate(0, 0, -1)
	flagshipRepo := NewMockFlagshipRepository()
	flagshipRepo.AddFlagship(f)

	registrationRepo := NewMockRegistrationRepository()
	registrationRepo.AddRegistration(&domain.Registration{
		ID:         "reg-1",
		UserID:     "user-1",
		FlagshipID: f.ID,
		Price:      82000,
		DueAmount:  82000, // nothing paid
		Status:     domain.RegistrationStatusAccepted,
	})
	svc := newRegistrationService(registrationRepo, flagshipRepo, NewMockDraftStore())

	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}
	reg, err := svc.GetByID(context.Background(), admin, "reg-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if reg.Status != domain.RegistrationStatusNotReserved {
		t.Fatalf("expected derived NOT_RESERVED, got %s", reg.Status)
	}

	// Display-only: the stored status is untouched.
	stored, _ := registrationRepo.GetByID(context.Background(), "reg-1")
	if stored.Status != domain.RegistrationStatusAccepted {
		t.Fatalf("stored status must stay ACCEPTED, got %s", stored.Status)
	}
}

func TestRegistration_PassportSplitsByEndDate(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	flagshipRepo.AddFlagship(liveFlagship())
	registrationRepo := NewMockRegistrationRepository()
	registrationRepo.FlagshipEndDates["flagship-past"] = time.Now().AddDate(0, -1, 0)
	registrationRepo.FlagshipEndDates["flagship-1"] = time.Now().AddDate(0, 2, 7)
	registrationRepo.AddRegistration(&domain.Registration{
		ID: "reg-old", UserID: "user-1", FlagshipID: "flagship-past",
		Status: domain.RegistrationStatusConfirmed,
	})
	registrationRepo.AddRegistration(&domain.Registration{
		ID: "reg-new", UserID: "user-1", FlagshipID: "flagship-1",
		Status: domain.RegistrationStatusConfirmed,
	})
	svc := newRegistrationService(registrationRepo, flagshipRepo, NewMockDraftStore())

	past, err := svc.PastPassport(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("PastPassport failed: %v", err)
	}
	if len(past) != 1 || past[0].ID != "reg-old" {
		t.Fatalf("expected only reg-old in past passport, got %v", past)
	}

	upcoming, err := svc.UpcomingPassport(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("UpcomingPassport failed: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].ID != "reg-new" {
		t.Fatalf("expected only reg-new in upcoming passport, got %v", upcoming)
	}
}
