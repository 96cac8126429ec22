package wizard

import (
	"testing"
	"time"

	"musafir/internal/domain"
)

func draftFlagship() *domain.Flagship {
	start := time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC)
	return &domain.Flagship{
		ID:          "flagship-1",
		Name:        "Hunza Winter Expedition",
		Destination: "Hunza",
		Category:    "ADVENTURE",
		Visibility:  domain.VisibilityPublic,
		Status:      domain.FlagshipStatusDraft,
		Description: "Seven days in the Karakoram.",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 7),
		BasePrice:   45000,
		Locations: []domain.Location{
			{Name: "Lahore", Enabled: true, Price: 5000},
			{Name: "Islamabad", Enabled: true, Price: 3000},
			{Name: "Karachi", Enabled: false, Price: 9000},
		},
		Seats: domain.SeatAllocation{
			Total:    100,
			Female:   60,
			Male:     40,
			PerCity:  map[string]int{"Lahore": 70, "Islamabad": 30},
			Bed:      30,
			Mattress: 70,
		},
		Dates: domain.ImportantDates{
			RegistrationDeadline:   start.AddDate(0, 0, -30),
			AdvancePaymentDeadline: start.AddDate(0, 0, -20),
			EarlyBirdDeadline:      start.AddDate(0, 0, -45),
		},
	}
}

func TestStepSequence(t *testing.T) {
	t.Parallel()

	steps := Steps()
	if steps[0] != StepBasics || steps[len(steps)-1] != StepSuccess {
		t.Fatalf("unexpected sequence bounds: %v", steps)
	}

	next, ok := StepSeats.Next()
	if !ok || next != StepDates {
		t.Errorf("expected DATES after SEATS, got %s", next)
	}

	if _, ok := StepSuccess.Next(); ok {
		t.Error("SUCCESS must be terminal")
	}
}

func TestParseStep(t *testing.T) {
	t.Parallel()

	step, err := ParseStep("seats")
	if err != nil || step != StepSeats {
		t.Errorf("ParseStep(seats) = %s, %v", step, err)
	}

	if _, err := ParseStep("teleport"); err == nil {
		t.Error("expected error for unknown step")
	}
}

func TestCheckGuard_SeatsWithoutLocationsRedirectsToPricing(t *testing.T) {
	t.Parallel()

	f := draftFlagship()
	f.Locations = nil

	guard := CheckGuard(f, StepSeats)
	if guard == nil {
		t.Fatal("expected guard error")
	}
	if guard.Redirect != StepPricing {
		t.Errorf("expected redirect to PRICING, got %s", guard.Redirect)
	}
}

func TestCheckGuard_PricingWithoutBasicsRedirectsToBasics(t *testing.T) {
	t.Parallel()

	guard := CheckGuard(&domain.Flagship{}, StepPricing)
	if guard == nil {
		t.Fatal("expected guard error")
	}
	if guard.Redirect != StepBasics {
		t.Errorf("expected redirect to BASICS, got %s", guard.Redirect)
	}
}

func TestCheckGuard_ReturnsEarliestUnmetStep(t *testing.T) {
	t.Parallel()

	// Basics never done: even a Payment entry goes back to Basics.
	f := draftFlagship()
	f.Name = ""

	guard := CheckGuard(f, StepPayment)
	if guard == nil {
		t.Fatal("expected guard error")
	}
	if guard.Redirect != StepBasics {
		t.Errorf("expected redirect to BASICS, got %s", guard.Redirect)
	}
}

func TestCheckGuard_DiscountsRequireSeatTotal(t *testing.T) {
	t.Parallel()

	f := draftFlagship()
	f.Seats = domain.SeatAllocation{}

	guard := CheckGuard(f, StepDiscounts)
	if guard == nil {
		t.Fatal("expected guard error")
	}
	if guard.Redirect != StepSeats {
		t.Errorf("expected redirect to SEATS, got %s", guard.Redirect)
	}
}

func TestCheckGuard_AllMet(t *testing.T) {
	t.Parallel()

	if guard := CheckGuard(draftFlagship(), StepDiscounts); guard != nil {
		t.Errorf("expected no guard error, got %v", guard)
	}
}

func TestValidateStep_BasicsEndDateEqualToStart(t *testing.T) {
	t.Parallel()

	f := draftFlagship()
	f.EndDate = f.StartDate

	err := ValidateStep(f, StepBasics)
	if err == nil {
		t.Fatal("expected validation error")
	}
	fieldErrs, ok := err.(FieldErrors)
	if !ok {
		t.Fatalf("expected FieldErrors, got %T", err)
	}
	if fieldErrs["end_date"] != "end date must be after start date" {
		t.Errorf("unexpected end_date error: %q", fieldErrs["end_date"])
	}
}

func TestValidateStep_SeatsPartitionMismatch(t *testing.T) {
	t.Parallel()

	f := draftFlagship()
	f.Seats.Female = 70 // 70 + 40 != 100

	err := ValidateStep(f, StepSeats)
	if err == nil {
		t.Fatal("expected validation error")
	}
	fieldErrs := err.(FieldErrors)
	if _, ok := fieldErrs["seats.gender"]; !ok {
		t.Errorf("expected seats.gender error, got %v", fieldErrs)
	}
}

func TestValidateStep_SeatsCityMismatch(t *testing.T) {
	t.Parallel()

	f := draftFlagship()
	f.Seats.PerCity = map[string]int{"Lahore": 40, "Islamabad": 30}

	err := ValidateStep(f, StepSeats)
	if err == nil {
		t.Fatal("expected validation error")
	}
	fieldErrs := err.(FieldErrors)
	if _, ok := fieldErrs["seats.city"]; !ok {
		t.Errorf("expected seats.city sum error, got %v", fieldErrs)
	}
}

func TestValidateStep_SeatsIgnoresDisabledCities(t *testing.T) {
	t.Parallel()

	// Karachi is disabled; its allocation must not count.
	f := draftFlagship()
	f.Seats.PerCity["Karachi"] = 25

	if err := ValidateStep(f, StepSeats); err != nil {
		t.Errorf("expected valid seats, got %v", err)
	}
}

func TestValidateStep_DeadlineAfterStart(t *testing.T) {
	t.Parallel()

	f := draftFlagship()
	f.Dates.RegistrationDeadline = f.StartDate.AddDate(0, 0, 1)

	err := ValidateStep(f, StepDates)
	if err == nil {
		t.Fatal("expected validation error")
	}
	fieldErrs := err.(FieldErrors)
	if _, ok := fieldErrs["registration_deadline"]; !ok {
		t.Errorf("expected registration_deadline error, got %v", fieldErrs)
	}
}

func TestValidateStep_DiscountEnabledNeedsAmountAndCount(t *testing.T) {
	t.Parallel()

	f := draftFlagship()
	f.Discounts.EarlyBird = domain.Discount{Enabled: true, Amount: 0, Count: 10}

	err := ValidateStep(f, StepDiscounts)
	if err == nil {
		t.Fatal("expected validation error")
	}
	fieldErrs := err.(FieldErrors)
	if _, ok := fieldErrs["early_bird.amount"]; !ok {
		t.Errorf("expected early_bird.amount error, got %v", fieldErrs)
	}
}

func TestValidateStep_PaymentRequiresBank(t *testing.T) {
	t.Parallel()

	f := draftFlagship()
	f.BankAccountID = ""

	if err := ValidateStep(f, StepPayment); err == nil {
		t.Error("expected validation error for missing bank account")
	}
}
