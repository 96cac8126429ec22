package tests

import (
	"context"
	"testing"

	"musafir/internal/domain"
	"musafir/internal/service"
)

func TestStats_SeatAndMoneyAggregation(t *testing.T) {
	t.Parallel()

	flagshipRepo := NewMockFlagshipRepository()
	f := liveFlagship()
	flagshipRepo.AddFlagship(f)

	registrationRepo := NewMockRegistrationRepository()
	seed := []struct {
		id     string
		city   string
		gender domain.Gender
		status domain.RegistrationStatus
	}{
		{"reg-1", "Lahore", domain.GenderMale, domain.RegistrationStatusPending},
		{"reg-2", "Lahore", domain.GenderFemale, domain.RegistrationStatusAccepted},
		{"reg-3", "Islamabad", domain.GenderMale, domain.RegistrationStatusConfirmed},
		{"reg-4", "Lahore", domain.GenderMale, domain.RegistrationStatusRejected},
		{"reg-5", "Islamabad", domain.GenderFemale, domain.RegistrationStatusRefundProcessing},
		{"reg-6", "Lahore", domain.GenderFemale, domain.RegistrationStatusRefunded},
	}
	for _, s := range seed {
		registrationRepo.AddRegistration(&domain.Registration{
			ID:         s.id,
			UserID:     "user-" + s.id,
			FlagshipID: f.ID,
			City:       s.city,
			Gender:     s.gender,
			Status:     s.status,
			Price:      82000,
			DueAmount:  82000,
		})
	}

	paymentRepo := NewMockPaymentRepository()
	paymentRepo.Registrations["reg-2"] = f.ID
	paymentRepo.Registrations["reg-3"] = f.ID
	paymentRepo.AddPayment(&domain.Payment{
		ID: "pay-1", RegistrationID: "reg-3", Amount: 82000,
		Status: domain.PaymentStatusApproved,
	})
	paymentRepo.AddPayment(&domain.Payment{
		ID: "pay-2", RegistrationID: "reg-2", Amount: 30000,
		Status: domain.PaymentStatusPending,
	})

	refundRepo := NewMockRefundRepository()
	refundRepo.Registrations["reg-5"] = f.ID
	refundRepo.AddRefund(&domain.Refund{
		ID: "refund-1", RegistrationID: "reg-5",
		Status: domain.RefundStatusPending,
	})

	svc := service.NewStatsService(flagshipRepo, registrationRepo, paymentRepo, refundRepo)

	stats, err := svc.GetFlagshipStats(context.Background(), f.ID)
	if err != nil {
		t.Fatalf("GetFlagshipStats failed: %v", err)
	}

	if stats.TotalSeats != 100 {
		t.Fatalf("expected 100 total seats, got %d", stats.TotalSeats)
	}
	// Accepted, confirmed and refund-processing hold seats. A cleared
	// refund has released its seat.
	if stats.SeatsTaken != 3 {
		t.Fatalf("expected 3 seats taken, got %d", stats.SeatsTaken)
	}
	if stats.SeatsRemaining != 97 {
		t.Fatalf("expected 97 seats remaining, got %d", stats.SeatsRemaining)
	}
	if stats.FemaleSeats != 60 || stats.MaleSeats != 40 {
		t.Fatalf("expected 60/40 gender split, got %d/%d", stats.FemaleSeats, stats.MaleSeats)
	}
	if stats.FemaleSeatsTaken != 2 || stats.MaleSeatsTaken != 1 {
		t.Fatalf("expected 2 female and 1 male seat taken, got %d/%d", stats.FemaleSeatsTaken, stats.MaleSeatsTaken)
	}
	if stats.PerCityTaken["Lahore"] != 1 || stats.PerCityTaken["Islamabad"] != 2 {
		t.Fatalf("unexpected per-city split: %v", stats.PerCityTaken)
	}
	if stats.Registrations[domain.RegistrationStatusPending] != 1 {
		t.Fatalf("expected 1 pending registration, got %d", stats.Registrations[domain.RegistrationStatusPending])
	}
	if stats.AmountCollected != 82000 {
		t.Fatalf("expected 82000 collected, got %d", stats.AmountCollected)
	}
	if stats.AmountPending != 30000 {
		t.Fatalf("expected 30000 pending, got %d", stats.AmountPending)
	}
	if stats.RefundsByStatus[domain.RefundStatusPending] != 1 {
		t.Fatalf("expected 1 pending refund, got %v", stats.RefundsByStatus)
	}
}

func TestStats_UnknownFlagship(t *testing.T) {
	t.Parallel()

	svc := service.NewStatsService(
		NewMockFlagshipRepository(),
		NewMockRegistrationRepository(),
		NewMockPaymentRepository(),
		NewMockRefundRepository(),
	)

	if _, err := svc.GetFlagshipStats(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for unknown flagship")
	}
}
