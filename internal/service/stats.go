package service

import (
	"context"

	"musafir/internal/domain"
	"musafir/internal/repository"
)

// StatsService assembles the registration and payment dashboard for a
// flagship.
type StatsService struct {
	flagshipRepo     repository.FlagshipRepository
	registrationRepo repository.RegistrationRepository
	paymentRepo      repository.PaymentRepository
	refundRepo       repository.RefundRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(
	flagshipRepo repository.FlagshipRepository,
	registrationRepo repository.RegistrationRepository,
	paymentRepo repository.PaymentRepository,
	refundRepo repository.RefundRepository,
) *StatsService {
	return &StatsService{
		flagshipRepo:     flagshipRepo,
		registrationRepo: registrationRepo,
		paymentRepo:      paymentRepo,
		refundRepo:       refundRepo,
	}
}

// FlagshipStats is the admin dashboard for one flagship.
type FlagshipStats struct {
	FlagshipID       string
	TotalSeats       int
	Registrations    map[domain.RegistrationStatus]int
	SeatsTaken       int
	SeatsRemaining   int
	FemaleSeats      int
	MaleSeats        int
	FemaleSeatsTaken int
	MaleSeatsTaken   int
	PerCityTaken     map[string]int
	AmountCollected  int64
	AmountPending    int64
	RefundsByStatus  map[domain.RefundStatus]int
}

// GetFlagshipStats computes the dashboard numbers for a flagship.
func (s *StatsService) GetFlagshipStats(ctx context.Context, flagshipID string) (*FlagshipStats, error) {
	if flagshipID == "" {
		return nil, ErrInvalidFlagshipID
	}

	f, err := s.flagshipRepo.GetByID(ctx, flagshipID)
	if err != nil {
		return nil, err
	}

	counts, err := s.registrationRepo.CountByStatus(ctx, flagshipID)
	if err != nil {
		return nil, err
	}

	regs, err := s.registrationRepo.ListByFlagship(ctx, flagshipID)
	if err != nil {
		return nil, err
	}

	collected, err := s.paymentRepo.SumApprovedByFlagship(ctx, flagshipID)
	if err != nil {
		return nil, err
	}

	pending, err := s.paymentRepo.SumPendingByFlagship(ctx, flagshipID)
	if err != nil {
		return nil, err
	}

	refunds, err := s.refundRepo.CountByStatusForFlagship(ctx, flagshipID)
	if err != nil {
		return nil, err
	}

	stats := &FlagshipStats{
		FlagshipID:      flagshipID,
		TotalSeats:      f.Seats.Total,
		Registrations:   counts,
		FemaleSeats:     f.Seats.Female,
		MaleSeats:       f.Seats.Male,
		PerCityTaken:    make(map[string]int),
		AmountCollected: collected,
		AmountPending:   pending,
		RefundsByStatus: refunds,
	}

	// A seat is taken once the jury accepts, until a refund clears.
	for _, reg := range regs {
		switch reg.Status {
		case domain.RegistrationStatusAccepted, domain.RegistrationStatusConfirmed, domain.RegistrationStatusRefundProcessing:
			stats.SeatsTaken++
			stats.PerCityTaken[reg.City]++
			switch reg.Gender {
			case domain.GenderFemale:
				stats.FemaleSeatsTaken++
			case domain.GenderMale:
				stats.MaleSeatsTaken++
			}
		}
	}
	stats.SeatsRemaining = f.Seats.Total - stats.SeatsTaken
	if stats.SeatsRemaining < 0 {
		stats.SeatsRemaining = 0
	}

	return stats, nil
}
