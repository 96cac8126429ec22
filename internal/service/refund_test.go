package service

import (
	"testing"

	"musafir/internal/domain"
)

func TestRegistrationStatusAfterRefund(t *testing.T) {
	t.Parallel()

	if got := registrationStatusAfterRefund(domain.RefundStatusCleared); got != domain.RegistrationStatusRefunded {
		t.Fatalf("cleared refund must release the seat, got %s", got)
	}
	if got := registrationStatusAfterRefund(domain.RefundStatusRejected); got != domain.RegistrationStatusConfirmed {
		t.Fatalf("rejected refund must restore the booking, got %s", got)
	}
}
