package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"musafir/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationFlagshipPublished     NotificationType = "FLAGSHIP_PUBLISHED"
	NotificationRegistrationSubmitted NotificationType = "REGISTRATION_SUBMITTED"
	NotificationRegistrationAccepted  NotificationType = "REGISTRATION_ACCEPTED"
	NotificationRegistrationRejected  NotificationType = "REGISTRATION_REJECTED"
	NotificationPaymentApproved       NotificationType = "PAYMENT_APPROVED"
	NotificationPaymentRejected       NotificationType = "PAYMENT_REJECTED"
	NotificationRefundCleared         NotificationType = "REFUND_CLEARED"
	NotificationRefundRejected        NotificationType = "REFUND_REJECTED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	CreatedAt   time.Time
}

// NotificationService handles notification delivery. Delivery is a log
// line; the email/SMS channels sit behind the same call shape.
type NotificationService struct {
	log *logrus.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(log *logrus.Logger) *NotificationService {
	return &NotificationService{log: log}
}

// NotifyFlagshipPublished announces a flagship going live.
func (s *NotificationService) NotifyFlagshipPublished(ctx context.Context, f *domain.Flagship) {
	s.send(ctx, Notification{
		Type:      NotificationFlagshipPublished,
		Title:     "Flagship live",
		Message:   fmt.Sprintf("%s to %s is open for registration", f.Name, f.Destination),
		CreatedAt: time.Now(),
	})
}

// NotifyRegistrationSubmitted confirms a registration reached the jury.
func (s *NotificationService) NotifyRegistrationSubmitted(ctx context.Context, reg *domain.Registration, f *domain.Flagship) {
	s.send(ctx, Notification{
		Type:        NotificationRegistrationSubmitted,
		RecipientID: reg.UserID,
		Title:       "Registration received",
		Message:     fmt.Sprintf("Your registration for %s is with the jury. Ticket price Rs %d.", f.Name, reg.Price),
		CreatedAt:   time.Now(),
	})
}

// NotifyRegistrationDecided tells the traveller the jury's decision.
func (s *NotificationService) NotifyRegistrationDecided(ctx context.Context, reg *domain.Registration) {
	typ := NotificationRegistrationAccepted
	msg := "Your registration was accepted. Submit your payment to reserve the seat."
	if reg.Status == domain.RegistrationStatusRejected {
		typ = NotificationRegistrationRejected
		msg = "Your registration was not accepted this time."
	}
	s.send(ctx, Notification{
		Type:        typ,
		RecipientID: reg.UserID,
		Title:       "Registration update",
		Message:     msg,
		CreatedAt:   time.Now(),
	})
}

// NotifyPaymentDecided tells the traveller a payment verdict.
func (s *NotificationService) NotifyPaymentDecided(ctx context.Context, payment *domain.Payment, reg *domain.Registration) {
	typ := NotificationPaymentApproved
	msg := fmt.Sprintf("Payment of Rs %d verified. Remaining due: Rs %d.", payment.Amount, reg.DueAmount)
	if payment.Status == domain.PaymentStatusRejected {
		typ = NotificationPaymentRejected
		msg = "Your payment screenshot could not be verified. Please resubmit."
	}
	s.send(ctx, Notification{
		Type:        typ,
		RecipientID: reg.UserID,
		Title:       "Payment update",
		Message:     msg,
		CreatedAt:   time.Now(),
	})
}

// NotifyRefundDecided tells the traveller a refund verdict.
func (s *NotificationService) NotifyRefundDecided(ctx context.Context, refund *domain.Refund, reg *domain.Registration) {
	typ := NotificationRefundCleared
	msg := "Your refund has been cleared."
	if refund.Status == domain.RefundStatusRejected {
		typ = NotificationRefundRejected
		msg = "Your refund request was declined."
	}
	s.send(ctx, Notification{
		Type:        typ,
		RecipientID: reg.UserID,
		Title:       "Refund update",
		Message:     msg,
		CreatedAt:   time.Now(),
	})
}

func (s *NotificationService) send(ctx context.Context, n Notification) {
	if s.log == nil {
		return
	}
	s.log.WithFields(logrus.Fields{
		"type":      n.Type,
		"recipient": n.RecipientID,
	}).Info(n.Message)
}
