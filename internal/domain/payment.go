package domain

import "time"

// PaymentStatus represents the current status of a payment submission.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusApproved PaymentStatus = "APPROVED"
	PaymentStatusRejected PaymentStatus = "REJECTED"
)

// PaymentType distinguishes full settlement from an advance.
type PaymentType string

const (
	PaymentTypeFull    PaymentType = "FULL"
	PaymentTypePartial PaymentType = "PARTIAL"
)

// Payment is a bank-transfer submission against a registration,
// verified manually by an admin from the uploaded screenshot.
type Payment struct {
	ID             string
	RegistrationID string
	BankAccountID  string
	Amount         int64
	PaymentType    PaymentType
	Screenshot     string
	Status         PaymentStatus
	CreatedAt      time.Time
}

// RefundStatus represents the current status of a refund request.
type RefundStatus string

const (
	RefundStatusPending  RefundStatus = "PENDING"
	RefundStatusCleared  RefundStatus = "CLEARED"
	RefundStatusRejected RefundStatus = "REJECTED"
)

// Refund is a traveller's request to get their money back.
type Refund struct {
	ID             string
	RegistrationID string
	BankDetails    string
	Reason         string
	Feedback       string
	Rating         int
	Status         RefundStatus
	CreatedAt      time.Time
}

// BankAccount is a settlement account payments are made into.
type BankAccount struct {
	ID            string
	BankName      string
	AccountTitle  string
	AccountNumber string
	IBAN          string
	Active        bool
}
