package service

import "errors"

var (
	// ErrInvalidFlagshipID is returned when flagship ID is empty.
	ErrInvalidFlagshipID = errors.New("invalid flagship id")

	// ErrInvalidRegistrationID is returned when registration ID is empty.
	ErrInvalidRegistrationID = errors.New("invalid registration id")

	// ErrInvalidPaymentID is returned when payment ID is empty.
	ErrInvalidPaymentID = errors.New("invalid payment id")

	// ErrInvalidRefundID is returned when refund ID is empty.
	ErrInvalidRefundID = errors.New("invalid refund id")

	// ErrInvalidUserID is returned when user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrFlagshipNotEditable is returned when a wizard write targets a
	// flagship that already went live.
	ErrFlagshipNotEditable = errors.New("flagship is no longer editable")

	// ErrFlagshipNotLive is returned when registering for a flagship
	// that is not open for registrations.
	ErrFlagshipNotLive = errors.New("flagship is not open for registration")

	// ErrRegistrationClosed is returned when the registration deadline
	// has passed.
	ErrRegistrationClosed = errors.New("registration deadline has passed")

	// ErrSubmissionInFlight is returned when a wizard step submit races
	// a previous submit for the same flagship and step.
	ErrSubmissionInFlight = errors.New("a submission for this step is already in progress")

	// ErrDuplicateRegistration is returned when a user registers twice
	// for the same flagship.
	ErrDuplicateRegistration = errors.New("user already registered for this flagship")

	// ErrUnknownCity is returned when a registration picks a departure
	// city the flagship does not offer.
	ErrUnknownCity = errors.New("departure city not offered for this flagship")

	// ErrUnknownTier is returned when a registration picks an
	// unconfigured tier.
	ErrUnknownTier = errors.New("tier not offered for this flagship")

	// ErrUnknownRoomSharing is returned when a registration picks an
	// unconfigured room sharing option.
	ErrUnknownRoomSharing = errors.New("room sharing option not offered for this flagship")

	// ErrUnknownMattressTier is returned when a registration picks an
	// unconfigured mattress tier.
	ErrUnknownMattressTier = errors.New("mattress tier not offered for this flagship")

	// ErrInvalidTripType is returned when the trip type is not
	// solo, group, or partner.
	ErrInvalidTripType = errors.New("invalid trip type")

	// ErrInvalidGender is returned when a registration carries no
	// usable gender for the seat split.
	ErrInvalidGender = errors.New("invalid gender")

	// ErrRegistrationNotPending is returned when approving or rejecting
	// a registration that is not pending.
	ErrRegistrationNotPending = errors.New("registration is not pending")

	// ErrRegistrationNotRejected is returned when requesting
	// re-evaluation for a registration that was not rejected.
	ErrRegistrationNotRejected = errors.New("registration is not rejected")

	// ErrRegistrationNotPayable is returned when submitting a payment
	// for a registration that is not accepted.
	ErrRegistrationNotPayable = errors.New("registration is not accepted for payment")

	// ErrInvalidPaymentAmount is returned when payment amount is invalid.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrInvalidPaymentType is returned when payment type is neither
	// full nor partial.
	ErrInvalidPaymentType = errors.New("invalid payment type")

	// ErrPaymentNotPending is returned when approving or rejecting a
	// payment that was already decided.
	ErrPaymentNotPending = errors.New("payment is not pending")

	// ErrInvalidBankAccount is returned when the selected settlement
	// bank account does not exist or is inactive.
	ErrInvalidBankAccount = errors.New("invalid bank account")

	// ErrInvalidRating is returned when a refund rating is outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrRefundAlreadyRequested is returned when a registration already
	// has a pending refund.
	ErrRefundAlreadyRequested = errors.New("refund already requested")

	// ErrRefundNotPending is returned when clearing or rejecting a
	// refund that was already decided.
	ErrRefundNotPending = errors.New("refund is not pending")

	// ErrRegistrationNotRefundable is returned when requesting a refund
	// for a registration that has no approved money behind it.
	ErrRegistrationNotRefundable = errors.New("registration has no cleared payment to refund")

	// ErrEmailTaken is returned when registering with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrForbidden is returned when a user acts on a resource that is
	// not theirs.
	ErrForbidden = errors.New("not allowed")
)
