package domain

import "time"

// RegistrationStatus represents the server-authoritative state of a
// registration. Clients only observe it.
type RegistrationStatus string

const (
	RegistrationStatusPending          RegistrationStatus = "PENDING"
	RegistrationStatusAccepted         RegistrationStatus = "ACCEPTED"
	RegistrationStatusRejected         RegistrationStatus = "REJECTED"
	RegistrationStatusConfirmed        RegistrationStatus = "CONFIRMED"
	RegistrationStatusNotReserved      RegistrationStatus = "NOT_RESERVED"
	RegistrationStatusRefundProcessing RegistrationStatus = "REFUND_PROCESSING"
	RegistrationStatusRefunded         RegistrationStatus = "REFUNDED"
)

// Gender decides which side of the flagship's seat split the
// traveller occupies.
type Gender string

const (
	GenderFemale Gender = "FEMALE"
	GenderMale   Gender = "MALE"
)

// TripType is how the traveller is joining the trip.
type TripType string

const (
	TripTypeSolo    TripType = "SOLO"
	TripTypeGroup   TripType = "GROUP"
	TripTypePartner TripType = "PARTNER"
)

// SleepPreference is the traveller's bed-or-mattress choice.
type SleepPreference string

const (
	SleepPreferenceBed      SleepPreference = "BED"
	SleepPreferenceMattress SleepPreference = "MATTRESS"
)

// Registration is one traveller's application to join a flagship.
type Registration struct {
	ID                    string
	UserID                string
	FlagshipID            string
	City                  string
	Gender                Gender
	Tier                  string
	RoomSharing           string
	SleepPreference       SleepPreference
	MattressTier          string
	TripType              TripType
	Companions            []string
	Expectations          string
	Price                 int64
	DueAmount             int64
	Status                RegistrationStatus
	ReEvaluationRequested bool
	CreatedAt             time.Time
}

// RegistrationDraft is the cross-page accumulation of a traveller's
// selections before submission. Held in Redis, never in Postgres.
type RegistrationDraft struct {
	FlagshipID      string          `json:"flagship_id"`
	City            string          `json:"city"`
	Gender          Gender          `json:"gender"`
	Tier            string          `json:"tier"`
	RoomSharing     string          `json:"room_sharing"`
	SleepPreference SleepPreference `json:"sleep_preference"`
	MattressTier    string          `json:"mattress_tier"`
	TripType        TripType        `json:"trip_type"`
	Companions      []string        `json:"companions"`
	Expectations    string          `json:"expectations"`
}
