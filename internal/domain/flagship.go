package domain

import "time"

// FlagshipStatus represents the lifecycle state of a flagship.
type FlagshipStatus string

const (
	FlagshipStatusDraft     FlagshipStatus = "DRAFT"
	FlagshipStatusLive      FlagshipStatus = "LIVE"
	FlagshipStatusCompleted FlagshipStatus = "COMPLETED"
)

// Visibility controls who can see a flagship listing.
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

// Location is a departure city offered for a flagship. Price is the
// surcharge added on top of the base price for travellers joining from it.
type Location struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Price   int64  `json:"price"`
}

// Tier is a named pricing package layered on the base price.
type Tier struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// MattressTier is a bed/mattress sleeping option with its surcharge.
type MattressTier struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// RoomSharingOption is a room occupancy choice with its surcharge.
type RoomSharingOption struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// SeatAllocation partitions the total capacity three ways: by gender,
// by departure city, and by sleeping arrangement. Each partition must
// sum to Total exactly.
type SeatAllocation struct {
	Total    int            `json:"total"`
	Female   int            `json:"female"`
	Male     int            `json:"male"`
	PerCity  map[string]int `json:"per_city"`
	Bed      int            `json:"bed"`
	Mattress int            `json:"mattress"`
}

// ImportantDates are the flagship's deadlines. All must precede the
// trip start date.
type ImportantDates struct {
	RegistrationDeadline   time.Time `json:"registration_deadline"`
	AdvancePaymentDeadline time.Time `json:"advance_payment_deadline"`
	EarlyBirdDeadline      time.Time `json:"early_bird_deadline"`
}

// Discount is one optional discount category.
type Discount struct {
	Enabled bool  `json:"enabled"`
	Amount  int64 `json:"amount"`
	Count   int   `json:"count"`
}

// DiscountConfig holds the four optional discount categories.
type DiscountConfig struct {
	EarlyBird Discount `json:"early_bird"`
	Group     Discount `json:"group"`
	Student   Discount `json:"student"`
	Referral  Discount `json:"referral"`
}

// Flagship is a bookable trip offering, configured through the
// multi-step creation wizard.
type Flagship struct {
	ID            string
	Name          string
	Destination   string
	Category      string
	Visibility    Visibility
	Status        FlagshipStatus
	Description   string
	StartDate     time.Time
	EndDate       time.Time
	BasePrice     int64
	Locations     []Location
	Tiers         []Tier
	MattressTiers []MattressTier
	RoomSharing   []RoomSharingOption
	Seats         SeatAllocation
	Dates         ImportantDates
	Discounts     DiscountConfig
	BankAccountID string
	Published     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EnabledLocations returns the locations travellers can currently book from.
func (f *Flagship) EnabledLocations() []Location {
	var out []Location
	for _, l := range f.Locations {
		if l.Enabled {
			out = append(out, l)
		}
	}
	return out
}

// LocationByName returns the enabled location with the given name.
func (f *Flagship) LocationByName(name string) (Location, bool) {
	for _, l := range f.Locations {
		if l.Enabled && l.Name == name {
			return l, true
		}
	}
	return Location{}, false
}

// TierByName returns the tier with the given name.
func (f *Flagship) TierByName(name string) (Tier, bool) {
	for _, t := range f.Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return Tier{}, false
}

// RoomSharingByName returns the room sharing option with the given name.
func (f *Flagship) RoomSharingByName(name string) (RoomSharingOption, bool) {
	for _, r := range f.RoomSharing {
		if r.Name == name {
			return r, true
		}
	}
	return RoomSharingOption{}, false
}

// MattressTierByName returns the mattress tier with the given name.
func (f *Flagship) MattressTierByName(name string) (MattressTier, bool) {
	for _, m := range f.MattressTiers {
		if m.Name == name {
			return m, true
		}
	}
	return MattressTier{}, false
}
