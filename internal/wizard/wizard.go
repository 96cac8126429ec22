// Package wizard sequences the flagship creation flow and enforces
// each step's entry preconditions and field validation.
package wizard

import (
	"fmt"
	"sort"
	"strings"

	"musafir/internal/domain"
	"musafir/internal/seats"
)

// Step is one state of the flagship creation wizard.
type Step string

const (
	StepBasics    Step = "BASICS"
	StepContent   Step = "CONTENT"
	StepPricing   Step = "PRICING"
	StepSeats     Step = "SEATS"
	StepDates     Step = "DATES"
	StepDiscounts Step = "DISCOUNTS"
	StepPayment   Step = "PAYMENT"
	StepSuccess   Step = "SUCCESS"
)

// order is the fixed wizard sequence.
var order = []Step{
	StepBasics,
	StepContent,
	StepPricing,
	StepSeats,
	StepDates,
	StepDiscounts,
	StepPayment,
	StepSuccess,
}

// Steps returns the wizard sequence in order.
func Steps() []Step {
	out := make([]Step, len(order))
	copy(out, order)
	return out
}

// ParseStep converts a wire string to a Step.
func ParseStep(s string) (Step, error) {
	step := Step(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range order {
		if step == known {
			return step, nil
		}
	}
	return "", fmt.Errorf("unknown wizard step %q", s)
}

// Index returns the position of the step in the sequence, -1 if unknown.
func (s Step) Index() int {
	for i, step := range order {
		if step == s {
			return i
		}
	}
	return -1
}

// Next returns the step after s. ok is false at the end of the flow.
func (s Step) Next() (Step, bool) {
	i := s.Index()
	if i < 0 || i+1 >= len(order) {
		return "", false
	}
	return order[i+1], true
}

// GuardError reports an unmet entry precondition. Redirect names the
// earliest step where the missing data must be provided.
type GuardError struct {
	Step     Step
	Redirect Step
	Reason   string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("cannot enter step %s: %s", e.Step, e.Reason)
}

// requirement is a precondition for entering a step, together with the
// step the user must return to when it is unmet.
type requirement struct {
	met      func(f *domain.Flagship) bool
	redirect Step
	reason   string
}

func entryRequirements(step Step) []requirement {
	switch step {
	case StepBasics:
		return nil
	case StepContent:
		return []requirement{{
			met: func(f *domain.Flagship) bool {
				return f != nil && f.ID != "" && f.Name != "" && f.Destination != "" &&
					!f.StartDate.IsZero() && !f.EndDate.IsZero()
			},
			redirect: StepBasics,
			reason:   "trip basics are incomplete",
		}}
	case StepPricing:
		return []requirement{{
			met: func(f *domain.Flagship) bool {
				return f != nil && f.ID != "" && f.Name != ""
			},
			redirect: StepBasics,
			reason:   "trip basics are incomplete",
		}}
	case StepSeats:
		return []requirement{{
			met: func(f *domain.Flagship) bool {
				return f != nil && len(f.EnabledLocations()) > 0
			},
			redirect: StepPricing,
			reason:   "no departure cities configured",
		}}
	case StepDates, StepDiscounts:
		return []requirement{{
			met: func(f *domain.Flagship) bool {
				return f != nil && f.Seats.Total > 0
			},
			redirect: StepSeats,
			reason:   "seat allocation is not set",
		}}
	case StepPayment:
		return []requirement{{
			met: func(f *domain.Flagship) bool {
				return f != nil && !f.Dates.RegistrationDeadline.IsZero() &&
					!f.Dates.AdvancePaymentDeadline.IsZero() &&
					!f.Dates.EarlyBirdDeadline.IsZero()
			},
			redirect: StepDates,
			reason:   "important dates are not set",
		}}
	case StepSuccess:
		return []requirement{{
			met: func(f *domain.Flagship) bool {
				return f != nil && f.BankAccountID != "" && f.Published
			},
			redirect: StepPayment,
			reason:   "flagship is not published",
		}}
	}
	return nil
}

// CheckGuard verifies every entry precondition from the start of the
// flow up to and including the requested step, returning the earliest
// unmet one as a GuardError.
func CheckGuard(f *domain.Flagship, step Step) *GuardError {
	target := step.Index()
	if target < 0 {
		return &GuardError{Step: step, Redirect: StepBasics, Reason: "unknown step"}
	}

	for i := 0; i <= target; i++ {
		for _, req := range entryRequirements(order[i]) {
			if !req.met(f) {
				return &GuardError{Step: step, Redirect: req.redirect, Reason: req.reason}
			}
		}
	}
	return nil
}

// FieldErrors collects per-field validation failures for one step.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// ValidateStep runs the step's local field validation against the
// merged draft. It never touches the network or the database; a
// non-nil return blocks the upsert.
func ValidateStep(f *domain.Flagship, step Step) error {
	errs := FieldErrors{}

	switch step {
	case StepBasics:
		if f.Name == "" {
			errs["name"] = "name is required"
		}
		if f.Destination == "" {
			errs["destination"] = "destination is required"
		}
		if f.Category == "" {
			errs["category"] = "category is required"
		}
		if f.Visibility != domain.VisibilityPublic && f.Visibility != domain.VisibilityPrivate {
			errs["visibility"] = "visibility must be public or private"
		}
		if f.StartDate.IsZero() {
			errs["start_date"] = "start date is required"
		}
		if f.EndDate.IsZero() {
			errs["end_date"] = "end date is required"
		}
		if !f.StartDate.IsZero() && !f.EndDate.IsZero() && !f.EndDate.After(f.StartDate) {
			errs["end_date"] = "end date must be after start date"
		}

	case StepContent:
		if f.Description == "" {
			errs["description"] = "description is required"
		}

	case StepPricing:
		if f.BasePrice <= 0 {
			errs["base_price"] = "base price must be greater than zero"
		}
		enabled := 0
		for i, l := range f.Locations {
			if l.Price < 0 {
				errs[fmt.Sprintf("locations[%d].price", i)] = "price must not be negative"
			}
			if l.Enabled {
				enabled++
			}
		}
		if enabled == 0 {
			errs["locations"] = "at least one departure city must be enabled"
		}

	case StepSeats:
		validateSeats(f, errs)

	case StepDates:
		validateDates(f, errs)

	case StepDiscounts:
		for name, d := range map[string]domain.Discount{
			"early_bird": f.Discounts.EarlyBird,
			"group":      f.Discounts.Group,
			"student":    f.Discounts.Student,
			"referral":   f.Discounts.Referral,
		} {
			if !d.Enabled {
				continue
			}
			if d.Amount <= 0 {
				errs[name+".amount"] = "discount amount must be greater than zero"
			}
			if d.Count <= 0 {
				errs[name+".count"] = "discount count must be greater than zero"
			}
		}

	case StepPayment:
		if f.BankAccountID == "" {
			errs["bank_account_id"] = "settlement bank account is required"
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateSeats(f *domain.Flagship, errs FieldErrors) {
	alloc := f.Seats
	if alloc.Total <= 0 {
		errs["seats.total"] = "total seats must be greater than zero"
		return
	}

	gender := seats.ValidateSplit(alloc.Total, []seats.Part{
		{Label: "female", Value: alloc.Female},
		{Label: "male", Value: alloc.Male},
	})
	mergeSplitErrors(errs, "seats.gender", gender)

	sleeping := seats.ValidateSplit(alloc.Total, []seats.Part{
		{Label: "bed", Value: alloc.Bed},
		{Label: "mattress", Value: alloc.Mattress},
	})
	mergeSplitErrors(errs, "seats.sleeping", sleeping)

	var cityParts []seats.Part
	for _, l := range f.EnabledLocations() {
		cityParts = append(cityParts, seats.Part{Label: l.Name, Value: alloc.PerCity[l.Name]})
	}
	city := seats.ValidateSplit(alloc.Total, cityParts)
	mergeSplitErrors(errs, "seats.city", city)
}

func mergeSplitErrors(errs FieldErrors, prefix string, res seats.Result) {
	if res.Valid {
		return
	}
	for label, reason := range res.Errors {
		if label == seats.SumLabel {
			errs[prefix] = reason
			continue
		}
		errs[prefix+"."+label] = reason
	}
}

func validateDates(f *domain.Flagship, errs FieldErrors) {
	if f.Dates.RegistrationDeadline.IsZero() {
		errs["registration_deadline"] = "registration deadline is required"
	} else if !f.Dates.RegistrationDeadline.Before(f.StartDate) {
		errs["registration_deadline"] = "registration deadline must be before the trip start date"
	}
	if f.Dates.AdvancePaymentDeadline.IsZero() {
		errs["advance_payment_deadline"] = "advance payment deadline is required"
	} else if !f.Dates.AdvancePaymentDeadline.Before(f.StartDate) {
		errs["advance_payment_deadline"] = "advance payment deadline must be before the trip start date"
	}
	if f.Dates.EarlyBirdDeadline.IsZero() {
		errs["early_bird_deadline"] = "early bird deadline is required"
	} else if !f.Dates.EarlyBirdDeadline.Before(f.StartDate) {
		errs["early_bird_deadline"] = "early bird deadline must be before the trip start date"
	}
}
