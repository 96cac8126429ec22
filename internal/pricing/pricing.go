// Package pricing computes a registration's ticket price from the
// flagship's base price and the traveller's selected add-ons.
package pricing

import (
	"strconv"
	"strings"
)

// Category identifies one surcharge slot on a quote. Selecting an
// option in a category replaces whatever was selected there before.
type Category string

const (
	CategoryLocation    Category = "location"
	CategoryTier        Category = "tier"
	CategoryRoomSharing Category = "room_sharing"
	CategoryBed         Category = "bed"
)

// Quote is a running price: the base plus at most one active surcharge
// per category. The zero value of the selections map means a category
// contributes nothing.
type Quote struct {
	Base       int64
	selections map[Category]int64
}

// NewQuote creates a quote with the given base price. Negative bases
// are clamped to zero.
func NewQuote(base int64) *Quote {
	if base < 0 {
		base = 0
	}
	return &Quote{
		Base:       base,
		selections: make(map[Category]int64),
	}
}

// Select sets the active surcharge for a category, replacing any
// previous selection in it. Negative amounts are clamped to zero.
func (q *Quote) Select(cat Category, amount int64) {
	if amount < 0 {
		amount = 0
	}
	q.selections[cat] = amount
}

// Clear removes the active selection for a category.
func (q *Quote) Clear(cat Category) {
	delete(q.selections, cat)
}

// Selected returns the active surcharge for a category, 0 if none.
func (q *Quote) Selected(cat Category) int64 {
	return q.selections[cat]
}

// Total accumulates the base and every active surcharge. Order of
// selection never matters.
func (q *Quote) Total() int64 {
	total := q.Base
	for _, amount := range q.selections {
		total += amount
	}
	return total
}

// Selections contains the per-category surcharges for a one-shot
// computation. Zero fields contribute nothing.
type Selections struct {
	Location    int64
	Tier        int64
	RoomSharing int64
	Bed         int64
}

// Compute returns base plus every selected surcharge.
func Compute(base int64, sel Selections) int64 {
	q := NewQuote(base)
	q.Select(CategoryLocation, sel.Location)
	q.Select(CategoryTier, sel.Tier)
	q.Select(CategoryRoomSharing, sel.RoomSharing)
	q.Select(CategoryBed, sel.Bed)
	return q.Total()
}

// ParseAmount coerces a price string to an integer rupee amount.
// Invalid, empty, or negative inputs become 0; amounts never error.
func ParseAmount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
