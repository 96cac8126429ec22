// Package seats validates seat capacity partitions and derives
// two-way splits from slider percentages.
package seats

import (
	"fmt"
	"math"
)

// Part is one labelled share of a capacity partition.
type Part struct {
	Label string
	Value int
}

// Result reports the outcome of a partition validation. Errors is keyed
// by part label; the SumLabel key carries the partition-wide mismatch.
type Result struct {
	Valid  bool
	Errors map[string]string
}

// SumLabel keys the partition-wide sum-mismatch error in Result.Errors.
const SumLabel = "_sum"

// ValidateSplit checks that every part is a non-negative integer and
// that the parts sum to total exactly. No tolerance.
func ValidateSplit(total int, parts []Part) Result {
	res := Result{Valid: true, Errors: make(map[string]string)}

	if total < 0 {
		res.Valid = false
		res.Errors[SumLabel] = "total seats must not be negative"
		return res
	}

	sum := 0
	for _, p := range parts {
		if p.Value < 0 {
			res.Valid = false
			res.Errors[p.Label] = "seats must not be negative"
			continue
		}
		sum += p.Value
	}

	if res.Valid && sum != total {
		res.Valid = false
		res.Errors[SumLabel] = fmt.Sprintf("seats sum to %d, expected %d", sum, total)
	}

	return res
}

// SplitByPercent derives a two-way split from a slider percentage.
// The first share is rounded; the second is always the complement, so
// the two always sum to total regardless of rounding.
func SplitByPercent(total int, percent float64) (int, int) {
	if total <= 0 {
		return 0, 0
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	a := int(math.Round(percent / 100 * float64(total)))
	return a, total - a
}
