// Package reconcile checks subtotal + tax + tip against the printed total
// within tolerance.
package reconcile

import (
	"math"

	"github.com/chamchi6619/pantry-core/internal/entity"
)

const (
	// relTolerance absorbs rounding noise on large receipts.
	relTolerance = 0.02
	// flatTolerance keeps tiny receipts from passing on the percentage
	// band alone.
	flatTolerance = 0.05
)

// Reconcile compares the computed sum with the printed total. A missing or
// zero total is "can't verify": Ok=false with no delta, not an error.
func Reconcile(subtotal, tax, tip float64, total *float64) entity.ReconciliationResult {
	computed := round2(subtotal + tax + tip)
	if total == nil || *total == 0 {
		return entity.ReconciliationResult{Ok: false, Computed: computed}
	}

	actual := *total
	delta := round2(math.Abs(computed - actual))
	tolerance := math.Max(relTolerance*actual, flatTolerance)
	return entity.ReconciliationResult{
		Ok:       delta <= tolerance,
		Delta:    &delta,
		Computed: computed,
		Actual:   actual,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
