// backend-go/internal/replenish/calculator.go
package replenish

import "math"

// QuantityToRaise computes the shortfall: max(demand - remaining, 0),
// rounded to the nearest integer with ties away from zero
// (math.Round). Never negative.
func QuantityToRaise(demand, remainingStock float64) int {
	return int(math.Round(math.Max(demand-remainingStock, 0)))
}

// RoundQty rounds a raw quantity for display, ties away from zero.
func RoundQty(v float64) int {
	return int(math.Round(v))
}
