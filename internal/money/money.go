// Package money holds the fixed-precision rounding helper shared by every
// total computation in the storefront.
package money

import "math"

// Round2 rounds x to two decimal places, half up on the cent boundary.
//
// Callers apply it only at output points (subtotal, tax, total). Unit prices
// and per-line totals are summed at full precision first; rounding each line
// before summing can produce a different grand total, and this system
// sums-then-rounds.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
