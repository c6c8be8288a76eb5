// Package valueobject fixes the monetary comparison rules shared by the
// billing and report domains. Amounts are decimal.Decimal throughout;
// this package decides how close two of them must be to count as equal.
package valueobject

import "github.com/shopspring/decimal"

// Tolerance is the absolute difference below which two monetary values
// are considered settled. Rupee amounts entered by hand routinely differ
// by a paisa after rate rounding, so exact equality is never used for
// settlement checks.
var Tolerance = decimal.NewFromFloat(0.01)

// WithinTolerance reports whether a and b differ by strictly less than
// Tolerance. A full paisa apart is a real difference.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}
