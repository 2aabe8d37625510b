package formatter

import "github.com/shopspring/decimal"

// Amount renders a monetary value as a fixed two-decimal string,
// rounding halves away from zero. The remote API compares payloads
// byte-for-byte on re-sync, so the exact rounding matters.
func Amount(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}

// Round2 rounds a price to two decimals using the same rule as Amount,
// for fields the API expects as numbers rather than strings.
func Round2(value float64) float64 {
	f, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return f
}
