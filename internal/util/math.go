package util

import "math"

func RoundFloat64(f float64, n int) float64 {
	pow := math.Pow10(n)
	return math.Round(f*pow) / pow
}

// ClampNonNegative maps NaN and negatives to 0 so durations folded from
// untrusted payloads stay well-formed.
func ClampNonNegative(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	return f
}
