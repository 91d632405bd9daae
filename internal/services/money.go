package services

import "math"

// MinorUnits converts a decimal price to the gateway minor unit
// (kobo/cents). Rounded, not truncated: 19.99 is stored as the float
// closest to it, and a plain int64 cast would charge 1998 instead of
// 1999.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
