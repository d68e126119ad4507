// Package mathutil provides common mathematical utility functions.
package mathutil

import "cmp"

// Clamp restricts a value to be within a specified range.
// Returns low if val < low, high if val > high, otherwise returns val.
func Clamp[T cmp.Ordered](val, low, high T) T {
	if val < low {
		return low
	}
	if val > high {
		return high
	}
	return val
}

// Lerp maps t in [0, 1] linearly onto [a, b]. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InverseLerp returns where v falls between a and b as a fraction.
// A degenerate range maps everything to 0.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return (v - a) / (b - a)
}
