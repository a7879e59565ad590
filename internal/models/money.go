package models

import "math"

// CentTolerance is the rounding slack allowed when comparing monetary
// values that were computed along different paths.
const CentTolerance = 0.01

// RoundCents rounds a monetary value to the currency's minor unit.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// AlmostEqual compares two monetary values within a cent of tolerance.
func AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) <= CentTolerance+1e-9
}
