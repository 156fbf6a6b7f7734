package calculator

import "math"

// ScaledCost returns the price of the next purchase after owned purchases:
// round(base * factor^owned).
func ScaledCost(base float64, owned int, factor float64) float64 {
	if owned < 0 {
		owned = 0
	}
	return math.Round(base * math.Pow(factor, float64(owned)))
}

// ScaledComputeCost scales by owned count first and then applies the global
// compute cost multiplier. The result is not rounded again.
func ScaledComputeCost(base float64, owned int, factor, multiplier float64) float64 {
	return ScaledCost(base, owned, factor) * multiplier
}
