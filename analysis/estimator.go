package analysis

import "math"

const (
	// A density of zero still credits a handwriting-noise baseline
	estimateBase = 3

	// Marks credited per percentage point of ink density
	estimateSlope = 5

	// Ceiling reflecting the heuristic's unreliability at high density:
	// dense correct writing and dense scribbling read the same.
	estimateCap = 60
)

// EstimateScore maps an ink density to an estimated mark count via a
// fixed bounded linear transform. Total, pure, and monotonically
// non-decreasing in density; output is always within [0, 60].
func EstimateScore(density float64) float64 {
	score := math.Floor(estimateBase + density*estimateSlope)
	if score < 0 {
		return 0
	}
	if score > estimateCap {
		return estimateCap
	}
	return score
}
