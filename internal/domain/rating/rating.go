// Package rating implements the team and player Elo update algorithms.
package rating

import "math"

// DefaultRating is the rating every subject starts from.
const DefaultRating = 1500.0

// expectedScore is the logistic win probability for a rating gap.
func expectedScore(r, opponent float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, -(r-opponent)/400.0))
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// mean returns the arithmetic mean of vs, or fallback when vs is empty.
func mean(vs []float64, fallback float64) float64 {
	if len(vs) == 0 {
		return fallback
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
