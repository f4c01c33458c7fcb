// Package margin derives a bounded margin-of-victory figure from either
// round-level map scores or map-win counts.
package margin

import "vlrank/internal/domain/model"

// Bounds for the round-normalized margin.
const (
	minMargin = 1.0
	maxMargin = 8.0
)

// Method records which input the margin was derived from.
type Method int

const (
	// MethodRounds means per-map round scores were summed and averaged.
	MethodRounds Method = iota
	// MethodMaps means the fallback map-win difference was used.
	MethodMaps
)

func (m Method) String() string {
	if m == MethodRounds {
		return "rounds"
	}
	return "maps"
}

// Normalize computes the margin for a match. The primary method averages
// the round-score gap across recorded maps and halves it, clamped to
// [1, 8]. When no usable round scores exist it falls back to the absolute
// difference in maps won, with a floor of 1 for decisive matches.
func Normalize(maps []model.MapScore, scoreA, scoreB int) (float64, Method) {
	if len(maps) > 0 {
		var sumA, sumB int
		for _, ms := range maps {
			sumA += ms.RoundsA
			sumB += ms.RoundsB
		}
		if sumA != 0 || sumB != 0 {
			avg := abs(sumA-sumB) / float64(len(maps))
			scaled := avg / 2
			if scaled < minMargin {
				scaled = minMargin
			}
			if scaled > maxMargin {
				scaled = maxMargin
			}
			return scaled, MethodRounds
		}
	}
	diff := abs(scoreA - scoreB)
	if diff < 1 {
		diff = 1
	}
	return diff, MethodMaps
}

func abs(v int) float64 {
	if v < 0 {
		return float64(-v)
	}
	return float64(v)
}
