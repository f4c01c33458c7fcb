// Package share converts a roster's raw performance figures into bounded,
// sum-to-one attribution shares.
//
// The model is self-contained: it reads performance-rating figures only,
// never Elo state, and is not wired into the replay path today.
package share

// Model constants.
const (
	relFloor   = 0.6  // lower clamp on rating relative to the team mean
	relCeil    = 1.3  // upper clamp on rating relative to the team mean
	equalBlend = 0.5  // weight of the equal per-player split in the blend
	maxShare   = 0.35 // cap on any individual share
	tolerance  = 1e-9
)

// PlayerInput is one roster member's raw performance figure for a match.
type PlayerInput struct {
	Player string
	Rating float64 // <=0 means missing
}

// Share is one player's fractional credit for the team outcome.
type Share struct {
	Player string
	Value  float64
}

// Compute returns attribution shares for the roster. matchAvgRating is
// the whole-match average rating figure, used as the second fallback for
// missing player figures. The shares sum to 1.0 and no share exceeds the
// cap (when the cap is mathematically satisfiable, i.e. n >= 3).
func Compute(players []PlayerInput, matchAvgRating float64) []Share {
	n := len(players)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []Share{{Player: players[0].Player, Value: 1.0}}
	}

	ratings := approximate(players, matchAvgRating)

	// Clamp each rating relative to the team mean, then weight
	// proportionally.
	var teamMean float64
	for _, r := range ratings {
		teamMean += r
	}
	teamMean /= float64(n)

	weights := make([]float64, n)
	var total float64
	for i, r := range ratings {
		rel := r / teamMean
		if rel < relFloor {
			rel = relFloor
		}
		if rel > relCeil {
			rel = relCeil
		}
		weights[i] = rel
		total += rel
	}

	// Blend proportional weights 50/50 with an equal split to limit any
	// one player's dominance, then enforce the cap.
	equal := 1.0 / float64(n)
	shares := make([]float64, n)
	for i, w := range weights {
		shares[i] = (1-equalBlend)*(w/total) + equalBlend*equal
	}
	redistribute(shares)

	out := make([]Share, n)
	for i, p := range players {
		out[i] = Share{Player: p.Player, Value: shares[i]}
	}
	return out
}

// approximate fills missing/zero ratings from the team's non-zero mean,
// the whole-match mean, or 1.0, in that priority order.
func approximate(players []PlayerInput, matchAvgRating float64) []float64 {
	var sum float64
	var count int
	for _, p := range players {
		if p.Rating > 0 {
			sum += p.Rating
			count++
		}
	}
	fill := 1.0
	switch {
	case count > 0:
		fill = sum / float64(count)
	case matchAvgRating > 0:
		fill = matchAvgRating
	}

	ratings := make([]float64, len(players))
	for i, p := range players {
		if p.Rating > 0 {
			ratings[i] = p.Rating
		} else {
			ratings[i] = fill
		}
	}
	return ratings
}

// redistribute iteratively enforces the individual cap while keeping the
// total at 1.0. Excess above the cap is spread proportionally among the
// uncapped players; if everyone is capped the vector is renormalized.
func redistribute(shares []float64) {
	for iter := 0; iter < len(shares); iter++ {
		var excess, uncappedTotal float64
		capped := make([]bool, len(shares))
		for i, s := range shares {
			if s > maxShare+tolerance {
				excess += s - maxShare
				shares[i] = maxShare
				capped[i] = true
			} else if s >= maxShare-tolerance {
				capped[i] = true
			}
		}
		if excess <= tolerance {
			return
		}
		for i, s := range shares {
			if !capped[i] {
				uncappedTotal += s
			}
		}
		if uncappedTotal <= tolerance {
			// Everyone at the cap: renormalize and stop.
			var total float64
			for _, s := range shares {
				total += s
			}
			for i := range shares {
				shares[i] /= total
			}
			return
		}
		for i, s := range shares {
			if !capped[i] {
				shares[i] = s + excess*(s/uncappedTotal)
			}
		}
	}
}
