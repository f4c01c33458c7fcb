package rating

import "math"

// Default player update constants.
const (
	defaultPlayerKBase    = 18.0
	defaultMaxPlayerDelta = 20.0
	ratingWeight          = 0.85
	acsWeight             = 0.15
	perfSteepness         = 4.0
	winLossWeight         = 0.05
)

// PlayerOption applies a configuration option to the PlayerUpdater.
type PlayerOption func(*PlayerUpdater)

// WithPlayerKBase sets the base K-factor for player updates.
func WithPlayerKBase(k float64) PlayerOption {
	return func(u *PlayerUpdater) {
		if k > 0 {
			u.kBase = k
		}
	}
}

// WithMaxPlayerDelta bounds the single-match rating swing.
func WithMaxPlayerDelta(d float64) PlayerOption {
	return func(u *PlayerUpdater) {
		if d > 0 {
			u.maxDelta = d
		}
	}
}

// PlayerPerf is a player's per-match averaged performance line.
type PlayerPerf struct {
	Rating float64 // <=0 means missing
	ACS    float64 // <=0 means missing
}

// PlayerContext carries the match-level reference figures the fallback
// chains draw from.
type PlayerContext struct {
	OpponentMeanElo   float64 // mean pre-rating of the opposing roster
	OpponentAvgRating float64 // opposing team's average performance rating
	MatchAvgRating    float64 // whole-match average performance rating
	MatchAvgACS       float64 // whole-match average ACS
	TeamResult        float64 // 1, 0, or 0.5 for unknown series results
	Importance        float64
}

// PlayerUpdate is the outcome of one player's rating update.
type PlayerUpdate struct {
	Pre        float64
	Post       float64
	Expected   float64
	Actual     float64
	K          float64
	Delta      float64
	PerfRatio  float64
	Provenance Provenance
}

// PlayerUpdater maintains the independent player rating track.
type PlayerUpdater struct {
	kBase    float64
	maxDelta float64
}

// NewPlayerUpdater creates a PlayerUpdater with configuration options.
func NewPlayerUpdater(opts ...PlayerOption) *PlayerUpdater {
	u := &PlayerUpdater{
		kBase:    defaultPlayerKBase,
		maxDelta: defaultMaxPlayerDelta,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// resolveRating applies the missing-data fallback chain to a player's
// performance rating figure.
func resolveRating(perf PlayerPerf, ctx PlayerContext) (float64, Provenance) {
	if perf.Rating > 0 {
		return perf.Rating, ProvActual
	}
	if ctx.OpponentAvgRating > 0 {
		return ctx.OpponentAvgRating, ProvOpponentAverage
	}
	if ctx.MatchAvgRating > 0 {
		return ctx.MatchAvgRating, ProvMatchAverage
	}
	return 1.0, ProvDefault
}

// perfRatio blends the rating and ACS ratios into a single figure
// centered on 1.0.
func perfRatio(perf PlayerPerf, ctx PlayerContext) (float64, Provenance) {
	figure, prov := resolveRating(perf, ctx)

	ref := ctx.OpponentAvgRating
	if ref <= 0 {
		ref = ctx.MatchAvgRating
	}
	if ref <= 0 {
		ref = 1.0
	}
	rRatio := figure / ref

	aRatio := 1.0
	if perf.ACS > 0 && ctx.MatchAvgACS > 0 {
		aRatio = perf.ACS / ctx.MatchAvgACS
	}
	return ratingWeight*rRatio + acsWeight*aRatio, prov
}

// Update computes one player's new rating. The update always applies:
// on unknown team results the caller passes TeamResult 0.5 so the
// win/loss nudge cancels out.
func (u *PlayerUpdater) Update(pre float64, games int, perf PlayerPerf, ctx PlayerContext) PlayerUpdate {
	expected := expectedScore(pre, ctx.OpponentMeanElo)

	ratio, prov := perfRatio(perf, ctx)
	actual := 1.0 / (1.0 + math.Exp(-perfSteepness*(ratio-1.0)))
	actual = clamp(actual+winLossWeight*(ctx.TeamResult-0.5), 0, 1)

	k := u.kBase * ctx.Importance / math.Sqrt(float64(games)+1)
	delta := clamp(k*(actual-expected), -u.maxDelta, u.maxDelta)

	return PlayerUpdate{
		Pre:        pre,
		Post:       pre + delta,
		Expected:   expected,
		Actual:     actual,
		K:          k,
		Delta:      delta,
		PerfRatio:  ratio,
		Provenance: prov,
	}
}
