package rating

import "math"

// Default team update constants.
const (
	defaultTeamKBase    = 25.0
	defaultRosterBlend  = 0.15
	movScale            = 2.2
	gapDamping          = 0.001
	defaultTeamBaseline = DefaultRating
)

// TeamOption applies a configuration option to the TeamUpdater.
type TeamOption func(*TeamUpdater)

// WithTeamKBase sets the base K-factor for team updates.
func WithTeamKBase(k float64) TeamOption {
	return func(u *TeamUpdater) {
		if k > 0 {
			u.kBase = k
		}
	}
}

// WithRosterBlend sets how strongly roster strength nudges the effective
// team rating used for expected-score purposes.
func WithRosterBlend(beta float64) TeamOption {
	return func(u *TeamUpdater) {
		if beta >= 0 {
			u.rosterBlend = beta
		}
	}
}

// TeamResult describes one side of a decisive team update.
type TeamResult struct {
	Pre      float64
	Post     float64
	Expected float64
	Actual   float64
}

// TeamUpdate is the outcome of applying one match to two team ratings.
// Updated is false for unknown results; the pre-ratings then carry
// through unchanged.
type TeamUpdate struct {
	A, B    TeamResult
	K       float64
	Margin  float64
	Updated bool
}

// TeamUpdater computes opponent- and roster-aware team rating updates.
type TeamUpdater struct {
	kBase       float64
	rosterBlend float64
}

// NewTeamUpdater creates a TeamUpdater with configuration options.
func NewTeamUpdater(opts ...TeamOption) *TeamUpdater {
	u := &TeamUpdater{
		kBase:       defaultTeamKBase,
		rosterBlend: defaultRosterBlend,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Effective nudges a stored team rating toward its roster's mean player
// rating. The result is used only for expected scores, never persisted.
func (u *TeamUpdater) Effective(teamRating float64, rosterRatings []float64) float64 {
	return teamRating + u.rosterBlend*(mean(rosterRatings, defaultTeamBaseline)-defaultTeamBaseline)
}

// MOVMultiplier damps updates by the rating gap and amplifies them by the
// margin of victory. It increases monotonically in margin and decreases
// monotonically in the gap magnitude.
func (u *TeamUpdater) MOVMultiplier(margin, effectiveGap float64) float64 {
	return math.Log(1+math.Max(1, margin)) * movScale / (math.Abs(effectiveGap)*gapDamping + movScale)
}

// Update applies one match to the two team ratings. aWon is meaningful
// only when decisive is true; an unknown result leaves both ratings
// untouched but still reports the expected scores.
func (u *TeamUpdater) Update(ra, rb float64, rosterA, rosterB []float64, decisive, aWon bool, importance, margin float64) TeamUpdate {
	effA := u.Effective(ra, rosterA)
	effB := u.Effective(rb, rosterB)
	ea := expectedScore(effA, effB)
	eb := 1 - ea

	upd := TeamUpdate{
		A:      TeamResult{Pre: ra, Post: ra, Expected: ea, Actual: 0.5},
		B:      TeamResult{Pre: rb, Post: rb, Expected: eb, Actual: 0.5},
		Margin: margin,
	}
	if !decisive {
		return upd
	}

	mult := u.MOVMultiplier(margin, effA-effB)
	k := u.kBase * importance * mult
	actualA := 0.0
	if aWon {
		actualA = 1.0
	}
	upd.A.Actual = actualA
	upd.B.Actual = 1 - actualA
	upd.A.Post = ra + k*(actualA-ea)
	upd.B.Post = rb + k*((1-actualA)-eb)
	upd.K = k
	upd.Updated = true
	return upd
}
