// Package model contains domain models passed between layers.
package model

// Match is one replayed unit of match history. The ID doubles as the
// chronological surrogate: replay order is strictly ascending by ID.
type Match struct {
	ID         int64
	Tournament string // event name, e.g. "Champions 2025"
	Stage      string // stage label, e.g. "Playoffs"
	MatchType  string // round label, e.g. "Grand Final"
	TeamA      string
	TeamB      string
	// Series scores. Nil (or both zero) means the result is unknown.
	ScoreA *int
	ScoreB *int
}

// Decisive reports whether the match has a usable series result.
func (m Match) Decisive() bool {
	if m.ScoreA == nil || m.ScoreB == nil {
		return false
	}
	if *m.ScoreA == 0 && *m.ScoreB == 0 {
		return false
	}
	return *m.ScoreA != *m.ScoreB
}

// BoxScoreRow is one player's performance line for one map of a match.
// Providers may also hand back pre-aggregated per-match rows; the engine
// averages rows per player per match either way.
type BoxScoreRow struct {
	MatchID int64
	Player  string
	Team    string  // team display name as printed on the box score
	Rating  float64 // performance rating figure; <=0 means missing
	ACS     float64 // average combat score; <=0 means missing
}

// MapScore holds one map's round scores for the two sides.
type MapScore struct {
	RoundsA int
	RoundsB int
}

// TeamHistory is one append-only audit row for a team rating update.
// Two symmetric rows are written per decisive match.
type TeamHistory struct {
	MatchID    int64
	Team       string
	Opponent   string
	Pre        float64
	Post       float64
	Expected   float64
	Actual     float64
	Margin     float64
	K          float64
	Importance float64
}

// PlayerHistory is one append-only audit row for a player rating update.
type PlayerHistory struct {
	MatchID    int64
	Player     string
	Team       string
	Opponent   string
	Pre        float64
	Post       float64
	Expected   float64
	Actual     float64
	K          float64
	Importance float64
}

// TeamSnapshot is a team's current-value projection, fully replaced on
// each replay.
type TeamSnapshot struct {
	Team   string
	Rating float64
	Games  int
}

// PlayerSnapshot is a player's current-value projection. Seeded marks
// cold-start entries derived from long-run box-score averages rather
// than a replayed trajectory.
type PlayerSnapshot struct {
	Player string
	Rating float64
	Games  int
	Team   string // most frequent affiliation seen during the replay
	Seeded bool
}
