// Package fixtures generates synthetic match histories for demos and
// tests of the replay engine.
package fixtures

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"vlrank/internal/adapters/feed"
	"vlrank/internal/domain/model"
)

// Generation defaults.
const (
	defaultTeams          = 12
	defaultMatches        = 200
	defaultPlayersPerTeam = 5
	defaultSeed           = 42
)

// Config controls fixture generation.
type Config struct {
	Teams          int
	Matches        int
	PlayersPerTeam int
	Seed           int64
	// UniquePlayers names players with uuids instead of stable slugs, to
	// exercise cold paths in downstream joins.
	UniquePlayers bool
}

// DefaultConfig returns a deterministic mid-sized league.
func DefaultConfig() Config {
	return Config{
		Teams:          defaultTeams,
		Matches:        defaultMatches,
		PlayersPerTeam: defaultPlayersPerTeam,
		Seed:           defaultSeed,
	}
}

var tournaments = []struct {
	name  string
	stage string
	round string
}{
	{"Kickoff 2025", "Group Stage", "Group A"},
	{"Masters Split", "Playoffs", "Quarterfinal"},
	{"Masters Split", "Playoffs", "Semifinal"},
	{"Champions 2025", "Playoffs", "Grand Final"},
	{"Regional League", "Regular Season", "Week 4"},
}

// Generate builds an in-memory feed with cfg.Matches synthetic matches,
// including box scores and per-map round scores. The same seed always
// yields the same feed.
func Generate(cfg Config) *feed.Memory {
	if cfg.Teams < 2 {
		cfg.Teams = defaultTeams
	}
	if cfg.Matches <= 0 {
		cfg.Matches = defaultMatches
	}
	if cfg.PlayersPerTeam <= 0 {
		cfg.PlayersPerTeam = defaultPlayersPerTeam
	}
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic fixtures

	teams := make([]string, cfg.Teams)
	rosters := make([][]string, cfg.Teams)
	for i := range teams {
		teams[i] = fmt.Sprintf("Team %c%d", 'A'+i%26, i/26)
		rosters[i] = make([]string, cfg.PlayersPerTeam)
		for j := range rosters[i] {
			if cfg.UniquePlayers {
				rosters[i][j] = uuid.New().String()
			} else {
				rosters[i][j] = fmt.Sprintf("player-%d-%d", i, j)
			}
		}
	}

	f := feed.NewMemory()
	for id := int64(1); id <= int64(cfg.Matches); id++ {
		a := rng.Intn(cfg.Teams)
		b := rng.Intn(cfg.Teams - 1)
		if b >= a {
			b++
		}
		t := tournaments[rng.Intn(len(tournaments))]

		mapsPlayed := 2 + rng.Intn(2)
		winsA, winsB := 0, 0
		for mi := 0; mi < mapsPlayed; mi++ {
			winner := rng.Intn(2)
			loserRounds := rng.Intn(12)
			if winner == 0 {
				winsA++
				f.AddMapScore(id, model.MapScore{RoundsA: 13, RoundsB: loserRounds})
			} else {
				winsB++
				f.AddMapScore(id, model.MapScore{RoundsA: loserRounds, RoundsB: 13})
			}
			if winsA == 2 || winsB == 2 {
				break
			}
		}
		sa, sb := winsA, winsB
		f.AddMatch(model.Match{
			ID:         id,
			Tournament: t.name,
			Stage:      t.stage,
			MatchType:  t.round,
			TeamA:      teams[a],
			TeamB:      teams[b],
			ScoreA:     &sa,
			ScoreB:     &sb,
		})

		for _, side := range []int{a, b} {
			for _, player := range rosters[side] {
				f.AddBoxScore(model.BoxScoreRow{
					MatchID: id,
					Player:  player,
					Team:    teams[side],
					Rating:  0.6 + rng.Float64()*0.9,
					ACS:     130 + rng.Float64()*140,
				})
			}
		}
	}
	return f
}
