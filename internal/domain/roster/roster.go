// Package roster joins per-match box-score rows to teams.
package roster

import (
	"vlrank/internal/domain/canonical"
	"vlrank/internal/domain/model"
)

// Resolver selects match rosters by canonical team key, because box-score
// rows and match-header team names are not guaranteed to use identical
// strings.
type Resolver struct {
	norm *canonical.Normalizer
}

// NewResolver creates a Resolver on top of the given Normalizer.
func NewResolver(norm *canonical.Normalizer) *Resolver {
	return &Resolver{norm: norm}
}

// Resolve returns the distinct player names whose box-score team field
// canonicalizes to the same key as teamName, in first-seen order. An
// empty roster is a valid result; callers substitute baselines.
func (r *Resolver) Resolve(rows []model.BoxScoreRow, matchID int64, teamName string) []string {
	key := r.norm.Key(teamName)
	if key == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var players []string
	for _, row := range rows {
		if row.MatchID != matchID || row.Player == "" {
			continue
		}
		if r.norm.Key(row.Team) != key {
			continue
		}
		if _, ok := seen[row.Player]; ok {
			continue
		}
		seen[row.Player] = struct{}{}
		players = append(players, row.Player)
	}
	return players
}
