package engine

import (
	"sort"

	"vlrank/internal/domain/model"
	"vlrank/internal/domain/rating"
)

// TeamState is one team's in-memory rating track, keyed by canonical key.
type TeamState struct {
	Name   string // display name as first seen
	Rating float64
	Games  int
}

// PlayerState is one player's in-memory rating track. Seeded marks
// cold-start entries that never went through a replayed match.
type PlayerState struct {
	Rating float64
	Games  int
	Teams  map[string]int // affiliation counts by team display name
	Seeded bool
}

// State is the explicit replay state threaded through each match-processing
// step. Constructing a fresh State is the "reset before replay" invariant.
type State struct {
	Teams   map[string]*TeamState // canonical key -> state
	Players map[string]*PlayerState
}

// NewState creates an empty replay state with all defaults.
func NewState() *State {
	return &State{
		Teams:   make(map[string]*TeamState),
		Players: make(map[string]*PlayerState),
	}
}

// Team returns the state for a canonical key, creating it lazily with the
// default rating. The display name is recorded on first reference.
func (s *State) Team(key, name string) *TeamState {
	t, ok := s.Teams[key]
	if !ok {
		t = &TeamState{Name: name, Rating: rating.DefaultRating}
		s.Teams[key] = t
	}
	return t
}

// Player returns the state for a player name, creating it lazily.
func (s *State) Player(name string) *PlayerState {
	p, ok := s.Players[name]
	if !ok {
		p = &PlayerState{Rating: rating.DefaultRating, Teams: make(map[string]int)}
		s.Players[name] = p
	}
	return p
}

// Ratings returns the current ratings of the named players, substituting
// the default for players not seen yet.
func (s *State) Ratings(players []string) []float64 {
	out := make([]float64, len(players))
	for i, name := range players {
		if p, ok := s.Players[name]; ok {
			out[i] = p.Rating
		} else {
			out[i] = rating.DefaultRating
		}
	}
	return out
}

// teamSnapshots projects the team state in deterministic key order.
func (s *State) teamSnapshots() []model.TeamSnapshot {
	keys := make([]string, 0, len(s.Teams))
	for k := range s.Teams {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]model.TeamSnapshot, 0, len(keys))
	for _, k := range keys {
		t := s.Teams[k]
		out = append(out, model.TeamSnapshot{Team: t.Name, Rating: t.Rating, Games: t.Games})
	}
	return out
}

// playerSnapshots projects the player state in deterministic name order.
func (s *State) playerSnapshots() []model.PlayerSnapshot {
	names := make([]string, 0, len(s.Players))
	for n := range s.Players {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]model.PlayerSnapshot, 0, len(names))
	for _, n := range names {
		p := s.Players[n]
		out = append(out, model.PlayerSnapshot{
			Player: n,
			Rating: p.Rating,
			Games:  p.Games,
			Team:   modalTeam(p.Teams),
			Seeded: p.Seeded,
		})
	}
	return out
}

// modalTeam picks the most frequent affiliation, breaking ties by name so
// replays stay deterministic.
func modalTeam(counts map[string]int) string {
	var best string
	bestCount := -1
	for name, c := range counts {
		if c > bestCount || (c == bestCount && name < best) {
			best = name
			bestCount = c
		}
	}
	return best
}
