// Package feed provides match-history and box-score adapters for the
// replay engine.
package feed

import (
	"context"
	"sort"

	"vlrank/internal/domain/model"
)

// Memory serves match history from in-memory slices. It backs tests and
// the fixture generator.
type Memory struct {
	matches   []model.Match
	boxScores map[int64][]model.BoxScoreRow
	mapScores map[int64][]model.MapScore
}

// NewMemory creates an empty in-memory feed.
func NewMemory() *Memory {
	return &Memory{
		boxScores: make(map[int64][]model.BoxScoreRow),
		mapScores: make(map[int64][]model.MapScore),
	}
}

// AddMatch appends a match record.
func (f *Memory) AddMatch(m model.Match) {
	f.matches = append(f.matches, m)
}

// AddBoxScore appends one box-score row to its match.
func (f *Memory) AddBoxScore(row model.BoxScoreRow) {
	f.boxScores[row.MatchID] = append(f.boxScores[row.MatchID], row)
}

// AddMapScore appends one map's round scores to a match.
func (f *Memory) AddMapScore(matchID int64, ms model.MapScore) {
	f.mapScores[matchID] = append(f.mapScores[matchID], ms)
}

// Matches returns the match history ascending by id.
func (f *Memory) Matches(_ context.Context) ([]model.Match, error) {
	out := make([]model.Match, len(f.matches))
	copy(out, f.matches)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// BoxScores returns the rows recorded for one match.
func (f *Memory) BoxScores(_ context.Context, matchID int64) ([]model.BoxScoreRow, error) {
	return f.boxScores[matchID], nil
}

// AllBoxScores returns every recorded row in match order.
func (f *Memory) AllBoxScores(_ context.Context) ([]model.BoxScoreRow, error) {
	ids := make([]int64, 0, len(f.boxScores))
	for id := range f.boxScores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []model.BoxScoreRow
	for _, id := range ids {
		out = append(out, f.boxScores[id]...)
	}
	return out, nil
}

// MapScores returns the map round scores recorded for one match.
func (f *Memory) MapScores(_ context.Context, matchID int64) ([]model.MapScore, error) {
	return f.mapScores[matchID], nil
}
