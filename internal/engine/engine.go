// Package engine drives full reset-and-replay passes over the match
// history and flushes the resulting ratings through the rating store.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"vlrank/internal/domain/canonical"
	"vlrank/internal/domain/importance"
	"vlrank/internal/domain/margin"
	"vlrank/internal/domain/model"
	"vlrank/internal/domain/rating"
	"vlrank/internal/domain/roster"
	"vlrank/pkg/logger"
	"vlrank/pkg/metrics"
)

// MatchFeed produces the finite match history ordered ascending by id.
type MatchFeed interface {
	Matches(ctx context.Context) ([]model.Match, error)
}

// BoxScoreProvider returns per-player performance rows.
type BoxScoreProvider interface {
	// BoxScores returns the rows for one match.
	BoxScores(ctx context.Context, matchID int64) ([]model.BoxScoreRow, error)
	// AllBoxScores returns every row, used to seed cold-start players.
	AllBoxScores(ctx context.Context) ([]model.BoxScoreRow, error)
}

// MapScoreProvider returns per-map round scores for one match.
type MapScoreProvider interface {
	MapScores(ctx context.Context, matchID int64) ([]model.MapScore, error)
}

// RatingStore accepts a full replacement of the history and snapshot
// tables. No partial writes: a replay either commits whole or fails.
type RatingStore interface {
	Commit(ctx context.Context, res *Result) error
}

// Result holds everything one replay produced.
type Result struct {
	RunID           string // uuid identifying this replay run
	TeamHistory     []model.TeamHistory
	PlayerHistory   []model.PlayerHistory
	TeamSnapshots   []model.TeamSnapshot
	PlayerSnapshots []model.PlayerSnapshot
	MatchesReplayed int
	MatchesSkipped  int
	Duration        time.Duration
}

// replay lifecycle states.
type replayPhase int

const (
	phaseIdle replayPhase = iota
	phaseReplaying
	phaseCommitted
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithImportanceModel replaces the default importance model.
func WithImportanceModel(m *importance.Model) Option {
	return func(e *Engine) {
		if m != nil {
			e.importance = m
		}
	}
}

// WithNormalizer replaces the default canonicalizer, e.g. to add aliases.
func WithNormalizer(n *canonical.Normalizer) Option {
	return func(e *Engine) {
		if n != nil {
			e.norm = n
			e.rosters = roster.NewResolver(n)
		}
	}
}

// WithTeamUpdater replaces the default team updater.
func WithTeamUpdater(u *rating.TeamUpdater) Option {
	return func(e *Engine) {
		if u != nil {
			e.teams = u
		}
	}
}

// WithPlayerUpdater replaces the default player updater.
func WithPlayerUpdater(u *rating.PlayerUpdater) Option {
	return func(e *Engine) {
		if u != nil {
			e.players = u
		}
	}
}

// Engine is the replay orchestrator. It is a single-threaded batch
// computation: matches must be processed in strict ascending order since
// every expected score reads the state mutated by all prior matches.
type Engine struct {
	feed      MatchFeed
	boxScores BoxScoreProvider
	mapScores MapScoreProvider
	store     RatingStore

	norm       *canonical.Normalizer
	rosters    *roster.Resolver
	importance *importance.Model
	teams      *rating.TeamUpdater
	players    *rating.PlayerUpdater

	mu    sync.Mutex
	phase replayPhase

	log logger.Logger
}

// New constructs an Engine over the given collaborators.
func New(feed MatchFeed, boxScores BoxScoreProvider, mapScores MapScoreProvider, store RatingStore, opts ...Option) *Engine {
	norm := canonical.New()
	e := &Engine{
		feed:       feed,
		boxScores:  boxScores,
		mapScores:  mapScores,
		store:      store,
		norm:       norm,
		rosters:    roster.NewResolver(norm),
		importance: importance.New(),
		teams:      rating.NewTeamUpdater(),
		players:    rating.NewPlayerUpdater(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Get()
	}
	return e
}

// Replay runs one full reset-and-replay pass and commits the result.
// Individual malformed matches are logged and skipped; a store failure is
// fatal and returns a wrapped ErrCommit.
func (e *Engine) Replay(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	if e.phase == phaseReplaying {
		e.mu.Unlock()
		return nil, ErrReplayInProgress
	}
	e.phase = phaseReplaying
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		if e.phase == phaseReplaying {
			e.phase = phaseIdle
		}
		e.mu.Unlock()
	}()

	start := time.Now()
	st := NewState()
	res := &Result{RunID: uuid.New().String()}

	matches, err := e.feed.Matches(ctx)
	if err != nil {
		return nil, fmt.Errorf("load match history: %w", err)
	}
	// The feed contract is ascending order; sorting again costs little
	// and protects the replay invariant.
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	e.log.Info(ctx, "replay started",
		logger.String("run_id", res.RunID),
		logger.Int("matches", len(matches)),
	)

	for _, m := range matches {
		if err := e.processMatch(ctx, st, res, m); err != nil {
			res.MatchesSkipped++
			metrics.RecordMatchSkipped()
			if errors.Is(err, errNoTeam) {
				continue
			}
			e.log.Warn(ctx, "match skipped",
				logger.Int64("match_id", m.ID),
				logger.Error(err),
			)
			continue
		}
		res.MatchesReplayed++
		metrics.RecordMatchReplayed()
	}

	if err := e.seedColdStartPlayers(ctx, st); err != nil {
		return nil, err
	}

	res.TeamSnapshots = st.teamSnapshots()
	res.PlayerSnapshots = st.playerSnapshots()
	res.Duration = time.Since(start)

	if err := e.store.Commit(ctx, res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommit, err)
	}

	e.mu.Lock()
	e.phase = phaseCommitted
	e.mu.Unlock()

	metrics.ObserveReplayDuration(res.Duration)
	metrics.UpdateSubjectCounts(len(res.TeamSnapshots), len(res.PlayerSnapshots))
	e.log.Info(ctx, "replay committed",
		logger.String("run_id", res.RunID),
		logger.Int("replayed", res.MatchesReplayed),
		logger.Int("skipped", res.MatchesSkipped),
		logger.Int("teams", len(res.TeamSnapshots)),
		logger.Int("players", len(res.PlayerSnapshots)),
	)
	return res, nil
}

// processMatch applies one match to the replay state. Panics are
// converted to errors so one bad record never aborts the whole replay.
func (e *Engine) processMatch(ctx context.Context, st *State, res *Result, m model.Match) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("match %d: panic: %v", m.ID, r)
		}
	}()

	keyA := e.norm.Key(m.TeamA)
	keyB := e.norm.Key(m.TeamB)
	if keyA == "" || keyB == "" {
		return errNoTeam
	}

	rows, err := e.boxScores.BoxScores(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("match %d: box scores: %w", m.ID, err)
	}
	maps, err := e.mapScores.MapScores(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("match %d: map scores: %w", m.ID, err)
	}

	rosterA := e.rosters.Resolve(rows, m.ID, m.TeamA)
	rosterB := e.rosters.Resolve(rows, m.ID, m.TeamB)

	imp := e.importance.Multiplier(m.Tournament, m.Stage, m.MatchType)
	scoreA, scoreB := seriesScores(m)
	mov, _ := margin.Normalize(maps, scoreA, scoreB)

	decisive := m.Decisive()
	aWon := decisive && scoreA > scoreB

	teamA := st.Team(keyA, m.TeamA)
	teamB := st.Team(keyB, m.TeamB)

	// Player expected scores read the pre-match state, so capture the
	// opposing-roster means before any update mutates it.
	preMeanA := meanOrDefault(st.Ratings(rosterA))
	preMeanB := meanOrDefault(st.Ratings(rosterB))

	upd := e.teams.Update(teamA.Rating, teamB.Rating, st.Ratings(rosterA), st.Ratings(rosterB), decisive, aWon, imp, mov)
	if upd.Updated {
		teamA.Rating = upd.A.Post
		teamB.Rating = upd.B.Post
		teamA.Games++
		teamB.Games++
		res.TeamHistory = append(res.TeamHistory,
			model.TeamHistory{
				MatchID: m.ID, Team: m.TeamA, Opponent: m.TeamB,
				Pre: upd.A.Pre, Post: upd.A.Post, Expected: upd.A.Expected, Actual: upd.A.Actual,
				Margin: mov, K: upd.K, Importance: imp,
			},
			model.TeamHistory{
				MatchID: m.ID, Team: m.TeamB, Opponent: m.TeamA,
				Pre: upd.B.Pre, Post: upd.B.Post, Expected: upd.B.Expected, Actual: upd.B.Actual,
				Margin: mov, K: upd.K, Importance: imp,
			},
		)
	}

	// Player updates always run, with neutral win/loss influence when the
	// series result is unknown.
	resultA, resultB := 0.5, 0.5
	if decisive {
		if aWon {
			resultA, resultB = 1.0, 0.0
		} else {
			resultA, resultB = 0.0, 1.0
		}
	}

	perf := aggregatePerf(rows, m.ID)
	matchAvgRating, matchAvgACS := matchAverages(perf)

	e.updateRoster(st, res, m, rosterA, m.TeamA, m.TeamB, rating.PlayerContext{
		OpponentMeanElo:   preMeanB,
		OpponentAvgRating: rosterAvgRating(perf, rosterB),
		MatchAvgRating:    matchAvgRating,
		MatchAvgACS:       matchAvgACS,
		TeamResult:        resultA,
		Importance:        imp,
	}, perf)
	e.updateRoster(st, res, m, rosterB, m.TeamB, m.TeamA, rating.PlayerContext{
		OpponentMeanElo:   preMeanA,
		OpponentAvgRating: rosterAvgRating(perf, rosterA),
		MatchAvgRating:    matchAvgRating,
		MatchAvgACS:       matchAvgACS,
		TeamResult:        resultB,
		Importance:        imp,
	}, perf)

	return nil
}

// updateRoster applies the player updater to one side's roster.
func (e *Engine) updateRoster(st *State, res *Result, m model.Match, players []string, team, opponent string, pctx rating.PlayerContext, perf map[string]rating.PlayerPerf) {
	for _, name := range players {
		ps := st.Player(name)
		upd := e.players.Update(ps.Rating, ps.Games, perf[name], pctx)
		ps.Rating = upd.Post
		ps.Games++
		ps.Teams[team]++
		res.PlayerHistory = append(res.PlayerHistory, model.PlayerHistory{
			MatchID: m.ID, Player: name, Team: team, Opponent: opponent,
			Pre: upd.Pre, Post: upd.Post, Expected: upd.Expected, Actual: upd.Actual,
			K: upd.K, Importance: pctx.Importance,
		})
		metrics.RecordPlayerUpdate()
	}
}

// seedColdStartPlayers gives players with box-score rows but no replayed
// trajectory a snapshot seeded from their long-run average performance
// relative to the global average.
func (e *Engine) seedColdStartPlayers(ctx context.Context, st *State) error {
	rows, err := e.boxScores.AllBoxScores(ctx)
	if err != nil {
		return fmt.Errorf("seed players: %w", err)
	}

	var globalSum float64
	var globalCount int
	type agg struct {
		sum   float64
		count int
		teams map[string]int
	}
	perPlayer := make(map[string]*agg)
	for _, row := range rows {
		if row.Player == "" {
			continue
		}
		a, ok := perPlayer[row.Player]
		if !ok {
			a = &agg{teams: make(map[string]int)}
			perPlayer[row.Player] = a
		}
		if row.Team != "" {
			a.teams[row.Team]++
		}
		if row.Rating > 0 {
			a.sum += row.Rating
			a.count++
			globalSum += row.Rating
			globalCount++
		}
	}

	globalAvg := 0.0
	if globalCount > 0 {
		globalAvg = globalSum / float64(globalCount)
	}

	for name, a := range perPlayer {
		if _, replayed := st.Players[name]; replayed {
			continue
		}
		seeded := rating.DefaultRating
		if a.count > 0 && globalAvg > 0 {
			seeded = rating.DefaultRating * (a.sum / float64(a.count)) / globalAvg
		}
		st.Players[name] = &PlayerState{Rating: seeded, Teams: a.teams, Seeded: true}
	}
	return nil
}

// seriesScores dereferences the optional scores, defaulting to zero.
func seriesScores(m model.Match) (int, int) {
	var a, b int
	if m.ScoreA != nil {
		a = *m.ScoreA
	}
	if m.ScoreB != nil {
		b = *m.ScoreB
	}
	return a, b
}

// aggregatePerf averages box-score rows per player for one match.
func aggregatePerf(rows []model.BoxScoreRow, matchID int64) map[string]rating.PlayerPerf {
	type sums struct {
		rating, acs   float64
		nRating, nACS int
	}
	acc := make(map[string]*sums)
	for _, row := range rows {
		if row.MatchID != matchID || row.Player == "" {
			continue
		}
		s, ok := acc[row.Player]
		if !ok {
			s = &sums{}
			acc[row.Player] = s
		}
		if row.Rating > 0 {
			s.rating += row.Rating
			s.nRating++
		}
		if row.ACS > 0 {
			s.acs += row.ACS
			s.nACS++
		}
	}
	out := make(map[string]rating.PlayerPerf, len(acc))
	for name, s := range acc {
		var p rating.PlayerPerf
		if s.nRating > 0 {
			p.Rating = s.rating / float64(s.nRating)
		}
		if s.nACS > 0 {
			p.ACS = s.acs / float64(s.nACS)
		}
		out[name] = p
	}
	return out
}

// matchAverages computes the whole-match average rating and ACS figures
// over players with usable data.
func matchAverages(perf map[string]rating.PlayerPerf) (avgRating, avgACS float64) {
	var rSum, aSum float64
	var rN, aN int
	for _, p := range perf {
		if p.Rating > 0 {
			rSum += p.Rating
			rN++
		}
		if p.ACS > 0 {
			aSum += p.ACS
			aN++
		}
	}
	if rN > 0 {
		avgRating = rSum / float64(rN)
	}
	if aN > 0 {
		avgACS = aSum / float64(aN)
	}
	return avgRating, avgACS
}

// rosterAvgRating averages a roster's usable per-match rating figures.
func rosterAvgRating(perf map[string]rating.PlayerPerf, players []string) float64 {
	var sum float64
	var n int
	for _, name := range players {
		if p, ok := perf[name]; ok && p.Rating > 0 {
			sum += p.Rating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// meanOrDefault averages pre-ratings, substituting the baseline for an
// empty roster.
func meanOrDefault(ratings []float64) float64 {
	if len(ratings) == 0 {
		return rating.DefaultRating
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return sum / float64(len(ratings))
}
