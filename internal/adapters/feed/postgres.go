package feed

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the postgres driver.
	_ "github.com/lib/pq"

	"vlrank/internal/domain/model"
)

// Postgres reads match history, box scores, and map scores from the
// scraper's database. The schema belongs to the scraper; this adapter
// only reads it.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a read-only feed over the given DSN.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open feed database: %w", err)
	}
	return &Postgres{db: db}, nil
}

// Close releases the underlying connection pool.
func (f *Postgres) Close() error {
	return f.db.Close()
}

// Matches returns the full match history ascending by id.
func (f *Postgres) Matches(ctx context.Context) ([]model.Match, error) {
	rows, err := f.db.QueryContext(ctx, `
		SELECT id, tournament, stage, match_type, team_a, team_b, team_a_score, team_b_score
		FROM matches
		ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var out []model.Match
	for rows.Next() {
		var m model.Match
		var scoreA, scoreB sql.NullInt64
		if err := rows.Scan(&m.ID, &m.Tournament, &m.Stage, &m.MatchType, &m.TeamA, &m.TeamB, &scoreA, &scoreB); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		if scoreA.Valid {
			v := int(scoreA.Int64)
			m.ScoreA = &v
		}
		if scoreB.Valid {
			v := int(scoreB.Int64)
			m.ScoreB = &v
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// BoxScores returns the per-player rows for one match.
func (f *Postgres) BoxScores(ctx context.Context, matchID int64) ([]model.BoxScoreRow, error) {
	return f.queryBoxScores(ctx, `
		SELECT match_id, player, team, COALESCE(rating, 0), COALESCE(acs, 0)
		FROM box_scores
		WHERE match_id = $1
		ORDER BY id ASC`, matchID)
}

// AllBoxScores returns every box-score row, used for cold-start seeding.
func (f *Postgres) AllBoxScores(ctx context.Context) ([]model.BoxScoreRow, error) {
	return f.queryBoxScores(ctx, `
		SELECT match_id, player, team, COALESCE(rating, 0), COALESCE(acs, 0)
		FROM box_scores
		ORDER BY match_id ASC, id ASC`)
}

func (f *Postgres) queryBoxScores(ctx context.Context, query string, args ...any) ([]model.BoxScoreRow, error) {
	rows, err := f.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query box scores: %w", err)
	}
	defer rows.Close()

	var out []model.BoxScoreRow
	for rows.Next() {
		var r model.BoxScoreRow
		if err := rows.Scan(&r.MatchID, &r.Player, &r.Team, &r.Rating, &r.ACS); err != nil {
			return nil, fmt.Errorf("scan box score: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MapScores returns the per-map round scores for one match.
func (f *Postgres) MapScores(ctx context.Context, matchID int64) ([]model.MapScore, error) {
	rows, err := f.db.QueryContext(ctx, `
		SELECT COALESCE(team_a_rounds, 0), COALESCE(team_b_rounds, 0)
		FROM map_scores
		WHERE match_id = $1
		ORDER BY id ASC`, matchID)
	if err != nil {
		return nil, fmt.Errorf("query map scores: %w", err)
	}
	defer rows.Close()

	var out []model.MapScore
	for rows.Next() {
		var ms model.MapScore
		if err := rows.Scan(&ms.RoundsA, &ms.RoundsB); err != nil {
			return nil, fmt.Errorf("scan map score: %w", err)
		}
		out = append(out, ms)
	}
	return out, rows.Err()
}
