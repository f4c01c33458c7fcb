package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"vlrank/internal/engine"
)

// Postgres persists committed replays into four tables: two append-only
// histories and two current-value snapshots. A commit is one transaction
// that clears and rewrites all four, so the external view swaps
// atomically at commit time.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a rating store over the given DSN.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open rating database: %w", err)
	}
	return &Postgres{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Postgres) Close() error {
	return s.db.Close()
}

// Commit writes a full replacement of histories and snapshots.
func (s *Postgres) Commit(ctx context.Context, res *engine.Result) error {
	if res == nil {
		return ErrNilResult
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin commit transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"team_rating_history", "player_rating_history", "team_ratings", "player_ratings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := s.copyTeamHistory(ctx, tx, res); err != nil {
		return err
	}
	if err := s.copyPlayerHistory(ctx, tx, res); err != nil {
		return err
	}
	if err := s.copyTeamSnapshots(ctx, tx, res); err != nil {
		return err
	}
	if err := s.copyPlayerSnapshots(ctx, tx, res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replay %s: %w", res.RunID, err)
	}
	return nil
}

func (s *Postgres) copyTeamHistory(ctx context.Context, tx *sql.Tx, res *engine.Result) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("team_rating_history",
		"run_id", "match_id", "team", "opponent", "pre_rating", "post_rating",
		"expected", "actual", "margin", "k", "importance"))
	if err != nil {
		return fmt.Errorf("prepare team history copy: %w", err)
	}
	for _, h := range res.TeamHistory {
		if _, err := stmt.ExecContext(ctx, res.RunID, h.MatchID, h.Team, h.Opponent,
			h.Pre, h.Post, h.Expected, h.Actual, h.Margin, h.K, h.Importance); err != nil {
			return fmt.Errorf("copy team history row: %w", err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("flush team history copy: %w", err)
	}
	return stmt.Close()
}

func (s *Postgres) copyPlayerHistory(ctx context.Context, tx *sql.Tx, res *engine.Result) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("player_rating_history",
		"run_id", "match_id", "player", "team", "opponent", "pre_rating",
		"post_rating", "expected", "actual", "k", "importance"))
	if err != nil {
		return fmt.Errorf("prepare player history copy: %w", err)
	}
	for _, h := range res.PlayerHistory {
		if _, err := stmt.ExecContext(ctx, res.RunID, h.MatchID, h.Player, h.Team, h.Opponent,
			h.Pre, h.Post, h.Expected, h.Actual, h.K, h.Importance); err != nil {
			return fmt.Errorf("copy player history row: %w", err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("flush player history copy: %w", err)
	}
	return stmt.Close()
}

func (s *Postgres) copyTeamSnapshots(ctx context.Context, tx *sql.Tx, res *engine.Result) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("team_ratings",
		"run_id", "team", "rating", "games"))
	if err != nil {
		return fmt.Errorf("prepare team snapshot copy: %w", err)
	}
	for _, t := range res.TeamSnapshots {
		if _, err := stmt.ExecContext(ctx, res.RunID, t.Team, t.Rating, t.Games); err != nil {
			return fmt.Errorf("copy team snapshot row: %w", err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("flush team snapshot copy: %w", err)
	}
	return stmt.Close()
}

func (s *Postgres) copyPlayerSnapshots(ctx context.Context, tx *sql.Tx, res *engine.Result) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("player_ratings",
		"run_id", "player", "rating", "games", "team", "seeded"))
	if err != nil {
		return fmt.Errorf("prepare player snapshot copy: %w", err)
	}
	for _, p := range res.PlayerSnapshots {
		if _, err := stmt.ExecContext(ctx, res.RunID, p.Player, p.Rating, p.Games, p.Team, p.Seeded); err != nil {
			return fmt.Errorf("copy player snapshot row: %w", err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("flush player snapshot copy: %w", err)
	}
	return stmt.Close()
}
