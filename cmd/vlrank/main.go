// Command vlrank runs one full rating replay over the match history and
// commits the resulting snapshots and audit rows.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vlrank/internal/adapters/feed"
	"vlrank/internal/adapters/repository"
	"vlrank/internal/config"
	"vlrank/internal/domain/canonical"
	"vlrank/internal/domain/rating"
	"vlrank/internal/engine"
	"vlrank/internal/fixtures"
	"vlrank/pkg/logger"
	"vlrank/pkg/metrics"
)

const metricsReadHeaderTimeout = 5 * time.Second

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metrics.Handler(),
			ReadHeaderTimeout: metricsReadHeaderTimeout,
		}
		go func() {
			log.Info(ctx, "serving metrics", logger.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Warn(ctx, "metrics listener failed", logger.Error(err))
			}
		}()
		defer srv.Close()
	}

	var (
		source engine.MatchFeed
		boxes  engine.BoxScoreProvider
		maps   engine.MapScoreProvider
		store  engine.RatingStore
	)
	if cfg.DatabaseURL != "" {
		pgFeed, err := feed.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Error(ctx, "open match feed", logger.Error(err))
			os.Exit(1)
		}
		defer pgFeed.Close()
		pgStore, err := repository.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Error(ctx, "open rating store", logger.Error(err))
			os.Exit(1)
		}
		defer pgStore.Close()
		source, boxes, maps, store = pgFeed, pgFeed, pgFeed, pgStore
	} else {
		// Without a database the replay runs over generated fixtures.
		// Useful for smoke-testing the pipeline end to end.
		log.Warn(ctx, "no database_url configured; replaying generated fixtures")
		mem := fixtures.Generate(fixtures.DefaultConfig())
		source, boxes, maps = mem, mem, mem
		store = repository.NewMemory()
	}

	eng := engine.New(source, boxes, maps, store,
		engine.WithLogger(log.Named("engine")),
		engine.WithNormalizer(canonical.New(canonical.WithAliases(cfg.TeamAliases))),
		engine.WithTeamUpdater(rating.NewTeamUpdater(
			rating.WithTeamKBase(cfg.TeamKBase),
			rating.WithRosterBlend(cfg.RosterBlend),
		)),
		engine.WithPlayerUpdater(rating.NewPlayerUpdater(
			rating.WithPlayerKBase(cfg.PlayerKBase),
			rating.WithMaxPlayerDelta(cfg.MaxPlayerDelta),
		)),
	)

	res, err := eng.Replay(ctx)
	if err != nil {
		log.Error(ctx, "replay failed", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "replay finished",
		logger.String("run_id", res.RunID),
		logger.Int("replayed", res.MatchesReplayed),
		logger.Int("skipped", res.MatchesSkipped),
		logger.Int("team_history_rows", len(res.TeamHistory)),
		logger.Int("player_history_rows", len(res.PlayerHistory)),
	)
}
