package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if VLRANK_CONFIG is set
//  3. env (prefix VLRANK_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("VLRANK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: VLRANK_DATABASE_URL, VLRANK_TEAM_K_BASE, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("VLRANK_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "vlrank_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if cfg.TeamKBase <= 0 || cfg.PlayerKBase <= 0 {
		return nil, fmt.Errorf("%w: K bases must be positive", ErrInvalidConfig)
	}
	if cfg.MaxPlayerDelta <= 0 {
		return nil, fmt.Errorf("%w: max_player_delta must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
