// Package config defines process configuration and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, optional YAML file, and env vars via koanf.
// - External errors are wrapped via this package's sentinel errors.
package config

// Config contains process configuration for a replay run.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DatabaseURL points at the match-history database. Empty selects the
	// in-memory feed/store pair, which is only useful with fixtures.
	DatabaseURL string `koanf:"database_url"`

	// MetricsAddr, when set, serves Prometheus metrics during the replay,
	// e.g. ":9091". Empty disables the listener.
	MetricsAddr string `koanf:"metrics_addr"`

	// TeamKBase is the base K-factor for team rating updates.
	TeamKBase float64 `koanf:"team_k_base"`

	// PlayerKBase is the base K-factor for player rating updates.
	PlayerKBase float64 `koanf:"player_k_base"`

	// RosterBlend is how strongly roster strength nudges the effective
	// team rating used for expected scores.
	RosterBlend float64 `koanf:"roster_blend"`

	// MaxPlayerDelta bounds a player's single-match rating swing.
	MaxPlayerDelta float64 `koanf:"max_player_delta"`

	// TeamAliases maps alternate spellings to canonical display names.
	TeamAliases map[string]string `koanf:"team_aliases"`
}

// New creates a Config with the engine's default constants.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		TeamKBase:      25.0,
		PlayerKBase:    18.0,
		RosterBlend:    0.15,
		MaxPlayerDelta: 20.0,
		TeamAliases:    map[string]string{},
	}
}
