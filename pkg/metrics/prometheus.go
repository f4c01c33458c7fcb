// Package metrics provides Prometheus metrics for the rating engine.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages the Prometheus metrics for a replay run.
type Manager struct {
	namespace string
	subsystem string
	registry  *prometheus.Registry

	matchesReplayed prometheus.Counter
	matchesSkipped  prometheus.Counter
	playerUpdates   prometheus.Counter
	replayDuration  prometheus.Histogram
	teamCount       prometheus.Gauge
	playerCount     prometheus.Gauge
}

// Global metrics manager instance on a custom registry, so the default
// Go collectors do not pollute the scrape.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager()
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace overrides the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// NewManager creates a metrics manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "vlrank",
		subsystem: "replay",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)
	m.matchesReplayed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_replayed_total",
		Help:      "Matches successfully applied to the rating state",
	})
	m.matchesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_skipped_total",
		Help:      "Matches skipped due to missing identities or per-match errors",
	})
	m.playerUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "player_updates_total",
		Help:      "Individual player rating updates applied",
	})
	m.replayDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duration_seconds",
		Help:      "Wall-clock duration of full replays",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	})
	m.teamCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "teams",
		Help:      "Teams in the committed snapshot",
	})
	m.playerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players",
		Help:      "Players in the committed snapshot",
	})
	return m
}

// Handler returns an http.Handler serving this manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package-level recording helpers on the global manager.

func RecordMatchReplayed() { globalManager.matchesReplayed.Inc() }
func RecordMatchSkipped()  { globalManager.matchesSkipped.Inc() }
func RecordPlayerUpdate()  { globalManager.playerUpdates.Inc() }

// ObserveReplayDuration records a completed replay's duration.
func ObserveReplayDuration(d time.Duration) {
	globalManager.replayDuration.Observe(d.Seconds())
}

// UpdateSubjectCounts sets the snapshot size gauges.
func UpdateSubjectCounts(teams, players int) {
	globalManager.teamCount.Set(float64(teams))
	globalManager.playerCount.Set(float64(players))
}

// Handler returns the global manager's scrape handler.
func Handler() http.Handler {
	return globalManager.Handler()
}
