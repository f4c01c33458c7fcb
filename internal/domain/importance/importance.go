// Package importance maps competition metadata to K-factor multipliers.
//
// The tier tables are ordered (predicate, weight) lists rather than nested
// conditionals so the policy can be tested and extended independently of
// the rating update algorithm. First matching rule wins; anything
// unrecognized contributes 1.0 for that factor.
package importance

import "strings"

// Neutral is the factor contributed by an unrecognized label.
const Neutral = 1.0

// Rule binds a set of case-insensitive substrings to a weight.
type Rule struct {
	Substrings []string
	Weight     float64
}

func (r Rule) matches(label string) bool {
	for _, sub := range r.Substrings {
		if strings.Contains(label, sub) {
			return true
		}
	}
	return false
}

// defaultEventRules rank tournament prestige. Sub-variant rules must come
// before the generic "masters" rule so they win the substring match.
func defaultEventRules() []Rule {
	return []Rule{
		{Substrings: []string{"champions"}, Weight: 2.0},
		{Substrings: []string{"masters shanghai", "masters madrid"}, Weight: 1.7},
		{Substrings: []string{"masters toronto", "masters reykjavik"}, Weight: 1.9},
		{Substrings: []string{"masters"}, Weight: 1.8},
		{Substrings: []string{"kickoff", "stage 1", "stage 2"}, Weight: 1.0},
	}
}

// defaultRoundRules rank the stakes of a round label.
func defaultRoundRules() []Rule {
	return []Rule{
		{Substrings: []string{"grand final"}, Weight: 1.45},
		{Substrings: []string{"upper bracket final", "lower bracket final"}, Weight: 1.35},
		{Substrings: []string{"semifinal", "semi-final", "semi final"}, Weight: 1.30},
		{Substrings: []string{"quarterfinal", "quarter-final", "quarter final"}, Weight: 1.25},
		{Substrings: []string{"playoff"}, Weight: 1.15},
		{Substrings: []string{"elimination", "decider"}, Weight: 1.10},
		{Substrings: []string{"group", "swiss", "regular"}, Weight: 1.00},
	}
}

// Option applies a configuration option to the Model.
type Option func(*Model)

// WithEventRules replaces the tournament-tier rule table.
func WithEventRules(rules []Rule) Option {
	return func(m *Model) {
		if len(rules) > 0 {
			m.eventRules = rules
		}
	}
}

// WithRoundRules replaces the round-tier rule table.
func WithRoundRules(rules []Rule) Option {
	return func(m *Model) {
		if len(rules) > 0 {
			m.roundRules = rules
		}
	}
}

// Model computes importance multipliers from competition metadata.
type Model struct {
	eventRules []Rule
	roundRules []Rule
}

// New creates a Model with the default rule tables.
func New(opts ...Option) *Model {
	m := &Model{
		eventRules: defaultEventRules(),
		roundRules: defaultRoundRules(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Multiplier returns the product of the tournament-tier and round-tier
// factors. There is no clamping; unmatched labels default to 1.0.
func (m *Model) Multiplier(tournament, stage, matchType string) float64 {
	return m.eventFactor(tournament) * m.roundFactor(stage, matchType)
}

func (m *Model) eventFactor(tournament string) float64 {
	label := strings.ToLower(tournament)
	for _, r := range m.eventRules {
		if r.matches(label) {
			return r.Weight
		}
	}
	return Neutral
}

func (m *Model) roundFactor(stage, matchType string) float64 {
	label := strings.ToLower(matchType)
	for _, r := range m.roundRules {
		if r.matches(label) {
			return r.Weight
		}
	}
	// Uninformative round label: the stage label may still flag playoffs.
	if strings.Contains(strings.ToLower(stage), "playoff") {
		return 1.15
	}
	return Neutral
}
