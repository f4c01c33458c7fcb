// Package canonical collapses raw team-name strings to comparison keys so
// roster joins tolerate spelling and encoding variants.
package canonical

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithAliases registers alias -> canonical display name mappings.
// Alias keys are matched against the case-folded input.
func WithAliases(aliases map[string]string) Option {
	return func(n *Normalizer) {
		for alias, name := range aliases {
			if alias == "" || name == "" {
				continue
			}
			n.aliases[strings.ToLower(alias)] = name
		}
	}
}

// Normalizer produces canonical keys for team names.
type Normalizer struct {
	aliases map[string]string
	strip   transform.Transformer
}

// New creates a Normalizer with configuration options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		aliases: make(map[string]string),
	}
	for _, opt := range opts {
		opt(n)
	}
	// NFD decomposition followed by removal of combining marks strips
	// diacritics; NFC recomposes what is left.
	n.strip = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	return n
}

// Key returns the canonical comparison key for a raw team name:
// case-folded, alias-resolved, diacritics stripped, alphanumeric only.
// An empty input yields an empty key.
func (n *Normalizer) Key(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return ""
	}
	if resolved, ok := n.aliases[s]; ok {
		s = strings.ToLower(resolved)
	}
	if stripped, _, err := transform.String(n.strip, s); err == nil {
		s = stripped
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Same reports whether two display names refer to the same rating subject.
func (n *Normalizer) Same(a, b string) bool {
	return n.Key(a) != "" && n.Key(a) == n.Key(b)
}
