package rating

// Provenance tags where a performance figure came from, so audits can
// distinguish genuine data from approximation.
type Provenance int

const (
	// ProvActual means the player's own recorded figure was used.
	ProvActual Provenance = iota
	// ProvOpponentAverage means the opposing team's match average stood in.
	ProvOpponentAverage
	// ProvMatchAverage means the whole-match average stood in.
	ProvMatchAverage
	// ProvDefault means no usable figure existed anywhere in the match.
	ProvDefault
)

func (p Provenance) String() string {
	switch p {
	case ProvActual:
		return "actual"
	case ProvOpponentAverage:
		return "opponent-average"
	case ProvMatchAverage:
		return "match-average"
	default:
		return "default"
	}
}
