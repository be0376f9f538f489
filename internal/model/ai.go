package model

// Difficulty is the AI search tier. Tiers bound search breadth and
// selection noise; the engine exposes no other cost control.
type Difficulty string

const (
	DifficultyApprentice Difficulty = "apprentice"
	DifficultyFirstClass Difficulty = "first_class"
	DifficultyArchmage   Difficulty = "archmage"
)

// ValidDifficulties returns all supported difficulty tiers
func ValidDifficulties() []Difficulty {
	return []Difficulty{DifficultyApprentice, DifficultyFirstClass, DifficultyArchmage}
}

// Personality is a named weight profile shaping the AI's utility
// function and discard behavior.
type Personality struct {
	Name string
	// Greed scales the word score of a candidate
	Greed float64
	// Mobility scales the glyphling's remaining move count after the
	// candidate is applied
	Mobility float64
	// Blocking scales the opponent mobility denied by the cast tile
	Blocking float64
	// DiscardGreed above 0.5 keeps high-value letters when discarding
	DiscardGreed float64
}

// Personality constants
const (
	PersonalityScholar  = "scholar"
	PersonalityWarden   = "warden"
	PersonalityWanderer = "wanderer"
)

// PersonalityByName returns a named personality profile, defaulting to
// the scholar.
func PersonalityByName(name string) Personality {
	switch name {
	case PersonalityWarden:
		return Personality{Name: name, Greed: 1.0, Mobility: 0.3, Blocking: 1.2, DiscardGreed: 0.4}
	case PersonalityWanderer:
		return Personality{Name: name, Greed: 1.0, Mobility: 1.1, Blocking: 0.2, DiscardGreed: 0.3}
	default:
		return Personality{Name: PersonalityScholar, Greed: 1.5, Mobility: 0.4, Blocking: 0.4, DiscardGreed: 0.8}
	}
}

// AIMove is a fully specified candidate turn for one player
type AIMove struct {
	GlyphlingIndex int // index into Game.Glyphlings
	Destination    HexCell
	CastCell       HexCell
	Letter         rune
	Words          []WordResult
	WordScore      int // points the player would earn
	Utility        float64
}
