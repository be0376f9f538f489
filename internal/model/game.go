package model

import "time"

// GameID uniquely identifies a game
type GameID string

// TurnPhase represents the current step of the turn state machine
type TurnPhase string

const (
	PhaseIdle              TurnPhase = "idle"               // Waiting for a glyphling to be selected
	PhaseGlyphlingSelected TurnPhase = "glyphling_selected" // Glyphling chosen, awaiting destination
	PhaseMovePending       TurnPhase = "move_pending"       // Destination chosen, awaiting cast cell and letter
	PhaseReadyToConfirm    TurnPhase = "ready_to_confirm"   // Cast cell and letter both chosen
	PhaseCycleMode         TurnPhase = "cycle_mode"         // Confirmed cast formed no words; discard/redraw
	PhaseGameOver          TurnPhase = "game_over"          // Terminal
)

// Fixed rule constants
const (
	HandSize            = 8
	GlyphlingsPerPlayer = 3
	TangleBonus         = 5
	DefaultPlayerCount  = 2
)

// RuleOptions is the rule configuration fixed at game creation
type RuleOptions struct {
	// TwoLetterWords lowers the minimum word length from 3 to 2
	TwoLetterWords bool
	// EndOnEmptyBag additionally ends the game once the bag and every
	// hand are empty. The all-glyphlings-tangled trigger always applies.
	EndOnEmptyBag bool
}

// MinWordLength returns the minimum qualifying word length
func (r RuleOptions) MinWordLength() int {
	if r.TwoLetterWords {
		return 2
	}
	return 3
}

// Tile is a letter committed to the board. Tiles are created by a
// confirmed cast and never move or leave the board afterward, even
// when the cast formed no word.
type Tile struct {
	Letter   rune
	Owner    int
	Position HexCell
}

// Glyphling is a player-owned piece that slides across the board.
// Position is the only mutable field.
type Glyphling struct {
	Owner    int
	Index    int
	Position HexCell
}

// TurnCursor holds the current player's pending selections. It is
// ephemeral: the pending move is applied to the game only at confirm,
// and the cursor is discarded on confirm or reset.
type TurnCursor struct {
	Phase          TurnPhase
	GlyphlingIndex int // index into Glyphlings, -1 when none selected
	Destination    *HexCell
	CastCell       *HexCell
	Letter         rune // 0 when not chosen
	ValidMoves     []HexCell
	ValidCasts     []HexCell
}

// NewTurnCursor returns an idle cursor
func NewTurnCursor() TurnCursor {
	return TurnCursor{Phase: PhaseIdle, GlyphlingIndex: -1}
}

// Game aggregates the complete state of one game. It is exclusively
// owned and mutated by the engine services; one instance must not be
// used from more than one goroutine at a time.
type Game struct {
	ID        GameID
	BoardSize BoardSize
	Rules     RuleOptions

	PlayerCount int
	Tiles       []Tile
	Glyphlings  []Glyphling
	Hands       [][]rune
	Bag         []rune
	Scores      []int

	CurrentPlayer int
	TurnNumber    int
	GameOver      bool

	Cursor TurnCursor

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TileAt returns the tile on the cell, or nil
func (g *Game) TileAt(c HexCell) *Tile {
	for i := range g.Tiles {
		if g.Tiles[i].Position == c {
			return &g.Tiles[i]
		}
	}
	return nil
}

// GlyphlingAt returns the glyphling standing on the cell, or nil. The
// cursor's pending destination is taken into account, so a glyphling
// mid-move occupies its destination rather than its origin.
func (g *Game) GlyphlingAt(c HexCell) *Glyphling {
	for i := range g.Glyphlings {
		if g.GlyphlingPosition(i) == c {
			return &g.Glyphlings[i]
		}
	}
	return nil
}

// GlyphlingPosition returns the effective position of a glyphling,
// honoring the cursor's pending destination.
func (g *Game) GlyphlingPosition(index int) HexCell {
	if g.Cursor.Destination != nil && g.Cursor.GlyphlingIndex == index {
		return *g.Cursor.Destination
	}
	return g.Glyphlings[index].Position
}

// GlyphlingsFor returns the indices of a player's glyphlings in stable
// order.
func (g *Game) GlyphlingsFor(player int) []int {
	var out []int
	for i := range g.Glyphlings {
		if g.Glyphlings[i].Owner == player {
			out = append(out, i)
		}
	}
	return out
}

// FindGlyphling returns the index of a player's glyphling by per-player
// index, or -1.
func (g *Game) FindGlyphling(player, index int) int {
	for i := range g.Glyphlings {
		if g.Glyphlings[i].Owner == player && g.Glyphlings[i].Index == index {
			return i
		}
	}
	return -1
}

// Hand returns the player's hand, or nil for an invalid seat
func (g *Game) Hand(player int) []rune {
	if player < 0 || player >= len(g.Hands) {
		return nil
	}
	return g.Hands[player]
}

// HandContains reports whether the player's hand holds the letter
func (g *Game) HandContains(player int, letter rune) bool {
	for _, l := range g.Hand(player) {
		if l == letter {
			return true
		}
	}
	return false
}

// RemoveFromHand removes one occurrence of the letter from the hand.
// Returns false if the letter is not held.
func (g *Game) RemoveFromHand(player int, letter rune) bool {
	hand := g.Hand(player)
	for i, l := range hand {
		if l == letter {
			g.Hands[player] = append(hand[:i], hand[i+1:]...)
			return true
		}
	}
	return false
}

// NextPlayer returns the seat after the current one, round-robin
func (g *Game) NextPlayer() int {
	return (g.CurrentPlayer + 1) % g.PlayerCount
}

// AllHandsEmpty reports whether no player holds any letter
func (g *Game) AllHandsEmpty() bool {
	for _, hand := range g.Hands {
		if len(hand) > 0 {
			return false
		}
	}
	return true
}

// GameSummary is a lightweight record of a completed game
type GameSummary struct {
	ID           GameID
	FinalScores  []int
	TanglePoints []int
	Winner       int // seat index, -1 on tie
	TurnsPlayed  int
	CompletedAt  time.Time
}
