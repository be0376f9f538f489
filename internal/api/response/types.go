package response

import (
	"time"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/model"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Cell is a board coordinate in API responses
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// CellFromModel converts a model.HexCell
func CellFromModel(c model.HexCell) Cell {
	return Cell{Col: c.Col, Row: c.Row}
}

// CellsFromModel converts a cell slice, never returning nil
func CellsFromModel(cells []model.HexCell) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[i] = CellFromModel(c)
	}
	return out
}

// Tile is a committed board tile
type Tile struct {
	Letter   string `json:"letter"`
	Owner    int    `json:"owner"`
	Position Cell   `json:"position"`
}

// Glyphling is a player piece and its effective position
type Glyphling struct {
	Owner    int  `json:"owner"`
	Index    int  `json:"index"`
	Position Cell `json:"position"`
}

// Cursor is the current player's pending turn state
type Cursor struct {
	Phase       string `json:"phase"`
	Glyphling   *int   `json:"glyphling,omitempty"`
	Destination *Cell  `json:"destination,omitempty"`
	CastCell    *Cell  `json:"cast_cell,omitempty"`
	Letter      string `json:"letter,omitempty"`
	ValidMoves  []Cell `json:"valid_moves,omitempty"`
	ValidCasts  []Cell `json:"valid_casts,omitempty"`
}

// GameState represents the full observable game state
type GameState struct {
	ID            string      `json:"id"`
	BoardSize     string      `json:"board_size"`
	PlayerCount   int         `json:"player_count"`
	Tiles         []Tile      `json:"tiles"`
	Glyphlings    []Glyphling `json:"glyphlings"`
	Hands         []string    `json:"hands"`
	BagCount      int         `json:"bag_count"`
	Scores        []int       `json:"scores"`
	CurrentPlayer int         `json:"current_player"`
	TurnNumber    int         `json:"turn_number"`
	GameOver      bool        `json:"game_over"`
	Cursor        Cursor      `json:"cursor"`
}

// GameStateFromModel converts model.Game to response GameState
func GameStateFromModel(g *model.Game) GameState {
	tiles := make([]Tile, len(g.Tiles))
	for i, t := range g.Tiles {
		tiles[i] = Tile{
			Letter:   string(t.Letter),
			Owner:    t.Owner,
			Position: CellFromModel(t.Position),
		}
	}

	glyphlings := make([]Glyphling, len(g.Glyphlings))
	for i, gl := range g.Glyphlings {
		glyphlings[i] = Glyphling{
			Owner:    gl.Owner,
			Index:    gl.Index,
			Position: CellFromModel(g.GlyphlingPosition(i)),
		}
	}

	hands := make([]string, len(g.Hands))
	for i, h := range g.Hands {
		hands[i] = string(h)
	}

	cursor := Cursor{Phase: string(g.Cursor.Phase)}
	if g.Cursor.GlyphlingIndex >= 0 {
		idx := g.Glyphlings[g.Cursor.GlyphlingIndex].Index
		cursor.Glyphling = &idx
	}
	if g.Cursor.Destination != nil {
		c := CellFromModel(*g.Cursor.Destination)
		cursor.Destination = &c
	}
	if g.Cursor.CastCell != nil {
		c := CellFromModel(*g.Cursor.CastCell)
		cursor.CastCell = &c
	}
	if g.Cursor.Letter != 0 {
		cursor.Letter = string(g.Cursor.Letter)
	}
	if len(g.Cursor.ValidMoves) > 0 {
		cursor.ValidMoves = CellsFromModel(g.Cursor.ValidMoves)
	}
	if len(g.Cursor.ValidCasts) > 0 {
		cursor.ValidCasts = CellsFromModel(g.Cursor.ValidCasts)
	}

	return GameState{
		ID:            string(g.ID),
		BoardSize:     string(g.BoardSize),
		PlayerCount:   g.PlayerCount,
		Tiles:         tiles,
		Glyphlings:    glyphlings,
		Hands:         hands,
		BagCount:      len(g.Bag),
		Scores:        g.Scores,
		CurrentPlayer: g.CurrentPlayer,
		TurnNumber:    g.TurnNumber,
		GameOver:      g.GameOver,
		Cursor:        cursor,
	}
}

// WordResult is one word formed by a cast
type WordResult struct {
	Letters   string `json:"letters"`
	Positions []Cell `json:"positions"`
	BaseScore int    `json:"base_score"`
}

// WordResultFromModel converts model.WordResult
func WordResultFromModel(w model.WordResult) WordResult {
	return WordResult{
		Letters:   w.Letters,
		Positions: CellsFromModel(w.Positions),
		BaseScore: w.BaseScore,
	}
}

// WordResultsFromModel converts a word slice, never returning nil
func WordResultsFromModel(words []model.WordResult) []WordResult {
	out := make([]WordResult, len(words))
	for i, w := range words {
		out[i] = WordResultFromModel(w)
	}
	return out
}

// CellsResponse lists legal cells for a pending intent
type CellsResponse struct {
	Cells []Cell `json:"cells"`
}

// WordPreviewResponse is the response for a word preview query
type WordPreviewResponse struct {
	Words  []WordResult `json:"words"`
	Points int          `json:"points"`
}

// ConfirmResponse is the response after confirming a turn
type ConfirmResponse struct {
	Game             GameState    `json:"game"`
	Words            []WordResult `json:"words"`
	PointsScored     int          `json:"points_scored"`
	EnteredCycleMode bool         `json:"entered_cycle_mode"`
	GameOver         bool         `json:"game_over"`
}

// TangledResponse lists each seat's tangled glyphlings by per-player index
type TangledResponse struct {
	Tangled [][]int `json:"tangled"`
}

// GameSummary represents a completed game summary
type GameSummary struct {
	ID           string    `json:"id"`
	FinalScores  []int     `json:"final_scores"`
	TanglePoints []int     `json:"tangle_points"`
	Winner       *int      `json:"winner"`
	TurnsPlayed  int       `json:"turns_played"`
	CompletedAt  time.Time `json:"completed_at"`
}

// GameSummaryFromModel converts model.GameSummary
func GameSummaryFromModel(s *model.GameSummary) GameSummary {
	var winner *int
	if s.Winner >= 0 {
		w := s.Winner
		winner = &w
	}
	return GameSummary{
		ID:           string(s.ID),
		FinalScores:  s.FinalScores,
		TanglePoints: s.TanglePoints,
		Winner:       winner,
		TurnsPlayed:  s.TurnsPlayed,
		CompletedAt:  s.CompletedAt,
	}
}

// AIMoveResponse is the response after the engine plays a turn
type AIMoveResponse struct {
	Game         GameState    `json:"game"`
	Glyphling    int          `json:"glyphling"`
	Destination  Cell         `json:"destination"`
	CastCell     Cell         `json:"cast_cell"`
	Letter       string       `json:"letter"`
	Words        []WordResult `json:"words"`
	PointsScored int          `json:"points_scored"`
	Wordless     bool         `json:"wordless"`
	GameOver     bool         `json:"game_over"`
}

// AIDiscardsResponse is the response after the engine resolves cycle mode
type AIDiscardsResponse struct {
	Game      GameState `json:"game"`
	Discarded string    `json:"discarded"`
}
