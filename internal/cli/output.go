package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case GameState:
		o.printGameState(v)
	case ConfirmResult:
		o.printConfirmResult(v)
	case CellsResult:
		o.printCellsResult(v)
	case WordPreviewResult:
		o.printWordPreviewResult(v)
	case TangledResult:
		o.printTangledResult(v)
	case SummaryResult:
		o.printSummaryResult(v)
	case AIMoveResult:
		o.printAIMoveResult(v)
	case AIDiscardsResult:
		o.printAIDiscardsResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Cell response type
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (c Cell) String() string {
	return fmt.Sprintf("%d,%d", c.Col, c.Row)
}

// Tile response type
type Tile struct {
	Letter   string `json:"letter"`
	Owner    int    `json:"owner"`
	Position Cell   `json:"position"`
}

// Glyphling response type
type Glyphling struct {
	Owner    int  `json:"owner"`
	Index    int  `json:"index"`
	Position Cell `json:"position"`
}

// Cursor response type
type Cursor struct {
	Phase       string `json:"phase"`
	Glyphling   *int   `json:"glyphling,omitempty"`
	Destination *Cell  `json:"destination,omitempty"`
	CastCell    *Cell  `json:"cast_cell,omitempty"`
	Letter      string `json:"letter,omitempty"`
	ValidMoves  []Cell `json:"valid_moves,omitempty"`
	ValidCasts  []Cell `json:"valid_casts,omitempty"`
}

// GameState response type
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

// WordResult response type
type WordResult struct {
	Letters   string `json:"letters"`
	Positions []Cell `json:"positions"`
	BaseScore int    `json:"base_score"`
}

// ConfirmResult response type
type ConfirmResult struct {
	Game             GameState    `json:"game"`
	Words            []WordResult `json:"words"`
	PointsScored     int          `json:"points_scored"`
	EnteredCycleMode bool         `json:"entered_cycle_mode"`
	GameOver         bool         `json:"game_over"`
}

// CellsResult response type
type CellsResult struct {
	Cells []Cell `json:"cells"`
}

// WordPreviewResult response type
type WordPreviewResult struct {
	Words  []WordResult `json:"words"`
	Points int          `json:"points"`
}

// TangledResult response type
type TangledResult struct {
	Tangled [][]int `json:"tangled"`
}

// SummaryResult response type
type SummaryResult struct {
	ID           string `json:"id"`
	FinalScores  []int  `json:"final_scores"`
	TanglePoints []int  `json:"tangle_points"`
	Winner       *int   `json:"winner"`
	TurnsPlayed  int    `json:"turns_played"`
}

// AIMoveResult response type
type AIMoveResult struct {
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

// AIDiscardsResult response type
type AIDiscardsResult struct {
	Game      GameState `json:"game"`
	Discarded string    `json:"discarded"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Board: %s\n", g.BoardSize)
	fmt.Printf("Turn: %d (player %d)\n", g.TurnNumber, g.CurrentPlayer)
	fmt.Printf("Phase: %s\n", g.Cursor.Phase)
	fmt.Printf("Bag: %d letters\n", g.BagCount)

	fmt.Println("\nBoard:")
	o.printBoard(g)

	fmt.Println("\nScores:")
	for seat, score := range g.Scores {
		fmt.Printf("  player %d: %d points\n", seat, score)
	}

	fmt.Println("\nHands:")
	for seat, hand := range g.Hands {
		fmt.Printf("  player %d: %s\n", seat, strings.Join(strings.Split(hand, ""), " "))
	}

	if g.Cursor.Destination != nil {
		fmt.Printf("\nPending move: glyphling %d to %s\n", deref(g.Cursor.Glyphling), *g.Cursor.Destination)
	}
	if g.Cursor.CastCell != nil {
		fmt.Printf("Pending cast: %s at %s\n", g.Cursor.Letter, *g.Cursor.CastCell)
	}
	if len(g.Cursor.ValidMoves) > 0 {
		fmt.Printf("Valid moves: %s\n", joinCells(g.Cursor.ValidMoves))
	}
	if len(g.Cursor.ValidCasts) > 0 {
		fmt.Printf("Valid casts: %s\n", joinCells(g.Cursor.ValidCasts))
	}

	if g.GameOver {
		fmt.Println("\nGame over")
	}
}

// printBoard renders the hex board as text. Flat-top hexes in odd-q
// offset layout: odd columns sit half a row lower, so each board row
// spans two text lines and odd columns are drawn on the offset line.
func (o *Output) printBoard(g GameState) {
	maxCol, maxRow := 0, 0
	content := map[Cell]string{}

	track := func(c Cell) {
		if c.Col > maxCol {
			maxCol = c.Col
		}
		if c.Row > maxRow {
			maxRow = c.Row
		}
	}

	for _, t := range g.Tiles {
		track(t.Position)
		content[t.Position] = " " + t.Letter + " "
	}
	for _, gl := range g.Glyphlings {
		track(gl.Position)
		mark := fmt.Sprintf("g%d%d", gl.Owner, gl.Index)
		if tile, ok := content[gl.Position]; ok {
			// Tile and glyphling share the cell
			mark = strings.TrimSpace(tile) + fmt.Sprintf("%d", gl.Owner)
		}
		content[gl.Position] = mark
	}

	// Column headers
	fmt.Print("     ")
	for col := 0; col <= maxCol; col++ {
		fmt.Printf("%-4d", col)
	}
	fmt.Println()

	// Two text lines per board row; odd columns render on the lower one
	for line := 0; line <= 2*maxRow+1; line++ {
		if line%2 == 0 {
			fmt.Printf(" %2d  ", line/2)
		} else {
			fmt.Print("     ")
		}
		for col := 0; col <= maxCol; col++ {
			offset := col % 2
			if line%2 != offset {
				fmt.Print("    ")
				continue
			}
			c := Cell{Col: col, Row: line / 2}
			if text, ok := content[c]; ok {
				fmt.Printf("%-4s", text)
			} else {
				fmt.Print(" .  ")
			}
		}
		fmt.Println()
	}
}

func (o *Output) printConfirmResult(r ConfirmResult) {
	if len(r.Words) > 0 {
		fmt.Println("Words formed:")
		for _, w := range r.Words {
			fmt.Printf("  %s (%d pts)\n", w.Letters, w.BaseScore)
		}
		fmt.Printf("Points scored: %d\n", r.PointsScored)
	}
	if r.EnteredCycleMode {
		fmt.Println("No words formed: cycle mode. Discard with 'glyph game discard'.")
	}
	if r.GameOver {
		fmt.Println("Game over!")
	}
	fmt.Println()
	o.printGameState(r.Game)
}

func (o *Output) printCellsResult(r CellsResult) {
	if len(r.Cells) == 0 {
		fmt.Println("No legal cells")
		return
	}
	fmt.Println(joinCells(r.Cells))
}

func (o *Output) printWordPreviewResult(r WordPreviewResult) {
	if len(r.Words) == 0 {
		fmt.Println("No words would be formed")
		return
	}
	for _, w := range r.Words {
		fmt.Printf("%s (%d pts)\n", w.Letters, w.BaseScore)
	}
	fmt.Printf("Points for current player: %d\n", r.Points)
}

func (o *Output) printTangledResult(r TangledResult) {
	for seat, indices := range r.Tangled {
		if len(indices) == 0 {
			fmt.Printf("player %d: none\n", seat)
			continue
		}
		parts := make([]string, len(indices))
		for i, idx := range indices {
			parts[i] = fmt.Sprintf("%d", idx)
		}
		fmt.Printf("player %d: glyphlings %s\n", seat, strings.Join(parts, ", "))
	}
}

func (o *Output) printSummaryResult(r SummaryResult) {
	fmt.Printf("Game: %s\n", r.ID)
	fmt.Printf("Turns played: %d\n", r.TurnsPlayed)
	for seat, score := range r.FinalScores {
		fmt.Printf("  player %d: %d points (%d from tangles)\n", seat, score, r.TanglePoints[seat])
	}
	if r.Winner != nil {
		fmt.Printf("Winner: player %d\n", *r.Winner)
	} else {
		fmt.Println("Result: tie")
	}
}

func (o *Output) printAIMoveResult(r AIMoveResult) {
	if r.Wordless && r.Letter == "" {
		fmt.Println("Engine skipped the turn (all glyphlings tangled)")
	} else {
		fmt.Printf("Engine played: glyphling %d to %s, cast %s at %s\n",
			r.Glyphling, r.Destination, r.Letter, r.CastCell)
		for _, w := range r.Words {
			fmt.Printf("  %s (%d pts)\n", w.Letters, w.BaseScore)
		}
		if r.PointsScored > 0 {
			fmt.Printf("Points scored: %d\n", r.PointsScored)
		}
		if r.Wordless {
			fmt.Println("No words formed; cycle mode was resolved automatically")
		}
	}
	if r.GameOver {
		fmt.Println("Game over!")
	}
	fmt.Println()
	o.printGameState(r.Game)
}

func (o *Output) printAIDiscardsResult(r AIDiscardsResult) {
	if r.Discarded == "" {
		fmt.Println("Engine kept the whole hand")
	} else {
		fmt.Printf("Engine discarded: %s\n", r.Discarded)
	}
	fmt.Println()
	o.printGameState(r.Game)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func joinCells(cells []Cell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func deref(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}
