package rules

import (
	"context"
	"log/slog"
	"unicode"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/dependencies/clock"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/dependencies/random"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/model"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/board"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/tangle"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/words"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/storage"
)

// gameIDAlphabet is the character set for generated game IDs
const gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Controller owns the turn state machine and all game state mutation.
// Collaborators read state through queries and drive it through the
// turn intents; every intent is total: an illegal intent is rejected
// with a sentinel error and the state is left untouched.
type Controller struct {
	storage       storage.Storage
	boardService  *board.Service
	wordsService  *words.Service
	tangleService *tangle.Service
	clock         clock.Clock
	random        random.Random
	logger        *slog.Logger
}

// NewController creates a new rules Controller
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	wordsService *words.Service,
	tangleService *tangle.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:       storage,
		boardService:  boardService,
		wordsService:  wordsService,
		tangleService: tangleService,
		clock:         clock,
		random:        random,
		logger:        logger.With(slog.String("component", "rules")),
	}
}

// ConfirmResult reports what a confirmed cast produced
type ConfirmResult struct {
	Words            []model.WordResult
	PointsScored     int
	EnteredCycleMode bool
	GameOver         bool
}

// CreateGame initializes a new game on the given board tier
func (c *Controller) CreateGame(ctx context.Context, size model.BoardSize, rules model.RuleOptions, playerCount int) (*model.Game, error) {
	b, err := c.boardService.Board(size)
	if err != nil {
		return nil, err
	}
	if playerCount < 2 {
		playerCount = model.DefaultPlayerCount
	}

	now := c.clock.Now()
	g := &model.Game{
		ID:            model.GameID(c.random.String(12, gameIDAlphabet)),
		BoardSize:     size,
		Rules:         rules,
		PlayerCount:   playerCount,
		Bag:           model.NewBag(),
		Hands:         make([][]rune, playerCount),
		Scores:        make([]int, playerCount),
		CurrentPlayer: 0,
		TurnNumber:    1,
		Cursor:        model.NewTurnCursor(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	starts := c.boardService.StartingPositions(b, playerCount)
	for seat := 0; seat < playerCount; seat++ {
		for i, cell := range starts[seat] {
			g.Glyphlings = append(g.Glyphlings, model.Glyphling{
				Owner:    seat,
				Index:    i,
				Position: cell,
			})
		}
		for i := 0; i < model.HandSize; i++ {
			c.drawLetter(g, seat)
		}
	}

	if err := c.storage.SaveGame(ctx, g); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(g.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(g.ID)),
		slog.String("board_size", string(size)),
		slog.Int("player_count", playerCount),
		slog.Bool("two_letter_words", rules.TwoLetterWords),
	)

	return g, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, id)
}

// GetValidMoves returns the legal slide destinations for a player's
// glyphling. Empty for a tangled glyphling.
func (c *Controller) GetValidMoves(ctx context.Context, id model.GameID, seat, glyphling int) ([]model.HexCell, error) {
	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	idx := g.FindGlyphling(seat, glyphling)
	if idx < 0 {
		return nil, model.ErrInvalidGlyphling
	}
	return c.boardService.ValidMoves(g, idx), nil
}

// GetValidCastCells returns the legal cast targets from the pending
// destination. Only meaningful once a destination is selected.
func (c *Controller) GetValidCastCells(ctx context.Context, id model.GameID) ([]model.HexCell, error) {
	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Cursor.Destination == nil {
		return nil, model.ErrWrongPhase
	}
	return g.Cursor.ValidCasts, nil
}

// WordPreview returns the words (and the current player's points) a
// hypothetical cast would form, without mutating anything.
func (c *Controller) WordPreview(ctx context.Context, id model.GameID, cell model.HexCell, letter rune) ([]model.WordResult, int, error) {
	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	letter = unicode.ToUpper(letter)
	if !model.IsValidLetter(letter) {
		return nil, 0, model.ErrInvalidLetter
	}
	b := c.boardService.BoardFor(g)
	if b == nil {
		return nil, 0, model.ErrInvalidBoardSize
	}
	if !b.Contains(cell) {
		return nil, 0, model.ErrInvalidCell
	}
	placement := model.Tile{Letter: letter, Owner: g.CurrentPlayer, Position: cell}
	found, points := c.wordsService.ScorePlacement(g, placement)
	return found, points, nil
}

// SelectGlyphling starts (or restarts) the current player's turn with
// one of their glyphlings. Legal from idle, glyphling-selected and
// move-pending; any pending destination is discarded.
func (c *Controller) SelectGlyphling(ctx context.Context, id model.GameID, glyphling int) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	switch g.Cursor.Phase {
	case model.PhaseIdle, model.PhaseGlyphlingSelected, model.PhaseMovePending:
	default:
		return nil, c.phaseError(g)
	}
	idx := g.FindGlyphling(g.CurrentPlayer, glyphling)
	if idx < 0 {
		return nil, model.ErrInvalidGlyphling
	}

	g.Cursor = model.NewTurnCursor()
	g.Cursor.Phase = model.PhaseGlyphlingSelected
	g.Cursor.GlyphlingIndex = idx
	g.Cursor.ValidMoves = c.boardService.ValidMoves(g, idx)
	g.UpdatedAt = c.clock.Now()

	return g, c.storage.SaveGame(ctx, g)
}

// SelectDestination sets the pending slide destination. The glyphling
// is not moved until confirm; the cursor carries the pending cell.
func (c *Controller) SelectDestination(ctx context.Context, id model.GameID, cell model.HexCell) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Cursor.Phase != model.PhaseGlyphlingSelected {
		return nil, c.phaseError(g)
	}
	if !containsCell(g.Cursor.ValidMoves, cell) {
		return nil, model.ErrIllegalMove
	}

	dest := cell
	g.Cursor.Destination = &dest
	g.Cursor.CastCell = nil
	g.Cursor.Letter = 0
	g.Cursor.ValidCasts = c.boardService.ValidCastCells(g, dest)
	g.Cursor.Phase = model.PhaseMovePending
	g.UpdatedAt = c.clock.Now()

	return g, c.storage.SaveGame(ctx, g)
}

// SelectCastCell sets the pending cast target
func (c *Controller) SelectCastCell(ctx context.Context, id model.GameID, cell model.HexCell) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Cursor.Phase != model.PhaseMovePending && g.Cursor.Phase != model.PhaseReadyToConfirm {
		return nil, c.phaseError(g)
	}
	if !containsCell(g.Cursor.ValidCasts, cell) {
		return nil, model.ErrIllegalCast
	}

	target := cell
	g.Cursor.CastCell = &target
	if g.Cursor.Letter != 0 {
		g.Cursor.Phase = model.PhaseReadyToConfirm
	}
	g.UpdatedAt = c.clock.Now()

	return g, c.storage.SaveGame(ctx, g)
}

// SelectLetter sets the pending letter from the current player's hand
func (c *Controller) SelectLetter(ctx context.Context, id model.GameID, letter rune) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Cursor.Phase != model.PhaseMovePending && g.Cursor.Phase != model.PhaseReadyToConfirm {
		return nil, c.phaseError(g)
	}
	letter = unicode.ToUpper(letter)
	if !model.IsValidLetter(letter) {
		return nil, model.ErrInvalidLetter
	}
	if !g.HandContains(g.CurrentPlayer, letter) {
		return nil, model.ErrLetterNotInHand
	}

	g.Cursor.Letter = letter
	if g.Cursor.CastCell != nil {
		g.Cursor.Phase = model.PhaseReadyToConfirm
	}
	g.UpdatedAt = c.clock.Now()

	return g, c.storage.SaveGame(ctx, g)
}

// Confirm commits the pending turn: the glyphling moves, the tile is
// placed (permanently, even when wordless), words are scored for the
// current player, a replacement letter is drawn and the turn ends. A
// cast that forms no words instead enters cycle mode: the tile stays,
// nothing is drawn, and the turn waits for a discard.
func (c *Controller) Confirm(ctx context.Context, id model.GameID) (*model.Game, *ConfirmResult, error) {
	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if g.Cursor.Phase != model.PhaseReadyToConfirm {
		return nil, nil, c.phaseError(g)
	}

	player := g.CurrentPlayer
	idx := g.Cursor.GlyphlingIndex
	dest := *g.Cursor.Destination
	castCell := *g.Cursor.CastCell
	letter := g.Cursor.Letter

	// Apply the pending move and commit the tile
	g.Glyphlings[idx].Position = dest
	g.RemoveFromHand(player, letter)
	placement := model.Tile{Letter: letter, Owner: player, Position: castCell}
	g.Cursor = model.NewTurnCursor()
	g.Tiles = append(g.Tiles, placement)

	found, points := c.wordsService.ScorePlacement(g, placement)

	result := &ConfirmResult{Words: found, PointsScored: points}

	if len(found) == 0 {
		g.Cursor.Phase = model.PhaseCycleMode
		result.EnteredCycleMode = true
		g.UpdatedAt = c.clock.Now()
		c.logger.Info("wordless cast, entering cycle mode",
			slog.String("game_id", string(g.ID)),
			slog.Int("seat", player),
			slog.String("letter", string(letter)),
		)
		return g, result, c.storage.SaveGame(ctx, g)
	}

	g.Scores[player] += points
	c.drawLetter(g, player)

	c.logger.Info("cast confirmed",
		slog.String("game_id", string(g.ID)),
		slog.Int("seat", player),
		slog.String("letter", string(letter)),
		slog.Int("words", len(found)),
		slog.Int("points", points),
	)

	if err := c.finishOrAdvance(ctx, g); err != nil {
		return nil, nil, err
	}
	result.GameOver = g.GameOver
	return g, result, nil
}

// Reset abandons the pending selections and returns the turn to idle.
// Legal from any non-terminal phase except cycle mode, whose tile is
// already committed.
func (c *Controller) Reset(ctx context.Context, id model.GameID) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	switch g.Cursor.Phase {
	case model.PhaseCycleMode, model.PhaseGameOver:
		return nil, c.phaseError(g)
	}

	// The cursor only ever holds pending values, so there is no
	// position to restore.
	g.Cursor = model.NewTurnCursor()
	g.UpdatedAt = c.clock.Now()

	return g, c.storage.SaveGame(ctx, g)
}

// ConfirmDiscard exits cycle mode: the given hand subset leaves play,
// the hand is redrawn up to HandSize and the turn ends unconditionally.
// The subset may be empty.
func (c *Controller) ConfirmDiscard(ctx context.Context, id model.GameID, letters []rune) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Cursor.Phase != model.PhaseCycleMode {
		return nil, c.phaseError(g)
	}

	player := g.CurrentPlayer

	// Validate the subset against a copy before touching the hand
	remaining := append([]rune(nil), g.Hand(player)...)
	for _, l := range letters {
		l = unicode.ToUpper(l)
		if !model.IsValidLetter(l) {
			return nil, model.ErrInvalidLetter
		}
		if !removeRune(&remaining, l) {
			return nil, model.ErrLetterNotInHand
		}
	}

	discarded := len(g.Hand(player)) - len(remaining)
	g.Hands[player] = remaining
	for len(g.Hands[player]) < model.HandSize && len(g.Bag) > 0 {
		c.drawLetter(g, player)
	}

	c.logger.Info("discard confirmed",
		slog.String("game_id", string(g.ID)),
		slog.Int("seat", player),
		slog.Int("discarded", discarded),
	)

	g.Cursor = model.NewTurnCursor()
	return g, c.finishOrAdvance(ctx, g)
}

// SkipTurn ends the turn without moving. Legal only when every one of
// the current player's glyphlings is tangled, so the player physically
// cannot complete the select/move/cast sequence.
func (c *Controller) SkipTurn(ctx context.Context, id model.GameID) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	switch g.Cursor.Phase {
	case model.PhaseCycleMode, model.PhaseGameOver:
		return nil, c.phaseError(g)
	}
	for _, idx := range g.GlyphlingsFor(g.CurrentPlayer) {
		if len(c.boardService.ValidMoves(g, idx)) > 0 {
			return nil, model.ErrWrongPhase
		}
	}

	g.Cursor = model.NewTurnCursor()
	return g, c.finishOrAdvance(ctx, g)
}

// finishOrAdvance runs the end-of-game check and either finishes the
// game (applying tangle bonuses exactly once) or passes the turn.
func (c *Controller) finishOrAdvance(ctx context.Context, g *model.Game) error {
	if c.tangleService.ShouldEndGame(g) {
		return c.finishGame(ctx, g)
	}

	g.CurrentPlayer = g.NextPlayer()
	g.TurnNumber++
	g.UpdatedAt = c.clock.Now()
	return c.storage.SaveGame(ctx, g)
}

func (c *Controller) finishGame(ctx context.Context, g *model.Game) error {
	bonus := c.tangleService.TanglePoints(g)
	for seat, p := range bonus {
		g.Scores[seat] += p
	}
	g.GameOver = true
	g.Cursor = model.NewTurnCursor()
	g.Cursor.Phase = model.PhaseGameOver
	g.UpdatedAt = c.clock.Now()

	summary := &model.GameSummary{
		ID:           g.ID,
		FinalScores:  append([]int(nil), g.Scores...),
		TanglePoints: bonus,
		Winner:       winnerSeat(g.Scores),
		TurnsPlayed:  g.TurnNumber,
		CompletedAt:  c.clock.Now(),
	}
	if err := c.storage.SaveGameSummary(ctx, summary); err != nil {
		return err
	}

	c.logger.Info("game finished",
		slog.String("game_id", string(g.ID)),
		slog.Int("turns", g.TurnNumber),
		slog.Any("scores", g.Scores),
	)

	return c.storage.SaveGame(ctx, g)
}

// GetGameSummary retrieves the summary of a completed game
func (c *Controller) GetGameSummary(ctx context.Context, id model.GameID) (*model.GameSummary, error) {
	return c.storage.GetGameSummary(ctx, id)
}

// DeleteGame removes a game. The summary, if any, is kept.
func (c *Controller) DeleteGame(ctx context.Context, id model.GameID) error {
	if _, err := c.storage.GetGame(ctx, id); err != nil {
		return err
	}
	return c.storage.DeleteGame(ctx, id)
}

// drawLetter moves one uniformly random letter from the bag into the
// player's hand; the bag multiset encodes the letter frequency
// weighting. A draw from an empty bag is a no-op.
func (c *Controller) drawLetter(g *model.Game, player int) {
	if len(g.Bag) == 0 {
		return
	}
	i := c.random.Intn(len(g.Bag))
	letter := g.Bag[i]
	g.Bag = append(g.Bag[:i], g.Bag[i+1:]...)
	g.Hands[player] = append(g.Hands[player], letter)
}

// phaseError maps a rejected intent to the most specific sentinel
func (c *Controller) phaseError(g *model.Game) error {
	if g.GameOver {
		return model.ErrGameComplete
	}
	return model.ErrWrongPhase
}

func containsCell(cells []model.HexCell, c model.HexCell) bool {
	for _, cell := range cells {
		if cell == c {
			return true
		}
	}
	return false
}

func removeRune(hand *[]rune, letter rune) bool {
	for i, l := range *hand {
		if l == letter {
			*hand = append((*hand)[:i], (*hand)[i+1:]...)
			return true
		}
	}
	return false
}

func winnerSeat(scores []int) int {
	best, winner, ties := -1, -1, 0
	for seat, s := range scores {
		if s > best {
			best, winner, ties = s, seat, 1
		} else if s == best {
			ties++
		}
	}
	if ties > 1 {
		return -1
	}
	return winner
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, size model.BoardSize, rules model.RuleOptions, playerCount int) (*model.Game, error)
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GetGameSummary(ctx context.Context, id model.GameID) (*model.GameSummary, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	GetValidMoves(ctx context.Context, id model.GameID, seat, glyphling int) ([]model.HexCell, error)
	GetValidCastCells(ctx context.Context, id model.GameID) ([]model.HexCell, error)
	WordPreview(ctx context.Context, id model.GameID, cell model.HexCell, letter rune) ([]model.WordResult, int, error)
	SelectGlyphling(ctx context.Context, id model.GameID, glyphling int) (*model.Game, error)
	SelectDestination(ctx context.Context, id model.GameID, cell model.HexCell) (*model.Game, error)
	SelectCastCell(ctx context.Context, id model.GameID, cell model.HexCell) (*model.Game, error)
	SelectLetter(ctx context.Context, id model.GameID, letter rune) (*model.Game, error)
	Confirm(ctx context.Context, id model.GameID) (*model.Game, *ConfirmResult, error)
	Reset(ctx context.Context, id model.GameID) (*model.Game, error)
	ConfirmDiscard(ctx context.Context, id model.GameID, letters []rune) (*model.Game, error)
	SkipTurn(ctx context.Context, id model.GameID) (*model.Game, error)
}

var _ ControllerInterface = (*Controller)(nil)
