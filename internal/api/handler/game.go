package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"unicode"

	"github.com/gorilla/mux"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/api/request"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/api/response"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/model"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/ai"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/rules"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/tangle"
)

// AIFactory builds a configured AI engine per request
type AIFactory func(personality model.Personality, difficulty model.Difficulty) *ai.Service

// GameHandler handles game-related endpoints
type GameHandler struct {
	rulesController *rules.Controller
	tangleService   *tangle.Service
	newAI           AIFactory
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	rulesController *rules.Controller,
	tangleService *tangle.Service,
	newAI AIFactory,
) *GameHandler {
	return &GameHandler{
		rulesController: rulesController,
		tangleService:   tangleService,
		newAI:           newAI,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	size := model.BoardMedium
	if req.BoardSize != "" {
		size = model.BoardSize(req.BoardSize)
	}
	playerCount := model.DefaultPlayerCount
	if req.PlayerCount != 0 {
		playerCount = req.PlayerCount
	}
	opts := model.RuleOptions{
		TwoLetterWords: req.TwoLetterWords,
		EndOnEmptyBag:  req.EndOnEmptyBag,
	}

	g, err := h.rulesController.CreateGame(r.Context(), size, opts, playerCount)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameStateFromModel(g))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.rulesController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// GetSummary handles GET /api/v1/games/{id}/summary
func (h *GameHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.rulesController.GetGameSummary(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameSummaryFromModel(summary))
}

// GetMoves handles GET /api/v1/games/{id}/moves?seat=N&glyphling=N
func (h *GameHandler) GetMoves(w http.ResponseWriter, r *http.Request) {
	seat, ok := intQuery(r, "seat")
	if !ok {
		WriteError(w, NewInvalidRequestError("seat query parameter is required"))
		return
	}
	glyphling, ok := intQuery(r, "glyphling")
	if !ok {
		WriteError(w, NewInvalidRequestError("glyphling query parameter is required"))
		return
	}

	cells, err := h.rulesController.GetValidMoves(r.Context(), gameID(r), seat, glyphling)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.CellsResponse{Cells: response.CellsFromModel(cells)})
}

// GetCasts handles GET /api/v1/games/{id}/casts
func (h *GameHandler) GetCasts(w http.ResponseWriter, r *http.Request) {
	cells, err := h.rulesController.GetValidCastCells(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.CellsResponse{Cells: response.CellsFromModel(cells)})
}

// GetTangled handles GET /api/v1/games/{id}/tangled
func (h *GameHandler) GetTangled(w http.ResponseWriter, r *http.Request) {
	g, err := h.rulesController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	tangled := make([][]int, g.PlayerCount)
	for seat := range tangled {
		tangled[seat] = []int{}
	}
	for _, idx := range h.tangleService.TangledGlyphlings(g) {
		gl := g.Glyphlings[idx]
		tangled[gl.Owner] = append(tangled[gl.Owner], gl.Index)
	}
	response.JSON(w, http.StatusOK, response.TangledResponse{Tangled: tangled})
}

// GetWordPreview handles GET /api/v1/games/{id}/word-preview?col=&row=&letter=
func (h *GameHandler) GetWordPreview(w http.ResponseWriter, r *http.Request) {
	col, okCol := intQuery(r, "col")
	row, okRow := intQuery(r, "row")
	letterParam := r.URL.Query().Get("letter")
	if !okCol || !okRow || len(letterParam) != 1 {
		WriteError(w, NewInvalidRequestError("col, row and a single-character letter are required"))
		return
	}

	cell := model.HexCell{Col: col, Row: row}
	words, points, err := h.rulesController.WordPreview(r.Context(), gameID(r), cell, rune(letterParam[0]))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.WordPreviewResponse{
		Words:  response.WordResultsFromModel(words),
		Points: points,
	})
}

// SelectGlyphling handles POST /api/v1/games/{id}/select-glyphling
func (h *GameHandler) SelectGlyphling(w http.ResponseWriter, r *http.Request) {
	var req request.SelectGlyphlingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	g, err := h.rulesController.SelectGlyphling(r.Context(), gameID(r), req.Glyphling)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// SelectDestination handles POST /api/v1/games/{id}/select-destination
func (h *GameHandler) SelectDestination(w http.ResponseWriter, r *http.Request) {
	cell, err := decodeCell(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.rulesController.SelectDestination(r.Context(), gameID(r), cell)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// SelectCast handles POST /api/v1/games/{id}/select-cast
func (h *GameHandler) SelectCast(w http.ResponseWriter, r *http.Request) {
	cell, err := decodeCell(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.rulesController.SelectCastCell(r.Context(), gameID(r), cell)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// SelectLetter handles POST /api/v1/games/{id}/select-letter
func (h *GameHandler) SelectLetter(w http.ResponseWriter, r *http.Request) {
	var req request.SelectLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if len(req.Letter) != 1 {
		WriteError(w, NewInvalidRequestError("letter must be a single character"))
		return
	}

	g, err := h.rulesController.SelectLetter(r.Context(), gameID(r), rune(req.Letter[0]))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// Confirm handles POST /api/v1/games/{id}/confirm
func (h *GameHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	g, result, err := h.rulesController.Confirm(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ConfirmResponse{
		Game:             response.GameStateFromModel(g),
		Words:            response.WordResultsFromModel(result.Words),
		PointsScored:     result.PointsScored,
		EnteredCycleMode: result.EnteredCycleMode,
		GameOver:         result.GameOver,
	})
}

// Reset handles POST /api/v1/games/{id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	g, err := h.rulesController.Reset(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// Discard handles POST /api/v1/games/{id}/discard
func (h *GameHandler) Discard(w http.ResponseWriter, r *http.Request) {
	var req request.DiscardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	letters := make([]rune, 0, len(req.Letters))
	for _, l := range req.Letters {
		letters = append(letters, unicode.ToUpper(l))
	}

	g, err := h.rulesController.ConfirmDiscard(r.Context(), gameID(r), letters)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// Skip handles POST /api/v1/games/{id}/skip
func (h *GameHandler) Skip(w http.ResponseWriter, r *http.Request) {
	g, err := h.rulesController.SkipTurn(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// AIMove handles POST /api/v1/games/{id}/ai/move. The engine picks a
// full turn for the current player and plays it through the regular
// intent sequence, so every legality check still applies.
func (h *GameHandler) AIMove(w http.ResponseWriter, r *http.Request) {
	var req request.AIMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	id := gameID(r)
	g, err := h.rulesController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	// A half-entered turn would skew the search; start clean.
	switch g.Cursor.Phase {
	case model.PhaseGlyphlingSelected, model.PhaseMovePending, model.PhaseReadyToConfirm:
		if g, err = h.rulesController.Reset(r.Context(), id); err != nil {
			WriteError(w, err)
			return
		}
	case model.PhaseIdle:
	default:
		WriteError(w, model.ErrWrongPhase)
		return
	}

	difficulty := model.DifficultyFirstClass
	if req.Difficulty != "" {
		difficulty = model.Difficulty(req.Difficulty)
	}
	engine := h.newAI(model.PersonalityByName(req.Personality), difficulty)

	seat := g.CurrentPlayer
	mv := engine.ChooseMove(g, seat)
	wordless := false
	if mv == nil {
		mv = engine.ChooseFallback(g, seat)
		wordless = true
	}
	if mv == nil {
		// Every glyphling is tangled; the only legal intent is a skip.
		g, err = h.rulesController.SkipTurn(r.Context(), id)
		if err != nil {
			WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusOK, response.AIMoveResponse{
			Game:     response.GameStateFromModel(g),
			Wordless: true,
			GameOver: g.GameOver,
		})
		return
	}

	perPlayer := g.Glyphlings[mv.GlyphlingIndex].Index
	if _, err = h.rulesController.SelectGlyphling(r.Context(), id, perPlayer); err != nil {
		WriteError(w, err)
		return
	}
	if _, err = h.rulesController.SelectDestination(r.Context(), id, mv.Destination); err != nil {
		WriteError(w, err)
		return
	}
	if _, err = h.rulesController.SelectCastCell(r.Context(), id, mv.CastCell); err != nil {
		WriteError(w, err)
		return
	}
	if _, err = h.rulesController.SelectLetter(r.Context(), id, mv.Letter); err != nil {
		WriteError(w, err)
		return
	}
	g, result, err := h.rulesController.Confirm(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	// A wordless turn lands in cycle mode; resolve it with the engine's
	// own discard choice so the endpoint always completes the turn.
	if result.EnteredCycleMode {
		discards := engine.ChooseDiscards(g, seat)
		if g, err = h.rulesController.ConfirmDiscard(r.Context(), id, discards); err != nil {
			WriteError(w, err)
			return
		}
	}

	response.JSON(w, http.StatusOK, response.AIMoveResponse{
		Game:         response.GameStateFromModel(g),
		Glyphling:    perPlayer,
		Destination:  response.CellFromModel(mv.Destination),
		CastCell:     response.CellFromModel(mv.CastCell),
		Letter:       string(mv.Letter),
		Words:        response.WordResultsFromModel(result.Words),
		PointsScored: result.PointsScored,
		Wordless:     wordless,
		GameOver:     g.GameOver,
	})
}

// AIDiscards handles POST /api/v1/games/{id}/ai/discards
func (h *GameHandler) AIDiscards(w http.ResponseWriter, r *http.Request) {
	var req request.AIDiscardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	id := gameID(r)
	g, err := h.rulesController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	engine := h.newAI(model.PersonalityByName(req.Personality), model.DifficultyFirstClass)
	discards := engine.ChooseDiscards(g, g.CurrentPlayer)

	g, err = h.rulesController.ConfirmDiscard(r.Context(), id, discards)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AIDiscardsResponse{
		Game:      response.GameStateFromModel(g),
		Discarded: string(discards),
	})
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.rulesController.DeleteGame(r.Context(), gameID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func decodeCell(r *http.Request) (model.HexCell, error) {
	var req request.CellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return model.HexCell{}, NewInvalidRequestError("invalid request body")
	}
	return model.HexCell{Col: req.Col, Row: req.Row}, nil
}

func intQuery(r *http.Request, key string) (int, bool) {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	return n, err == nil
}
