package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/api"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/api/response"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/factory"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/auth"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	auth    *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)
	err = app.DictionaryService.LoadFromFile(context.Background(), "../../data/words.txt")
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		RulesController: app.RulesController,
		TangleService:   app.TangleService,
		AIFactory:       app.NewAI,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		auth:    app.AuthService,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateGuestPlayer(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"display_name": "Alice"}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "Alice", resp.Player.DisplayName)
	assert.True(t, resp.Player.IsGuest)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	// Register
	registerBody := map[string]string{
		"username":     "alice",
		"password":     "secret123",
		"display_name": "Alice",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &registerResp)
	require.NoError(t, err)
	assert.False(t, registerResp.Player.IsGuest)

	// Login
	loginBody := map[string]string{
		"username": "alice",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	err = json.Unmarshal(rr.Body.Bytes(), &loginResp)
	require.NoError(t, err)
	assert.Equal(t, registerResp.Player.ID, loginResp.Player.ID)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)

	// Create guest first
	body := map[string]string{"display_name": "Bob"}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var authResp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &authResp)
	require.NoError(t, err)

	// Get me
	rr = ts.request(http.MethodGet, "/api/v1/players/me", nil, authResp.SessionToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	var meResp response.Player
	err = json.Unmarshal(rr.Body.Bytes(), &meResp)
	require.NoError(t, err)
	assert.Equal(t, "Bob", meResp.DisplayName)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	// Try to get /me without token
	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Try to create a game without token
	rr = ts.request(http.MethodPost, "/api/v1/games", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateGame(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Alice")

	// Empty body uses defaults: medium board, two players
	rr := ts.request(http.MethodPost, "/api/v1/games", nil, token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var game response.GameState
	err := json.Unmarshal(rr.Body.Bytes(), &game)
	require.NoError(t, err)

	assert.NotEmpty(t, game.ID)
	assert.Equal(t, "medium", game.BoardSize)
	assert.Equal(t, 2, game.PlayerCount)
	assert.Len(t, game.Glyphlings, 6)
	require.Len(t, game.Hands, 2)
	assert.Len(t, game.Hands[0], 8)
	assert.Len(t, game.Hands[1], 8)
	assert.Equal(t, []int{0, 0}, game.Scores)
	assert.Equal(t, 0, game.CurrentPlayer)
	assert.Equal(t, 1, game.TurnNumber)
	assert.Equal(t, "idle", game.Cursor.Phase)
	assert.Empty(t, game.Tiles)
}

func TestCreateGameInvalidSize(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Alice")

	body := map[string]string{"board_size": "gigantic"}
	rr := ts.request(http.MethodPost, "/api/v1/games", body, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_BOARD_SIZE")
}

func TestGameNotFound(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/games/g_nope", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "GAME_NOT_FOUND")
}

func TestTurnIntentSequence(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Alice")
	game := createGame(t, ts, token)

	// Confirming before any intent is a phase conflict
	rr := ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/confirm", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "WRONG_PHASE")

	// Legal moves for the first glyphling are also queryable directly
	rr = ts.request(http.MethodGet, "/api/v1/games/"+game.ID+"/moves?seat=0&glyphling=0", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var moves response.CellsResponse
	err := json.Unmarshal(rr.Body.Bytes(), &moves)
	require.NoError(t, err)
	require.NotEmpty(t, moves.Cells)

	// Select the glyphling; cursor advances and carries the legal moves
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/select-glyphling", map[string]int{"glyphling": 0}, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	err = json.Unmarshal(rr.Body.Bytes(), &game)
	require.NoError(t, err)
	assert.Equal(t, "glyphling_selected", game.Cursor.Phase)
	require.NotNil(t, game.Cursor.Glyphling)
	assert.Equal(t, 0, *game.Cursor.Glyphling)
	require.NotEmpty(t, game.Cursor.ValidMoves)

	// Select a destination from the cursor's own list
	dest := game.Cursor.ValidMoves[0]
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/select-destination", dest, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	err = json.Unmarshal(rr.Body.Bytes(), &game)
	require.NoError(t, err)
	assert.Equal(t, "move_pending", game.Cursor.Phase)
	require.NotEmpty(t, game.Cursor.ValidCasts)

	// An off-list cast target is an illegal intent
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/select-cast", map[string]int{"col": 99, "row": 99}, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ILLEGAL_CAST")

	// Select a cast cell; phase stays pending until the letter arrives
	cast := game.Cursor.ValidCasts[0]
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/select-cast", cast, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	err = json.Unmarshal(rr.Body.Bytes(), &game)
	require.NoError(t, err)
	assert.Equal(t, "move_pending", game.Cursor.Phase)

	letter := string(game.Hands[0][0])
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/select-letter", map[string]string{"letter": letter}, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	err = json.Unmarshal(rr.Body.Bytes(), &game)
	require.NoError(t, err)
	assert.Equal(t, "ready_to_confirm", game.Cursor.Phase)
	assert.Equal(t, letter, game.Cursor.Letter)

	// Confirm commits the tile and ends the turn (or enters cycle mode
	// if the cast formed no words - either way the cursor resolves)
	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/confirm", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var confirm response.ConfirmResponse
	err = json.Unmarshal(rr.Body.Bytes(), &confirm)
	require.NoError(t, err)
	assert.Len(t, confirm.Game.Tiles, 1)
	if confirm.EnteredCycleMode {
		assert.Equal(t, "cycle_mode", confirm.Game.Cursor.Phase)
		assert.Empty(t, confirm.Words)
	} else {
		assert.Equal(t, "idle", confirm.Game.Cursor.Phase)
		assert.Equal(t, 1, confirm.Game.CurrentPlayer)
		assert.Equal(t, 2, confirm.Game.TurnNumber)
	}
}

func TestResetClearsCursor(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Alice")
	game := createGame(t, ts, token)

	rr := ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/select-glyphling", map[string]int{"glyphling": 1}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/reset", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	err := json.Unmarshal(rr.Body.Bytes(), &game)
	require.NoError(t, err)
	assert.Equal(t, "idle", game.Cursor.Phase)
	assert.Nil(t, game.Cursor.Glyphling)
}

func TestTangledEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Alice")
	game := createGame(t, ts, token)

	rr := ts.request(http.MethodGet, "/api/v1/games/"+game.ID+"/tangled", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var tangled response.TangledResponse
	err := json.Unmarshal(rr.Body.Bytes(), &tangled)
	require.NoError(t, err)

	// Nothing is tangled on an open board
	require.Len(t, tangled.Tangled, 2)
	assert.Empty(t, tangled.Tangled[0])
	assert.Empty(t, tangled.Tangled[1])
}

func TestAIMovePlaysFullTurn(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Alice")
	game := createGame(t, ts, token)

	body := map[string]string{"difficulty": "archmage"}
	rr := ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/ai/move", body, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.AIMoveResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	// The endpoint always completes the turn, cycle mode included
	assert.Equal(t, "idle", resp.Game.Cursor.Phase)
	assert.Equal(t, 2, resp.Game.TurnNumber)
	assert.Equal(t, 1, resp.Game.CurrentPlayer)
	assert.Len(t, resp.Game.Tiles, 1)
	if !resp.Wordless {
		assert.NotEmpty(t, resp.Words)
		assert.Positive(t, resp.PointsScored)
	}
}

func TestDeleteGame(t *testing.T) {
	ts := newTestServer(t)
	token := createGuestPlayer(t, ts, "Alice")
	game := createGame(t, ts, token)

	rr := ts.request(http.MethodDelete, "/api/v1/games/"+game.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+game.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// Helper functions

func createGuestPlayer(t *testing.T, ts *testServer, displayName string) string {
	t.Helper()

	body := map[string]string{"display_name": displayName}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	return resp.SessionToken
}

func createGame(t *testing.T, ts *testServer, token string) response.GameState {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/games", nil, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.GameState
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	return resp
}
