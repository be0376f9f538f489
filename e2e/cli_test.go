package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/api"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "glyph-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/glyph")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	projectRoot := findProjectRoot(t)
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	// Load dictionary
	err = app.DictionaryService.LoadFromFile(context.Background(), filepath.Join(projectRoot, "data/words.txt"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		RulesController: app.RulesController,
		TangleService:   app.TangleService,
		AIFactory:       app.NewAI,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	Player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	} `json:"player"`
	SessionToken string `json:"session_token"`
}

type cursorResponse struct {
	Phase string `json:"phase"`
}

type gameStateResponse struct {
	ID            string         `json:"id"`
	BoardSize     string         `json:"board_size"`
	PlayerCount   int            `json:"player_count"`
	Hands         []string       `json:"hands"`
	BagCount      int            `json:"bag_count"`
	Scores        []int          `json:"scores"`
	CurrentPlayer int            `json:"current_player"`
	TurnNumber    int            `json:"turn_number"`
	GameOver      bool           `json:"game_over"`
	Cursor        cursorResponse `json:"cursor"`
}

type aiMoveResponse struct {
	Game         gameStateResponse `json:"game"`
	Letter       string            `json:"letter"`
	PointsScored int               `json:"points_scored"`
	Wordless     bool              `json:"wordless"`
	GameOver     bool              `json:"game_over"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create guest
	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Alice", authResp.Player.DisplayName)
	assert.True(t, authResp.Player.IsGuest)
	assert.NotEmpty(t, authResp.SessionToken)

	// Get me (token should be saved in token file)
	output, err = cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	var player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "Alice", player.DisplayName)
	assert.Equal(t, authResp.Player.ID, player.ID)
}

func TestCLI_GameLifecycle(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	// Create a game
	output, err = cli.run("game", "new", "--size", "small", "--two-letter-words")
	require.NoError(t, err, "output: %s", output)

	var game gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.NotEmpty(t, game.ID)
	assert.Equal(t, "small", game.BoardSize)
	assert.Equal(t, 2, game.PlayerCount)
	assert.Equal(t, 1, game.TurnNumber)
	assert.Equal(t, "idle", game.Cursor.Phase)
	require.Len(t, game.Hands, 2)
	assert.Len(t, game.Hands[0], 8)
	assert.Len(t, game.Hands[1], 8)
	gameID := game.ID

	// Show it back
	output, err = cli.run("game", "show", gameID)
	require.NoError(t, err, "output: %s", output)
	var shown gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &shown))
	assert.Equal(t, gameID, shown.ID)

	// Glyphling 0 should have legal moves on a fresh board
	output, err = cli.run("game", "moves", gameID, "0", "0")
	require.NoError(t, err, "output: %s", output)
	var moves struct {
		Cells []struct {
			Col int `json:"col"`
			Row int `json:"row"`
		} `json:"cells"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &moves))
	assert.NotEmpty(t, moves.Cells)

	// Delete the game
	output, err = cli.run("game", "delete", gameID)
	require.NoError(t, err, "output: %s", output)

	_, err = cli.run("game", "show", gameID)
	assert.Error(t, err)
}

func TestCLI_EnginePlaysTurns(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("game", "new", "--size", "small", "--two-letter-words")
	require.NoError(t, err, "output: %s", output)
	var game gameStateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	gameID := game.ID

	// The engine plays both seats for a few turns; every turn must
	// leave the game in a consistent idle (or finished) state.
	for i := 0; i < 6; i++ {
		output, err = cli.run("game", "ai", gameID, "--difficulty", "archmage")
		require.NoError(t, err, "output: %s", output)

		var mv aiMoveResponse
		require.NoError(t, json.Unmarshal([]byte(output), &mv))
		if mv.GameOver {
			break
		}
		assert.Equal(t, "idle", mv.Game.Cursor.Phase)
		assert.Equal(t, i+2, mv.Game.TurnNumber)
	}
}
