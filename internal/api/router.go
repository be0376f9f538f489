package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/api/handler"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/api/middleware"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/auth"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/rules"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/tangle"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	RulesController *rules.Controller
	TangleService   *tangle.Service
	AIFactory       handler.AIFactory
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.RulesController, cfg.TangleService, cfg.AIFactory)

	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/summary", gameHandler.GetSummary).Methods(http.MethodGet)

	// Turn queries
	games.HandleFunc("/{id}/moves", gameHandler.GetMoves).Methods(http.MethodGet)
	games.HandleFunc("/{id}/casts", gameHandler.GetCasts).Methods(http.MethodGet)
	games.HandleFunc("/{id}/tangled", gameHandler.GetTangled).Methods(http.MethodGet)
	games.HandleFunc("/{id}/word-preview", gameHandler.GetWordPreview).Methods(http.MethodGet)

	// Turn intents
	games.HandleFunc("/{id}/select-glyphling", gameHandler.SelectGlyphling).Methods(http.MethodPost)
	games.HandleFunc("/{id}/select-destination", gameHandler.SelectDestination).Methods(http.MethodPost)
	games.HandleFunc("/{id}/select-cast", gameHandler.SelectCast).Methods(http.MethodPost)
	games.HandleFunc("/{id}/select-letter", gameHandler.SelectLetter).Methods(http.MethodPost)
	games.HandleFunc("/{id}/confirm", gameHandler.Confirm).Methods(http.MethodPost)
	games.HandleFunc("/{id}/reset", gameHandler.Reset).Methods(http.MethodPost)
	games.HandleFunc("/{id}/discard", gameHandler.Discard).Methods(http.MethodPost)
	games.HandleFunc("/{id}/skip", gameHandler.Skip).Methods(http.MethodPost)

	// Engine-driven play
	games.HandleFunc("/{id}/ai/move", gameHandler.AIMove).Methods(http.MethodPost)
	games.HandleFunc("/{id}/ai/discards", gameHandler.AIDiscards).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
