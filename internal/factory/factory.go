package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/dependencies/clock"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/dependencies/random"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/model"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/ai"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/auth"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/board"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/dictionary"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/rules"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/tangle"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/words"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/storage"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/storage/memory"
	redisstorage "github.com/TheBlueMuzzy/Glyphtender-sub000/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	BoardService      *board.Service
	WordsService      *words.Service
	TangleService     *tangle.Service
	RulesController   *rules.Controller
	AuthService       *auth.Service

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// DictionaryPath is the path to the dictionary file (optional)
	// If empty, dictionary must be loaded manually
	DictionaryPath string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	// Create services
	dictService := dictionary.New(store)
	boardService := board.New()
	wordsService := words.New(boardService, dictService)
	tangleService := tangle.New(boardService)
	rulesController := rules.NewController(store, boardService, wordsService, tangleService, clk, rnd, logger)
	authService := auth.New(store, clk, rnd, authCfg)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		BoardService:      boardService,
		WordsService:      wordsService,
		TangleService:     tangleService,
		RulesController:   rulesController,
		AuthService:       authService,
		logger:            logger,
	}
}

// NewAI builds an AI engine over the app's services with the given
// profile. Engines are cheap; build one per request or per game.
func (a *App) NewAI(personality model.Personality, difficulty model.Difficulty) *ai.Service {
	return ai.New(a.BoardService, a.WordsService, a.DictionaryService, a.Random, personality, difficulty, a.logger)
}
