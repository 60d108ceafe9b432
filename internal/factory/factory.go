package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/rpsmatch-go/internal/dependencies/clock"
	"github.com/mcoot/rpsmatch-go/internal/dependencies/identity"
	"github.com/mcoot/rpsmatch-go/internal/services/match"
	"github.com/mcoot/rpsmatch-go/internal/storage"
	"github.com/mcoot/rpsmatch-go/internal/storage/memory"
	redisstorage "github.com/mcoot/rpsmatch-go/internal/storage/redis"
	"github.com/mcoot/rpsmatch-go/internal/transport/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage

	Clock    clock.Clock
	Identity identity.Generator

	Controller *match.Controller
	Hub        *ws.Hub
	Dispatcher *ws.Dispatcher
}

// Config holds configuration for the application factory
type Config struct {
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
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var store storage.Storage
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

	clk := clock.New()
	ids := identity.New()

	// The hub is the controller's Sender and the dispatcher is the hub's
	// inbound handler, so wiring happens in two steps
	hub := ws.NewHub(ids, logger)
	controller := match.NewController(store, hub, clk, ids, logger)
	dispatcher := ws.NewDispatcher(controller, hub, logger)
	hub.SetHandler(dispatcher)

	return &App{
		Storage:    store,
		Clock:      clk,
		Identity:   ids,
		Controller: controller,
		Hub:        hub,
		Dispatcher: dispatcher,
	}, nil
}
