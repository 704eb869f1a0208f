// Package factory wires the application components together.
package factory

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/voidhawk/rconpanel/internal/config"
	"github.com/voidhawk/rconpanel/internal/dependencies/clock"
	"github.com/voidhawk/rconpanel/internal/events"
	"github.com/voidhawk/rconpanel/internal/roster"
	"github.com/voidhawk/rconpanel/internal/services/auth"
	"github.com/voidhawk/rconpanel/internal/services/bans"
	"github.com/voidhawk/rconpanel/internal/storage"
	"github.com/voidhawk/rconpanel/internal/storage/memory"
	"github.com/voidhawk/rconpanel/internal/storage/postgres"
	redisstorage "github.com/voidhawk/rconpanel/internal/storage/redis"
	"github.com/voidhawk/rconpanel/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeSQLite   = "sqlite"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Host-facing state
	Roster *roster.Roster
	Bus    *events.Bus

	// Services
	BansService *bans.Service
	AuthService *auth.Service

	closeStorage func() error
}

// New creates a new application with all dependencies wired.
// The context bounds backend connection setup.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	// Use no-op logger if not provided
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, closeStorage, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("creating %s storage: %w", cfg.Storage.Type, err)
	}

	clk := clock.New()

	authCfg := auth.Config{
		Username:        cfg.Admin.Username,
		PasswordHash:    cfg.Admin.PasswordHash,
		SessionDuration: cfg.Admin.SessionDuration(),
	}
	if authCfg.Username == "" {
		authCfg.Username = auth.DefaultConfig().Username
	}

	app := newWithDependencies(store, clk, authCfg, logger)
	app.closeStorage = closeStorage
	return app, nil
}

// Close releases backend connections held by the app
func (a *App) Close() error {
	if a.closeStorage != nil {
		return a.closeStorage()
	}
	return nil
}

func newStorage(ctx context.Context, cfg config.StorageConfig) (storage.Storage, func() error, error) {
	switch cfg.Type {
	case StorageTypeMemory, "":
		return memory.New(), nil, nil
	case StorageTypeSQLite:
		store, err := sqlite.New(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case StorageTypeRedis:
		rcfg := redisstorage.DefaultConfig()
		if cfg.Redis.URL != "" {
			rcfg.URL = cfg.Redis.URL
		}
		if cfg.Redis.PoolSize != 0 {
			rcfg.PoolSize = cfg.Redis.PoolSize
		}
		if cfg.Redis.MinIdleConns != 0 {
			rcfg.MinIdleConns = cfg.Redis.MinIdleConns
		}
		store, err := redisstorage.New(rcfg)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case StorageTypePostgres:
		if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN()); err != nil {
			return nil, nil, err
		}
		store, err := postgres.New(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { store.Close(); return nil }, nil
	default:
		return nil, nil, fmt.Errorf("invalid storage type %q", cfg.Type)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config, logger *slog.Logger) *App {
	ros := roster.New()
	bus := events.NewBus(logger)

	bansService := bans.New(store, ros, bus, clk, logger)
	authService := auth.New(authCfg, clk)

	return &App{
		Storage:     store,
		Clock:       clk,
		Roster:      ros,
		Bus:         bus,
		BansService: bansService,
		AuthService: authService,
	}
}
