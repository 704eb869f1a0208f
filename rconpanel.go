// Package rconpanel is the embedding surface for host applications.
//
// A host creates an App, feeds the live roster as players connect and
// disconnect, and subscribes to the event bus so bans and kicks issued
// from the web UI can drop the real connections. Handler returns the
// panel's HTTP handler, ready to mount on the host's own server or to
// serve on a dedicated listener via NewServer.
package rconpanel

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/voidhawk/rconpanel/internal/config"
	"github.com/voidhawk/rconpanel/internal/events"
	"github.com/voidhawk/rconpanel/internal/factory"
	"github.com/voidhawk/rconpanel/internal/model"
	"github.com/voidhawk/rconpanel/internal/roster"
	"github.com/voidhawk/rconpanel/internal/web"
	"github.com/voidhawk/rconpanel/internal/web/handler"
)

// Core types a host interacts with.
type (
	// Player is a live connection in the host's game server.
	Player = model.Player
	// BannedPlayer is a persisted ban record.
	BannedPlayer = model.BannedPlayer
	// Event notifies the host of an operator action.
	Event     = model.Event
	EventType = model.EventType

	// Roster is the live player list the host keeps up to date.
	Roster = roster.Roster
	// Bus delivers Events to host subscribers.
	Bus = events.Bus

	// Config mirrors the YAML configuration file.
	Config = config.Config
	// App holds the wired panel components.
	App = factory.App
	// Server is a graceful HTTP server for hosts that do not bring
	// their own.
	Server = web.Server
)

const (
	// EventPlayerBanned asks the host to disconnect a banned player.
	EventPlayerBanned = model.EventPlayerBanned
	// EventPlayerKicked asks the host to disconnect a kicked player.
	EventPlayerKicked = model.EventPlayerKicked
)

// DefaultConfig returns the panel configuration with sensible defaults,
// including the in-memory ban store.
func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig loads panel config from a YAML file, falling back to
// defaults when the file is absent.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// New wires the panel components for cfg. The context bounds backend
// connection setup; a nil logger discards panel logs. Call App.Close
// when the host shuts down.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*App, error) {
	return factory.New(ctx, cfg, logger)
}

// Handler builds the panel's HTTP handler from a wired App.
func Handler(cfg Config, app *App, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return web.NewRouter(web.RouterConfig{
		Logger:      logger,
		BansService: app.BansService,
		AuthService: app.AuthService,
		Panel: handler.PanelInfo{
			TabTitle:   cfg.Panel.TabTitle,
			GameName:   cfg.Panel.GameName,
			ServerName: cfg.Panel.ServerName,
		},
		LoginRateLimit: rate.Limit(cfg.Admin.LoginRatePerSecond),
		LoginBurst:     cfg.Admin.LoginBurst,
	})
}

// NewServer wraps h in a graceful HTTP server listening on cfg.Server's
// address and timeouts.
func NewServer(h http.Handler, cfg Config, logger *slog.Logger) *Server {
	serverConfig := web.DefaultServerConfig()
	serverConfig.Addr = cfg.Server.Addr()
	serverConfig.ReadTimeout = cfg.Server.ReadTimeout()
	serverConfig.WriteTimeout = cfg.Server.WriteTimeout()
	serverConfig.IdleTimeout = cfg.Server.IdleTimeout()
	return web.NewServer(h, serverConfig, logger)
}
