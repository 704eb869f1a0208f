package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/voidhawk/rconpanel/internal/services/auth"
	"github.com/voidhawk/rconpanel/internal/services/bans"
	"github.com/voidhawk/rconpanel/internal/web/handler"
	"github.com/voidhawk/rconpanel/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	BansService *bans.Service
	AuthService *auth.Service
	Panel       handler.PanelInfo

	// LoginRateLimit caps login attempts per client IP. Zero means the
	// default of one attempt per second with a small burst.
	LoginRateLimit rate.Limit
	LoginBurst     int
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	adminHandler := handler.NewAdminHandler(cfg.BansService, cfg.Panel, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Panel)

	// Panel routes. When no credential is configured the auth middleware
	// passes everything through and the panel runs open.
	panel := r.NewRoute().Subrouter()
	panel.Use(flashMiddleware)
	panel.Use(authMiddleware)
	panel.HandleFunc("/", adminHandler.Index).Methods(http.MethodGet)
	panel.HandleFunc("/players", adminHandler.ListPlayers).Methods(http.MethodGet)
	panel.HandleFunc("/ban_list", adminHandler.ListBans).Methods(http.MethodGet)
	panel.HandleFunc("/ban_player", adminHandler.BanPlayer).Methods(http.MethodPost)
	panel.HandleFunc("/unban_player/{id}", adminHandler.UnbanPlayer).Methods(http.MethodPost)
	panel.HandleFunc("/kick_player/{id}", adminHandler.KickPlayer).Methods(http.MethodPost)

	if cfg.AuthService.Enabled() {
		limit := cfg.LoginRateLimit
		if limit == 0 {
			limit = rate.Limit(1)
		}
		burst := cfg.LoginBurst
		if burst == 0 {
			burst = 5
		}

		login := r.NewRoute().Subrouter()
		login.Use(flashMiddleware)
		login.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)

		loginPost := r.NewRoute().Subrouter()
		loginPost.Use(flashMiddleware)
		loginPost.Use(middleware.RateLimit(limit, burst, cfg.Logger))
		loginPost.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)

		panel.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	}

	return r
}
