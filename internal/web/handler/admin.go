package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/voidhawk/rconpanel/internal/model"
	"github.com/voidhawk/rconpanel/internal/services/bans"
	"github.com/voidhawk/rconpanel/internal/web/middleware"
	"github.com/voidhawk/rconpanel/internal/web/templates/components"
	"github.com/voidhawk/rconpanel/internal/web/templates/layout"
	"github.com/voidhawk/rconpanel/internal/web/templates/pages"
)

// PanelInfo is the static identity shown on every page
type PanelInfo struct {
	TabTitle   string
	GameName   string
	ServerName string
}

// AdminHandler serves the admin panel pages and ban actions.
//
// Every action responds 200 with the re-rendered index page rather than
// redirecting: the buttons are htmx forms that swap the whole body, so the
// response IS the fresh page. Failures are logged and the page still
// renders from whatever state is readable.
type AdminHandler struct {
	bansService *bans.Service
	panel       PanelInfo
	logger      *slog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(bansService *bans.Service, panel PanelInfo, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		bansService: bansService,
		panel:       panel,
		logger:      logger.With(slog.String("component", "web")),
	}
}

// Index renders the admin panel page
func (h *AdminHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderIndex(w, r)
}

// ListPlayers renders the connected-players fragment, omitting anyone
// with an active ban record
func (h *AdminHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.bansService.VisiblePlayers(r.Context())
	if err != nil {
		h.logger.Error("failed to list players", slog.Any("error", err))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.PlayerList(players).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// ListBans renders the banned-players fragment
func (h *AdminHandler) ListBans(w http.ResponseWriter, r *http.Request) {
	banList, err := h.bansService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list bans", slog.Any("error", err))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.BanList(banList).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// BanPlayer handles the ban form. A submission missing the id or name is
// logged and ignored, and either way the response is the re-rendered index.
func (h *AdminHandler) BanPlayer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("invalid ban form", slog.Any("error", err))
		h.renderIndex(w, r)
		return
	}

	player := model.Player{
		UniqueID: r.FormValue("unique_id"),
		Name:     r.FormValue("name"),
	}

	if err := h.bansService.Ban(r.Context(), player); err != nil {
		h.logger.Warn("ban rejected",
			slog.String("unique_id", player.UniqueID),
			slog.String("name", player.Name),
			slog.Any("error", err),
		)
	}

	h.renderIndex(w, r)
}

// UnbanPlayer removes the first ban record for the id in the path
func (h *AdminHandler) UnbanPlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	uniqueID := vars["id"]

	if err := h.bansService.Unban(r.Context(), uniqueID); err != nil {
		h.logger.Error("unban failed", slog.String("unique_id", uniqueID), slog.Any("error", err))
	}

	h.renderIndex(w, r)
}

// KickPlayer removes the player from the live roster without banning them
func (h *AdminHandler) KickPlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	uniqueID := vars["id"]

	if err := h.bansService.Kick(r.Context(), uniqueID); err != nil {
		h.logger.Error("kick failed", slog.String("unique_id", uniqueID), slog.Any("error", err))
	}

	h.renderIndex(w, r)
}

func (h *AdminHandler) renderIndex(w http.ResponseWriter, r *http.Request) {
	data := pages.IndexData{
		PageData: layoutData(h.panel, r),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Index(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func layoutData(panel PanelInfo, r *http.Request) layout.PageData {
	return layout.PageData{
		Title:      panel.TabTitle,
		GameName:   panel.GameName,
		ServerName: panel.ServerName,
		LoggedIn:   middleware.GetSession(r.Context()) != nil,
		Flash:      middleware.GetFlash(r.Context()),
	}
}
