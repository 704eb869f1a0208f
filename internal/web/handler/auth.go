package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/voidhawk/rconpanel/internal/services/auth"
	"github.com/voidhawk/rconpanel/internal/web/middleware"
	"github.com/voidhawk/rconpanel/internal/web/templates/layout"
	"github.com/voidhawk/rconpanel/internal/web/templates/pages"
)

// AuthHandler handles operator login and logout
type AuthHandler struct {
	authService *auth.Service
	panel       PanelInfo
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, panel PanelInfo) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		panel:       panel,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		// Already logged in
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderLogin(w, r)
}

// Login handles the login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, layout.FlashError, "Invalid form data")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	session, err := h.authService.Login(username, password)
	if err != nil {
		middleware.SetFlash(w, layout.FlashError, "Invalid username or password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.setSessionCookie(w, session.Token, session.ExpiresAt)
	middleware.SetFlash(w, layout.FlashSuccess, "Welcome back, "+session.Username+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout invalidates the session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.authService.InvalidateSession(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, layout.FlashInfo, "You have been logged out")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request) {
	data := pages.LoginData{
		PageData: layoutData(h.panel, r),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Login(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
