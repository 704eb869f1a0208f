package middleware

import (
	"context"
	"net/http"

	"github.com/voidhawk/rconpanel/internal/services/auth"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"
	// SessionCookieName is the cookie carrying the operator session token
	SessionCookieName = "rconpanel_session"
)

// GetSession retrieves the authenticated session from the request context
// Returns nil if no operator is authenticated
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// Auth returns middleware that requires an operator session.
// When the auth service is disabled it passes every request through, so
// the default configuration keeps the panel open like the original.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authService.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			session := getSessionFromCookie(r, authService)
			if session == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getSessionFromCookie(r *http.Request, authService *auth.Service) *auth.Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	session, err := authService.ValidateSession(cookie.Value)
	if err != nil {
		return nil
	}

	return session
}
