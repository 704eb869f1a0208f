package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/voidhawk/rconpanel/internal/web/templates/layout"
)

const (
	flashCookieName = "rconpanel_flash"
	flashContextKey = contextKey("flash")
)

// GetFlash retrieves the flash message from the request context
// Returns nil if no flash message is set
func GetFlash(ctx context.Context) *layout.FlashMessage {
	flash, _ := ctx.Value(flashContextKey).(*layout.FlashMessage)
	return flash
}

// SetFlash queues a flash message for the next page render
func SetFlash(w http.ResponseWriter, kind layout.FlashKind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    encodeFlash(kind, message),
		Path:     "/",
		MaxAge:   60, // 1 minute expiry
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flash returns middleware that reads and clears flash messages
func Flash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var flash *layout.FlashMessage

			if cookie, err := r.Cookie(flashCookieName); err == nil && cookie.Value != "" {
				flash = decodeFlash(cookie.Value)
				clearFlashCookie(w)
			}

			ctx := context.WithValue(r.Context(), flashContextKey, flash)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clearFlashCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// encodeFlash packs kind and message into a cookie-safe value. The message
// is query-escaped so spaces and punctuation survive the cookie round trip.
func encodeFlash(kind layout.FlashKind, message string) string {
	return string(kind) + ":" + url.QueryEscape(message)
}

// decodeFlash is the inverse of encodeFlash. A tampered or legacy value
// degrades to an info flash rather than being dropped.
func decodeFlash(value string) *layout.FlashMessage {
	kind, rest, found := strings.Cut(value, ":")
	if !found {
		return &layout.FlashMessage{Kind: layout.FlashInfo, Message: value}
	}

	message, err := url.QueryUnescape(rest)
	if err != nil {
		message = rest
	}

	switch k := layout.FlashKind(kind); k {
	case layout.FlashSuccess, layout.FlashError, layout.FlashInfo:
		return &layout.FlashMessage{Kind: k, Message: message}
	default:
		return &layout.FlashMessage{Kind: layout.FlashInfo, Message: message}
	}
}
