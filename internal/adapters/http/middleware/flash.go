package middleware

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
)

const flashCookieName = "roster_flash"

const flashContextKey contextKey = "flash"

// Flash message types.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// FlashMessage is a one-shot notification shown on the next rendered page.
type FlashMessage struct {
	Type    string
	Message string
}

// SetFlash queues a flash message in a short-lived cookie. The message is
// shown once and cleared by the Flash middleware on the next page load.
func SetFlash(w http.ResponseWriter, flashType, message string) {
	// Base64 keeps arbitrary message text cookie-safe.
	value := base64.RawURLEncoding.EncodeToString([]byte(flashType + ":" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   60,
	})
}

// Flash returns middleware that reads a pending flash message into the request
// context and clears the cookie so the message shows exactly once.
func Flash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(flashCookieName)
			if err == nil && cookie.Value != "" {
				if flash, ok := decodeFlash(cookie.Value); ok {
					ctx := context.WithValue(r.Context(), flashContextKey, flash)
					r = r.WithContext(ctx)
				}
				http.SetCookie(w, &http.Cookie{
					Name:     flashCookieName,
					Value:    "",
					HttpOnly: true,
					Secure:   SecureCookies,
					SameSite: http.SameSiteLaxMode,
					Path:     "/",
					MaxAge:   -1,
				})
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetFlash extracts the pending flash message from the request context.
func GetFlash(ctx context.Context) (FlashMessage, bool) {
	flash, ok := ctx.Value(flashContextKey).(FlashMessage)
	return flash, ok
}

func decodeFlash(value string) (FlashMessage, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return FlashMessage{}, false
	}
	flashType, message, ok := strings.Cut(string(raw), ":")
	if !ok || message == "" {
		return FlashMessage{}, false
	}
	return FlashMessage{Type: flashType, Message: message}, true
}
