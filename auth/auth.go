// Package auth handles the browser-facing session cookie and the
// request-context user. The cookie carries only an HMAC-signed session id;
// the bearer token for the backend never leaves the server-side store.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
)

type ctxKey string

const (
	sessionCookieName = "session"
	userCtxKey        = ctxKey("user")
	sessionIDCtxKey   = ctxKey("sessionID")
)

// SetCookie writes the signed session-id cookie.
func SetCookie(w http.ResponseWriter, secret, sessionID string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID + "." + sign(secret, sessionID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
	})
}

// ClearCookie deletes the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseCookie validates the signature and returns the session id.
func ParseCookie(r *http.Request, secret string) (string, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return "", false
	}
	id, sig := parts[0], parts[1]
	if !hmac.Equal([]byte(sig), []byte(sign(secret, id))) {
		return "", false
	}
	return id, true
}

func sign(secret, value string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// WithUser stores the restored user and its session id in the context.
func WithUser(ctx context.Context, sessionID string, user *models.User) context.Context {
	ctx = context.WithValue(ctx, sessionIDCtxKey, sessionID)
	return context.WithValue(ctx, userCtxKey, user)
}

// UserFromContext extracts the authenticated user. A nil user means
// "unauthenticated".
func UserFromContext(ctx context.Context) *models.User {
	if u, ok := ctx.Value(userCtxKey).(*models.User); ok {
		return u
	}
	return nil
}

// SessionIDFromContext extracts the session id attached by the middleware.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDCtxKey).(string)
	return id, ok && id != ""
}
