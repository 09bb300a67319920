// Package session is the single source of truth for "who is logged in".
// A Manager is constructed once at startup and passed by reference to
// everything that needs it; sessions are written only through Login and
// Logout, and read everywhere via the middleware-populated context.
//
// Each session row persists the backend bearer token and a cached copy of
// the user profile. Logout is purely client-side: the row and cookie are
// cleared but the token stays live on the backend until it expires there.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/auth"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/api"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/config"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
)

// refreshInterval bounds how stale the cached profile may get before the
// middleware re-fetches it from the backend.
const refreshInterval = 5 * time.Minute

// Record is one persisted browser session.
type Record struct {
	ID          string `gorm:"primaryKey;size:36"`
	Token       string `gorm:"not null"`
	UserJSON    string `gorm:"type:text"`
	RefreshedAt time.Time
	CreatedAt   time.Time
	ExpiresAt   time.Time `gorm:"index"`
}

// TableName keeps the table name stable across gorm versions.
func (Record) TableName() string { return "sessions" }

type ctxKey string

const tokenCtxKey = ctxKey("sessionToken")

// Manager owns the session lifecycle.
type Manager struct {
	db     *gorm.DB
	api    *api.Client
	secret string
	ttl    time.Duration
}

// NewManager migrates the sessions table and returns the manager.
func NewManager(db *gorm.DB, apiClient *api.Client, cfg config.SessionConfig) (*Manager, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}
	return &Manager{db: db, api: apiClient, secret: cfg.Secret, ttl: cfg.TTL()}, nil
}

// Login exchanges credentials for a token, fetches the profile with it, and
// persists both before setting the cookie. Callers must wait for the
// returned user before redirecting.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, email, password string) (*models.User, error) {
	token, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	user, err := m.api.WithToken(token).Profile(ctx)
	if err != nil {
		return nil, err
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	rec := Record{
		ID:          uuid.NewString(),
		Token:       token,
		UserJSON:    string(userJSON),
		RefreshedAt: time.Now(),
		ExpiresAt:   time.Now().Add(m.ttl),
	}
	if err := m.db.Create(&rec).Error; err != nil {
		return nil, err
	}
	auth.SetCookie(w, m.secret, rec.ID, m.ttl)
	return user, nil
}

// Logout clears the session row and cookie synchronously. No backend call
// is made; the token is left to expire server-side.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := auth.ParseCookie(r, m.secret); ok {
		m.db.Delete(&Record{}, "id = ?", id)
	}
	auth.ClearCookie(w)
}

// Middleware restores the session on every request: cookie → row → cached
// user. When the cached profile is stale it is re-fetched; a rejected
// profile fetch is treated as an invalid or expired token (not a transient
// error) and the session is destroyed. Requests always continue, with a
// nil user when unauthenticated.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.ParseCookie(r, m.secret)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		var rec Record
		if err := m.db.First(&rec, "id = ?", id).Error; err != nil {
			auth.ClearCookie(w)
			next.ServeHTTP(w, r)
			return
		}
		if time.Now().After(rec.ExpiresAt) {
			m.destroy(w, rec.ID)
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.restoreUser(r.Context(), &rec)
		if err != nil {
			if api.IsUnauthorized(err) {
				m.destroy(w, rec.ID)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := auth.WithUser(r.Context(), rec.ID, user)
		ctx = context.WithValue(ctx, tokenCtxKey, rec.Token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// restoreUser returns the cached user, re-fetching the profile when stale.
func (m *Manager) restoreUser(ctx context.Context, rec *Record) (*models.User, error) {
	if rec.UserJSON != "" && time.Since(rec.RefreshedAt) < refreshInterval {
		var cached models.User
		if err := json.Unmarshal([]byte(rec.UserJSON), &cached); err == nil {
			return &cached, nil
		}
	}
	return m.refresh(ctx, rec)
}

// refresh re-fetches the profile and updates the cached copy.
func (m *Manager) refresh(ctx context.Context, rec *Record) (*models.User, error) {
	user, err := m.api.WithToken(rec.Token).Profile(ctx)
	if err != nil {
		return nil, err
	}
	if userJSON, jerr := json.Marshal(user); jerr == nil {
		m.db.Model(&Record{}).Where("id = ?", rec.ID).
			Updates(map[string]any{"user_json": string(userJSON), "refreshed_at": time.Now()})
	}
	return user, nil
}

// Refresh re-fetches the current request's profile, used after mutations
// that change balance or due amount.
func (m *Manager) Refresh(r *http.Request) (*models.User, error) {
	id, ok := auth.SessionIDFromContext(r.Context())
	if !ok {
		return nil, errors.New("no session")
	}
	var rec Record
	if err := m.db.First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return m.refresh(r.Context(), &rec)
}

// Lookup resolves a live session id straight to a freshly fetched profile,
// bypassing the cached copy. The authorization gate uses it behind its own
// TTL cache, so grant changes reach permission checks no later than that
// cache's expiry.
func (m *Manager) Lookup(ctx context.Context, sessionID string) (*models.User, error) {
	var rec Record
	if err := m.db.First(&rec, "id = ?", sessionID).Error; err != nil {
		return nil, err
	}
	if time.Now().After(rec.ExpiresAt) {
		return nil, errors.New("session expired")
	}
	return m.refresh(ctx, &rec)
}

// Client returns an API client bound to the request's bearer token. For
// unauthenticated requests it returns the tokenless base client, which the
// backend will reject on protected endpoints.
func (m *Manager) Client(r *http.Request) *api.Client {
	if token, ok := r.Context().Value(tokenCtxKey).(string); ok && token != "" {
		return m.api.WithToken(token)
	}
	return m.api
}

// destroy removes the row and cookie together.
func (m *Manager) destroy(w http.ResponseWriter, id string) {
	m.db.Delete(&Record{}, "id = ?", id)
	auth.ClearCookie(w)
}

// PurgeExpired deletes rows past their expiry. Called opportunistically at
// startup.
func (m *Manager) PurgeExpired() error {
	return m.db.Delete(&Record{}, "expires_at < ?", time.Now()).Error
}
