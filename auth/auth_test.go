package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
)

const secret = "test-secret"

func TestCookieRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	SetCookie(w, secret, "sid-1", time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	id, ok := ParseCookie(r, secret)
	if !ok || id != "sid-1" {
		t.Fatalf("ParseCookie = %q, %v; want sid-1, true", id, ok)
	}
}

func TestParseCookie_RejectsTamperedValue(t *testing.T) {
	w := httptest.NewRecorder()
	SetCookie(w, secret, "sid-1", time.Hour)
	c := w.Result().Cookies()[0]

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: c.Name, Value: "sid-2." + c.Value[len("sid-1."):]})

	if _, ok := ParseCookie(r, secret); ok {
		t.Error("tampered cookie must not parse")
	}
}

func TestParseCookie_RejectsWrongSecret(t *testing.T) {
	w := httptest.NewRecorder()
	SetCookie(w, secret, "sid-1", time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	if _, ok := ParseCookie(r, "other-secret"); ok {
		t.Error("cookie signed with a different secret must not parse")
	}
}

func TestParseCookie_Missing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := ParseCookie(r, secret); ok {
		t.Error("missing cookie must not parse")
	}
}

func TestUserContext(t *testing.T) {
	ctx := context.Background()
	if UserFromContext(ctx) != nil {
		t.Error("empty context should have no user")
	}

	user := &models.User{ID: "u1", Role: "admin"}
	ctx = WithUser(ctx, "sid-1", user)

	if got := UserFromContext(ctx); got == nil || got.ID != "u1" {
		t.Errorf("UserFromContext = %+v", got)
	}
	if sid, ok := SessionIDFromContext(ctx); !ok || sid != "sid-1" {
		t.Errorf("SessionIDFromContext = %q, %v", sid, ok)
	}
}
