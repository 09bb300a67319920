// Package handlers contains the HTTP handlers for every dashboard screen.
// Handlers never own business state: reads and writes go to the backend API
// through the session-bound client, and pages re-render from fresh fetches
// after each mutation.
package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/auth"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/gate"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/api"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/view"
)

var validate = validator.New()

// renderTemplate uses the shared view.Render to ensure layout, partials,
// funcs, and caching.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, name+".html", data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template error")); werr != nil {
			_ = werr
		}
	}
}

// setFlash stores a one-shot message shown on the next rendered page.
func setFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "flash",
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlash reads and clears the flash cookie.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie("flash")
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: "flash", Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	if dec, derr := url.QueryUnescape(c.Value); derr == nil {
		return dec
	}
	return c.Value
}

// withFlash injects the pending flash message into page data.
func withFlash(w http.ResponseWriter, r *http.Request, data map[string]any) map[string]any {
	if data == nil {
		data = map[string]any{}
	}
	if msg := popFlash(w, r); msg != "" {
		data["Flash"] = msg
	}
	return data
}

// errMessage renders backend errors with the server's own message where one
// exists, so the user sees what the API actually said.
func errMessage(err error) string {
	return api.Message(err)
}

// currentUser is shorthand for the middleware-restored session user.
func currentUser(r *http.Request) *models.User {
	return auth.UserFromContext(r.Context())
}

// homeFor returns the landing route for a role: management goes to the
// dashboard, students and teachers to their own purchases page.
func homeFor(role gate.Role) string {
	if gate.RoleAllowed(role, gate.ManagementRoles) {
		return "/dashboard"
	}
	return "/my"
}
