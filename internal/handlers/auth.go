package handlers

import (
	"net/http"
	"strings"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/session"
)

type AuthHandler struct {
	Sessions *session.Manager
}

func NewAuthHandler(s *session.Manager) *AuthHandler { return &AuthHandler{Sessions: s} }

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Login: GET renders the form, POST exchanges credentials for a session.
// The redirect waits for both the token and the profile so the landing
// page never renders half-authenticated.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if user := currentUser(r); user != nil {
			http.Redirect(w, r, homeFor(user.Role), http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login", withFlash(w, r, nil))
		return
	}

	if err := r.ParseForm(); err != nil {
		renderTemplate(w, r, "login", map[string]any{"Error": "invalid form submission"})
		return
	}
	form := loginForm{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	if err := validate.Struct(form); err != nil {
		renderTemplate(w, r, "login", map[string]any{"Error": "a valid email and a password are required", "Email": form.Email})
		return
	}

	user, err := h.Sessions.Login(r.Context(), w, form.Email, form.Password)
	if err != nil {
		renderTemplate(w, r, "login", map[string]any{"Error": errMessage(err), "Email": form.Email})
		return
	}
	http.Redirect(w, r, homeFor(user.Role), http.StatusSeeOther)
}

// Logout clears the session row and cookie, then redirects. The backend
// token is not revoked; it simply expires server-side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Unauthorized is the landing page for authenticated users who hit a route
// outside their role.
func (h *AuthHandler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusForbidden)
	renderTemplate(w, r, "unauthorized", nil)
}
