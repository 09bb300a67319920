package handlers

import (
	"net/http"
	"strings"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/api"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/session"
)

type ClassHandler struct {
	Sessions *session.Manager
}

func NewClassHandler(s *session.Manager) *ClassHandler { return &ClassHandler{Sessions: s} }

// List: GET /classes
func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	classes, err := h.Sessions.Client(r).ListClasses(r.Context())
	if err != nil {
		renderTemplate(w, r, "classes/index", map[string]any{"Error": errMessage(err)})
		return
	}
	renderTemplate(w, r, "classes/index", withFlash(w, r, map[string]any{"Classes": classes}))
}

// Create: POST /classes
func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "invalid form submission")
		http.Redirect(w, r, "/classes", http.StatusSeeOther)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		setFlash(w, "class name is required")
		http.Redirect(w, r, "/classes", http.StatusSeeOther)
		return
	}
	in := api.ClassInput{Name: name, Section: strings.TrimSpace(r.FormValue("section"))}
	if _, err := h.Sessions.Client(r).CreateClass(r.Context(), in); err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, "/classes", http.StatusSeeOther)
		return
	}
	setFlash(w, "class created")
	http.Redirect(w, r, "/classes", http.StatusSeeOther)
}

// Delete: POST /classes/{id}/delete
func (h *ClassHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Sessions.Client(r).DeleteClass(r.Context(), id); err != nil {
		setFlash(w, errMessage(err))
	} else {
		setFlash(w, "class deleted")
	}
	http.Redirect(w, r, "/classes", http.StatusSeeOther)
}
