package handlers

import (
	"net/http"
	"strings"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/api"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/session"
)

type TeacherHandler struct {
	Sessions *session.Manager
}

func NewTeacherHandler(s *session.Manager) *TeacherHandler { return &TeacherHandler{Sessions: s} }

// List: GET /teachers
func (h *TeacherHandler) List(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	teachers, err := h.Sessions.Client(r).ListTeachers(r.Context(), api.ListParams{Search: search})
	if err != nil {
		renderTemplate(w, r, "teachers/index", map[string]any{"Error": errMessage(err), "Search": search})
		return
	}
	renderTemplate(w, r, "teachers/index", withFlash(w, r, map[string]any{
		"Teachers": teachers,
		"Search":   search,
	}))
}

// Create: POST /teachers
func (h *TeacherHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "invalid form submission")
		http.Redirect(w, r, "/teachers", http.StatusSeeOther)
		return
	}
	form := parseUserForm(r)
	if err := validate.Struct(form); err != nil {
		setFlash(w, "name is required and email must be valid")
		http.Redirect(w, r, "/teachers", http.StatusSeeOther)
		return
	}
	if _, err := h.Sessions.Client(r).CreateTeacher(r.Context(), form.input()); err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, "/teachers", http.StatusSeeOther)
		return
	}
	setFlash(w, "teacher created")
	http.Redirect(w, r, "/teachers", http.StatusSeeOther)
}

// Update: POST /teachers/{id}
func (h *TeacherHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		setFlash(w, "invalid form submission")
		http.Redirect(w, r, "/teachers", http.StatusSeeOther)
		return
	}
	form := parseUserForm(r)
	if err := validate.Struct(form); err != nil {
		setFlash(w, "name is required and email must be valid")
		http.Redirect(w, r, "/teachers", http.StatusSeeOther)
		return
	}
	if err := h.Sessions.Client(r).UpdateTeacher(r.Context(), id, form.input()); err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, "/teachers", http.StatusSeeOther)
		return
	}
	setFlash(w, "teacher updated")
	http.Redirect(w, r, "/teachers", http.StatusSeeOther)
}

// Delete: POST /teachers/{id}/delete
func (h *TeacherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Sessions.Client(r).DeleteTeacher(r.Context(), id); err != nil {
		setFlash(w, errMessage(err))
	} else {
		setFlash(w, "teacher deleted")
	}
	http.Redirect(w, r, "/teachers", http.StatusSeeOther)
}
