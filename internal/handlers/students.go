package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/api"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/session"
)

type StudentHandler struct {
	Sessions *session.Manager
}

func NewStudentHandler(s *session.Manager) *StudentHandler { return &StudentHandler{Sessions: s} }

type userForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"omitempty,email"`
	Username string
	Password string
	ClassID  string
	Balance  float64
}

func parseUserForm(r *http.Request) userForm {
	return userForm{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
		ClassID:  r.FormValue("class"),
		Balance:  parseFloat(r.FormValue("balance")),
	}
}

func (f userForm) input() api.UserInput {
	return api.UserInput{
		Name:     f.Name,
		Email:    f.Email,
		Username: f.Username,
		Password: f.Password,
		ClassID:  f.ClassID,
		Balance:  f.Balance,
	}
}

func parseFloat(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}

// List: GET /students – search plus class filter, classes loaded for the
// filter dropdown and the create form.
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	client := h.Sessions.Client(r)
	params := api.ListParams{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Filter: r.URL.Query().Get("class"),
	}

	students, err := client.ListStudents(r.Context(), params)
	if err != nil {
		renderTemplate(w, r, "students/index", map[string]any{
			"Error":  errMessage(err),
			"Search": params.Search, "SelectedClass": params.Filter,
		})
		return
	}
	classes, _ := client.ListClasses(r.Context())

	renderTemplate(w, r, "students/index", withFlash(w, r, map[string]any{
		"Students":      students,
		"Classes":       classes,
		"Search":        params.Search,
		"SelectedClass": params.Filter,
	}))
}

// View: GET /students/{id} – profile card plus the student's invoices.
func (h *StudentHandler) View(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	client := h.Sessions.Client(r)

	invoices, err := client.UserInvoices(r.Context(), id)
	if err != nil {
		renderTemplate(w, r, "students/show", map[string]any{"Error": errMessage(err)})
		return
	}
	var pending float64
	for _, inv := range invoices {
		pending += inv.Pending()
	}

	data := map[string]any{"Invoices": invoices, "TotalPending": pending}
	// The listing payload embeds the user on each invoice; reuse it for the
	// profile card instead of a second round trip.
	if len(invoices) > 0 && invoices[0].User != nil {
		data["Student"] = invoices[0].User
	}
	renderTemplate(w, r, "students/show", withFlash(w, r, data))
}

// Create: POST /students
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "invalid form submission")
		http.Redirect(w, r, "/students", http.StatusSeeOther)
		return
	}
	form := parseUserForm(r)
	if err := validate.Struct(form); err != nil {
		setFlash(w, "name is required and email must be valid")
		http.Redirect(w, r, "/students", http.StatusSeeOther)
		return
	}
	if _, err := h.Sessions.Client(r).CreateStudent(r.Context(), form.input()); err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, "/students", http.StatusSeeOther)
		return
	}
	setFlash(w, "student created")
	http.Redirect(w, r, "/students", http.StatusSeeOther)
}

// Update: POST /students/{id}
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		setFlash(w, "invalid form submission")
		http.Redirect(w, r, "/students", http.StatusSeeOther)
		return
	}
	form := parseUserForm(r)
	if err := validate.Struct(form); err != nil {
		setFlash(w, "name is required and email must be valid")
		http.Redirect(w, r, "/students", http.StatusSeeOther)
		return
	}
	if err := h.Sessions.Client(r).UpdateStudent(r.Context(), id, form.input()); err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, "/students", http.StatusSeeOther)
		return
	}
	setFlash(w, "student updated")
	http.Redirect(w, r, "/students", http.StatusSeeOther)
}

// Delete: POST /students/{id}/delete
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Sessions.Client(r).DeleteStudent(r.Context(), id); err != nil {
		setFlash(w, errMessage(err))
	} else {
		setFlash(w, "student deleted")
	}
	http.Redirect(w, r, "/students", http.StatusSeeOther)
}
