package handlers

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/api"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/session"
)

// PermissionHandler is the super-admin grants screen: the permission
// catalog lives on the backend and a user's grant list is replaced
// wholesale on save. GrantsChanged is notified after every successful save
// so cached authorization profiles can be dropped.
type PermissionHandler struct {
	Sessions      *session.Manager
	GrantsChanged func()
}

func NewPermissionHandler(s *session.Manager, grantsChanged func()) *PermissionHandler {
	return &PermissionHandler{Sessions: s, GrantsChanged: grantsChanged}
}

// List: GET /permissions
func (h *PermissionHandler) List(w http.ResponseWriter, r *http.Request) {
	client := h.Sessions.Client(r)

	var (
		users []models.User
		perms []models.Permission
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		users, err = client.ListUsers(ctx, api.ListParams{})
		return err
	})
	g.Go(func() error {
		var err error
		perms, err = client.ListPermissions(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		renderTemplate(w, r, "permissions/index", map[string]any{"Error": errMessage(err)})
		return
	}

	renderTemplate(w, r, "permissions/index", withFlash(w, r, map[string]any{
		"Users":       users,
		"Permissions": perms,
	}))
}

// Save: POST /permissions/{id} – the checked permission ids replace the
// user's current grants; unchecked means revoked.
func (h *PermissionHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		setFlash(w, "invalid form submission")
		http.Redirect(w, r, "/permissions", http.StatusSeeOther)
		return
	}
	ids := r.Form["permission"]
	if ids == nil {
		ids = []string{}
	}
	if err := h.Sessions.Client(r).SetUserPermissions(r.Context(), userID, ids); err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, "/permissions", http.StatusSeeOther)
		return
	}
	if h.GrantsChanged != nil {
		h.GrantsChanged()
	}
	setFlash(w, "permissions updated")
	http.Redirect(w, r, "/permissions", http.StatusSeeOther)
}
