package handlers

import (
	"net/http"
	"strings"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/api"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/session"
)

type ShopHandler struct {
	Sessions *session.Manager
}

func NewShopHandler(s *session.Manager) *ShopHandler { return &ShopHandler{Sessions: s} }

func parseShopForm(r *http.Request) api.ShopInput {
	return api.ShopInput{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Address: strings.TrimSpace(r.FormValue("address")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
	}
}

// List: GET /shops
func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	shops, err := h.Sessions.Client(r).ListShops(r.Context())
	if err != nil {
		renderTemplate(w, r, "shops/index", map[string]any{"Error": errMessage(err)})
		return
	}
	renderTemplate(w, r, "shops/index", withFlash(w, r, map[string]any{"Shops": shops}))
}

// Create: POST /shops
func (h *ShopHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "invalid form submission")
		http.Redirect(w, r, "/shops", http.StatusSeeOther)
		return
	}
	in := parseShopForm(r)
	if in.Name == "" {
		setFlash(w, "shop name is required")
		http.Redirect(w, r, "/shops", http.StatusSeeOther)
		return
	}
	if _, err := h.Sessions.Client(r).CreateShop(r.Context(), in); err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, "/shops", http.StatusSeeOther)
		return
	}
	setFlash(w, "shop created")
	http.Redirect(w, r, "/shops", http.StatusSeeOther)
}

// Update: POST /shops/{id}
func (h *ShopHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		setFlash(w, "invalid form submission")
		http.Redirect(w, r, "/shops", http.StatusSeeOther)
		return
	}
	in := parseShopForm(r)
	if in.Name == "" {
		setFlash(w, "shop name is required")
		http.Redirect(w, r, "/shops", http.StatusSeeOther)
		return
	}
	if err := h.Sessions.Client(r).UpdateShop(r.Context(), id, in); err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, "/shops", http.StatusSeeOther)
		return
	}
	setFlash(w, "shop updated")
	http.Redirect(w, r, "/shops", http.StatusSeeOther)
}

// Delete: POST /shops/{id}/delete
func (h *ShopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Sessions.Client(r).DeleteShop(r.Context(), id); err != nil {
		setFlash(w, errMessage(err))
	} else {
		setFlash(w, "shop deleted")
	}
	http.Redirect(w, r, "/shops", http.StatusSeeOther)
}
