package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/api"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/session"
)

// maxBillSize caps the uploaded bill image or PDF at 10 MiB.
const maxBillSize = 10 << 20

type PurchaseHandler struct {
	Sessions *session.Manager
}

func NewPurchaseHandler(s *session.Manager) *PurchaseHandler { return &PurchaseHandler{Sessions: s} }

// List: GET /purchases – stock purchase log with optional date range.
func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	client := h.Sessions.Client(r)
	params := api.ListParams{}
	if v := r.URL.Query().Get("startDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			params.StartDate = t
		}
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			params.EndDate = t
		}
	}

	purchases, err := client.ListPurchases(r.Context(), params)
	if err != nil {
		renderTemplate(w, r, "purchases/index", map[string]any{
			"Error":     errMessage(err),
			"Total":     0.0,
			"StartDate": r.URL.Query().Get("startDate"),
			"EndDate":   r.URL.Query().Get("endDate"),
		})
		return
	}
	shops, _ := client.ListShops(r.Context())

	var total float64
	for _, p := range purchases {
		total += p.Amount
	}
	renderTemplate(w, r, "purchases/index", withFlash(w, r, map[string]any{
		"Purchases": purchases,
		"Shops":     shops,
		"Total":     total,
		"StartDate": r.URL.Query().Get("startDate"),
		"EndDate":   r.URL.Query().Get("endDate"),
	}))
}

// Create: POST /purchases – multipart form; the bill file is streamed
// through to the backend unchanged.
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxBillSize); err != nil {
		setFlash(w, "invalid upload, the bill must be under 10 MB")
		http.Redirect(w, r, "/purchases", http.StatusSeeOther)
		return
	}
	in := api.PurchaseInput{
		ShopID:      r.FormValue("shop"),
		Amount:      strings.TrimSpace(r.FormValue("amount")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Date:        r.FormValue("date"),
	}
	if in.ShopID == "" || in.Amount == "" {
		setFlash(w, "shop and amount are required")
		http.Redirect(w, r, "/purchases", http.StatusSeeOther)
		return
	}

	var bill io.Reader
	var billName string
	if file, header, err := r.FormFile("bill"); err == nil {
		defer file.Close()
		bill = file
		billName = header.Filename
	}

	if _, err := h.Sessions.Client(r).CreatePurchase(r.Context(), in, billName, bill); err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, "/purchases", http.StatusSeeOther)
		return
	}
	setFlash(w, "purchase recorded")
	http.Redirect(w, r, "/purchases", http.StatusSeeOther)
}

// Delete: POST /purchases/{id}/delete
func (h *PurchaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Sessions.Client(r).DeletePurchase(r.Context(), id); err != nil {
		setFlash(w, errMessage(err))
	} else {
		setFlash(w, "purchase deleted")
	}
	http.Redirect(w, r, "/purchases", http.StatusSeeOther)
}
