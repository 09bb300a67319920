package handlers

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/api"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/session"
)

type DashboardHandler struct {
	Sessions *session.Manager
}

func NewDashboardHandler(s *session.Manager) *DashboardHandler {
	return &DashboardHandler{Sessions: s}
}

// Home sends each role to its landing page.
func (h *DashboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, homeFor(user.Role), http.StatusSeeOther)
}

// Dashboard renders the management overview: headline counters, the daily
// sales chart, and recent dues. The three fetches are independent, so they
// run concurrently and the page waits for all of them.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	client := h.Sessions.Client(r)

	var (
		stats    *models.Stats
		overview []models.OverviewPoint
		due      []models.Invoice
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		stats, err = client.Stats(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		overview, err = client.Overview(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		due, err = client.DueInvoices(ctx, api.ListParams{Limit: 5})
		return err
	})
	if err := g.Wait(); err != nil {
		renderTemplate(w, r, "dashboard", map[string]any{"Error": errMessage(err)})
		return
	}

	renderTemplate(w, r, "dashboard", withFlash(w, r, map[string]any{
		"Stats":    stats,
		"Overview": overview,
		"Due":      due,
	}))
}

// My renders the signed-in student or teacher's own page: profile card,
// balance, dues, and purchase history.
func (h *DashboardHandler) My(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	client := h.Sessions.Client(r)

	invoices, err := client.UserInvoices(r.Context(), user.ID)
	if err != nil {
		renderTemplate(w, r, "my", map[string]any{"User": user, "Error": errMessage(err)})
		return
	}
	var pending float64
	for _, inv := range invoices {
		pending += inv.Pending()
	}
	renderTemplate(w, r, "my", withFlash(w, r, map[string]any{
		"User":         user,
		"Invoices":     invoices,
		"TotalPending": pending,
	}))
}
