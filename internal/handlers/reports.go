package handlers

import (
	"net/http"
	"time"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/api"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/pdfexport"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/session"
)

type ReportHandler struct {
	Sessions *session.Manager
}

func NewReportHandler(s *session.Manager) *ReportHandler { return &ReportHandler{Sessions: s} }

func reportParams(r *http.Request) api.ListParams {
	params := api.ListParams{Filter: r.URL.Query().Get("filter")}
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
	return params
}

func (h *ReportHandler) fetch(r *http.Request, params api.ListParams) ([]models.Invoice, error) {
	client := h.Sessions.Client(r)
	switch params.Filter {
	case "due":
		return client.DueInvoices(r.Context(), params)
	case "paid":
		return client.PaidInvoices(r.Context(), params)
	default:
		return client.ReportAll(r.Context(), params)
	}
}

// Report: GET /reports – invoice totals over a date range, with the same
// all/due/paid filter as the list screen.
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	params := reportParams(r)
	invoices, err := h.fetch(r, params)
	if err != nil {
		renderTemplate(w, r, "reports/index", map[string]any{
			"Error": errMessage(err),
			"Total": 0.0, "Paid": 0.0, "Pending": 0.0,
			"Filter":    params.Filter,
			"StartDate": r.URL.Query().Get("startDate"),
			"EndDate":   r.URL.Query().Get("endDate"),
		})
		return
	}

	// Pending is summed per invoice so an overpaid one never offsets what
	// is still owed on the others.
	var total, paid, pending float64
	for _, inv := range invoices {
		total += inv.TotalAmount
		paid += inv.AmountPaid
		pending += inv.Pending()
	}
	renderTemplate(w, r, "reports/index", map[string]any{
		"Invoices":  invoices,
		"Total":     total,
		"Paid":      paid,
		"Pending":   pending,
		"Filter":    params.Filter,
		"StartDate": r.URL.Query().Get("startDate"),
		"EndDate":   r.URL.Query().Get("endDate"),
	})
}

// PDF: GET /reports/pdf – the current report view as a landscape table.
func (h *ReportHandler) PDF(w http.ResponseWriter, r *http.Request) {
	params := reportParams(r)
	invoices, err := h.fetch(r, params)
	if err != nil {
		http.Error(w, errMessage(err), http.StatusBadGateway)
		return
	}

	title := "Invoice Report"
	switch params.Filter {
	case "due":
		title = "Due Invoices Report"
	case "paid":
		title = "Paid Invoices Report"
	}
	data, err := pdfexport.Report(title, invoices)
	if err != nil {
		http.Error(w, "pdf generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	_, _ = w.Write(data)
}

// Balances: GET /reports/balances – every student's credit balance and due
// amount in one table.
func (h *ReportHandler) Balances(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Sessions.Client(r).StudentBalances(r.Context())
	if err != nil {
		renderTemplate(w, r, "reports/balances", map[string]any{
			"Error": errMessage(err), "TotalBalance": 0.0, "TotalDue": 0.0,
		})
		return
	}
	var balance, due float64
	for _, row := range rows {
		balance += row.Balance
		due += row.DueAmount
	}
	renderTemplate(w, r, "reports/balances", map[string]any{
		"Rows":         rows,
		"TotalBalance": balance,
		"TotalDue":     due,
	})
}
