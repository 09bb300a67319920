package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/gate"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/api"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/billing"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/config"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/pdfexport"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/session"
	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/upi"
)

type InvoiceHandler struct {
	Sessions *session.Manager
	App      config.AppConfig
}

func NewInvoiceHandler(s *session.Manager, app config.AppConfig) *InvoiceHandler {
	return &InvoiceHandler{Sessions: s, App: app}
}

// List: GET /invoices – filter switches between all, due, and paid views.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	client := h.Sessions.Client(r)
	filter := r.URL.Query().Get("filter")
	params := api.ListParams{Search: strings.TrimSpace(r.URL.Query().Get("search"))}

	var invoices []models.Invoice
	var err error
	switch filter {
	case "due":
		invoices, err = client.DueInvoices(r.Context(), params)
	case "paid":
		invoices, err = client.PaidInvoices(r.Context(), params)
	default:
		filter = "all"
		invoices, err = client.ListInvoices(r.Context(), params)
	}
	if err != nil {
		renderTemplate(w, r, "invoices/index", map[string]any{
			"Error":  errMessage(err),
			"Filter": filter,
			"Search": params.Search,
		})
		return
	}
	renderTemplate(w, r, "invoices/index", withFlash(w, r, map[string]any{
		"Invoices": invoices,
		"Filter":   filter,
		"Search":   params.Search,
	}))
}

// New: GET /invoices/new – the builder page. Products arrive through the
// autocomplete endpoint; the buyer picker needs the user lists up front.
func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) {
	client := h.Sessions.Client(r)
	students, err := client.ListStudents(r.Context(), api.ListParams{})
	if err != nil {
		renderTemplate(w, r, "invoices/new", map[string]any{"Error": errMessage(err)})
		return
	}
	teachers, _ := client.ListTeachers(r.Context(), api.ListParams{})
	renderTemplate(w, r, "invoices/new", map[string]any{
		"Students": students,
		"Teachers": teachers,
	})
}

// parseItems reads the parallel product/quantity/price form arrays the
// builder submits. Lines without a product or with a non-positive quantity
// are dropped.
func parseItems(r *http.Request) []api.InvoiceItemInput {
	products := r.Form["product"]
	quantities := r.Form["quantity"]
	prices := r.Form["price"]

	var items []api.InvoiceItemInput
	for i, pid := range products {
		pid = strings.TrimSpace(pid)
		if pid == "" {
			continue
		}
		qty := 0
		if i < len(quantities) {
			qty, _ = strconv.Atoi(strings.TrimSpace(quantities[i]))
		}
		if qty <= 0 {
			continue
		}
		var price float64
		if i < len(prices) {
			price = parseFloat(prices[i])
		}
		items = append(items, api.InvoiceItemInput{ProductID: pid, Quantity: qty, Price: price})
	}
	return items
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlash(w, "invalid form submission")
		http.Redirect(w, r, "/invoices/new", http.StatusSeeOther)
		return
	}
	userID := strings.TrimSpace(r.FormValue("user"))
	items := parseItems(r)
	if userID == "" || len(items) == 0 {
		setFlash(w, "a buyer and at least one item are required")
		http.Redirect(w, r, "/invoices/new", http.StatusSeeOther)
		return
	}

	created, err := h.Sessions.Client(r).CreateInvoice(r.Context(), api.InvoiceInput{UserID: userID, Items: items})
	if err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, "/invoices/new", http.StatusSeeOther)
		return
	}
	setFlash(w, "invoice created")
	http.Redirect(w, r, "/invoices/"+created.ID, http.StatusSeeOther)
}

// mayView reports whether the requester may open this invoice. Management
// roles see every invoice; students and teachers only their own. The same
// rule covers the detail page and its PDF and QR exports.
func mayView(user *models.User, inv *models.Invoice) bool {
	if user == nil {
		return false
	}
	if gate.RoleAllowed(user.Role, gate.ManagementRoles) {
		return true
	}
	return inv.User != nil && inv.User.ID == user.ID
}

// View: GET /invoices/{id}
func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Sessions.Client(r).Invoice(r.Context(), r.PathValue("id"))
	if err != nil {
		if api.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		renderTemplate(w, r, "invoices/show", map[string]any{"Error": errMessage(err)})
		return
	}
	if !mayView(currentUser(r), inv) {
		http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "invoices/show", withFlash(w, r, map[string]any{
		"Invoice": inv,
		"Pending": inv.Pending(),
	}))
}

// Update: POST /invoices/{id} – replaces the line items; the backend
// recomputes totals and its response stands.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		setFlash(w, "invalid form submission")
		http.Redirect(w, r, "/invoices/"+id, http.StatusSeeOther)
		return
	}
	items := parseItems(r)
	if len(items) == 0 {
		setFlash(w, "at least one item is required")
		http.Redirect(w, r, "/invoices/"+id, http.StatusSeeOther)
		return
	}
	if _, err := h.Sessions.Client(r).UpdateInvoice(r.Context(), id, items); err != nil {
		setFlash(w, errMessage(err))
	} else {
		setFlash(w, "invoice updated")
	}
	http.Redirect(w, r, "/invoices/"+id, http.StatusSeeOther)
}

// Delete: POST /invoices/{id}/delete
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Client(r).DeleteInvoice(r.Context(), r.PathValue("id")); err != nil {
		setFlash(w, errMessage(err))
	} else {
		setFlash(w, "invoice deleted")
	}
	http.Redirect(w, r, "/invoices", http.StatusSeeOther)
}

// PayPage: GET /invoices/{id}/pay – shows the pending amount, prefills the
// balance payment with min(pending, balance), and links the UPI QR.
func (h *InvoiceHandler) PayPage(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Sessions.Client(r).Invoice(r.Context(), r.PathValue("id"))
	if err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, "/invoices", http.StatusSeeOther)
		return
	}
	pending := inv.Pending()

	data := map[string]any{
		"Invoice":         inv,
		"Pending":         pending,
		"HasUPI":          h.App.UPIPayeeID != "",
		"Balance":         0.0,
		"BalanceAutofill": 0.0,
	}
	if inv.User != nil {
		data["BalanceAutofill"] = billing.BalanceAutofill(pending, inv.User.Balance)
		data["Balance"] = inv.User.Balance
	}
	renderTemplate(w, r, "invoices/pay", withFlash(w, r, data))
}

// Pay: POST /invoices/{id}/pay – validates bounds locally before the
// backend call, then refreshes the cached profile since balance and dues
// may have changed.
func (h *InvoiceHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	payURL := "/invoices/" + id + "/pay"
	if err := r.ParseForm(); err != nil {
		setFlash(w, "invalid form submission")
		http.Redirect(w, r, payURL, http.StatusSeeOther)
		return
	}
	amount := parseFloat(r.FormValue("amount"))
	fromBalance := r.FormValue("fromBalance") != ""

	client := h.Sessions.Client(r)
	inv, err := client.Invoice(r.Context(), id)
	if err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, payURL, http.StatusSeeOther)
		return
	}
	pending := inv.Pending()

	if fromBalance {
		balance := 0.0
		if inv.User != nil {
			balance = inv.User.Balance
		}
		err = billing.ValidateBalancePayment(amount, pending, balance)
	} else {
		err = billing.ValidatePayment(amount, pending)
	}
	if err != nil {
		setFlash(w, err.Error())
		http.Redirect(w, r, payURL, http.StatusSeeOther)
		return
	}

	if _, err := client.PayInvoice(r.Context(), id, api.PaymentInput{Amount: amount, FromBalance: fromBalance}); err != nil {
		setFlash(w, errMessage(err))
		http.Redirect(w, r, payURL, http.StatusSeeOther)
		return
	}
	// Balance and due amount changed server-side; refresh the cached copy.
	_, _ = h.Sessions.Refresh(r)
	setFlash(w, "payment recorded")
	http.Redirect(w, r, "/invoices/"+id, http.StatusSeeOther)
}

// QR: GET /invoices/{id}/qr.png – UPI QR for the pending amount.
func (h *InvoiceHandler) QR(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Sessions.Client(r).Invoice(r.Context(), r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if !mayView(currentUser(r), inv) {
		http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
		return
	}
	note := "Invoice"
	if inv.InvoiceNumber != "" {
		note = "Invoice " + inv.InvoiceNumber
	}
	png, err := upi.QRPNG(upi.Payment{
		PayeeID:   h.App.UPIPayeeID,
		PayeeName: h.App.UPIPayeeName,
		Amount:    inv.Pending(),
		Note:      note,
	}, 256)
	if err != nil {
		http.Error(w, "QR unavailable: "+err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

// PDF: GET /invoices/{id}/pdf
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Sessions.Client(r).Invoice(r.Context(), r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if !mayView(currentUser(r), inv) {
		http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
		return
	}
	data, err := pdfexport.Invoice(inv, h.App.UPIPayeeName)
	if err != nil {
		http.Error(w, "pdf generation failed", http.StatusInternalServerError)
		return
	}
	name := inv.InvoiceNumber
	if name == "" {
		name = inv.ID
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"invoice-"+name+".pdf\"")
	_, _ = w.Write(data)
}
