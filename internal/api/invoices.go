package api

import (
	"context"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
)

// InvoiceItemInput is one line of a new or edited invoice. Price is the
// unit price snapshot taken when the item was added to the cart.
type InvoiceItemInput struct {
	ProductID string  `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// InvoiceInput creates an invoice for a user.
type InvoiceInput struct {
	UserID string             `json:"user"`
	Items  []InvoiceItemInput `json:"items"`
}

// PaymentInput applies a payment to an invoice. FromBalance asks the
// backend to draw the amount from the user's credit balance.
type PaymentInput struct {
	Amount      float64 `json:"amount"`
	FromBalance bool    `json:"fromBalance,omitempty"`
}

func (c *Client) ListInvoices(ctx context.Context, p ListParams) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := c.get(ctx, "/invoices", p.Values(), &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (c *Client) Invoice(ctx context.Context, id string) (*models.Invoice, error) {
	var inv models.Invoice
	if err := c.get(ctx, "/invoices/"+id, nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (c *Client) CreateInvoice(ctx context.Context, in InvoiceInput) (*models.Invoice, error) {
	var created models.Invoice
	if err := c.post(ctx, "/invoices", in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateInvoice patches the line items; the backend recomputes totals and
// its response is the source of truth.
func (c *Client) UpdateInvoice(ctx context.Context, id string, items []InvoiceItemInput) (*models.Invoice, error) {
	body := map[string]any{"items": items}
	var updated models.Invoice
	if err := c.patch(ctx, "/invoices/"+id, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteInvoice(ctx context.Context, id string) error {
	return c.delete(ctx, "/invoices/"+id)
}

// PayInvoice applies a payment. Client-side bounds are checked before this
// is called, but the backend may still reject for reasons the dashboard
// does not model; the server's message is surfaced unchanged.
func (c *Client) PayInvoice(ctx context.Context, id string, in PaymentInput) (*models.Invoice, error) {
	var updated models.Invoice
	if err := c.post(ctx, "/invoices/pay/"+id, in, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UserInvoices lists one user's invoices (the "my purchases" screen and the
// student detail page).
func (c *Client) UserInvoices(ctx context.Context, userID string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := c.get(ctx, "/invoices/user/"+userID, nil, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// Overview returns the dashboard chart buckets.
func (c *Client) Overview(ctx context.Context) ([]models.OverviewPoint, error) {
	var points []models.OverviewPoint
	if err := c.get(ctx, "/invoices/overview/data", nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *Client) ReportAll(ctx context.Context, p ListParams) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := c.get(ctx, "/invoices/report/all", p.Values(), &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (c *Client) DueInvoices(ctx context.Context, p ListParams) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := c.get(ctx, "/invoices/due/all", p.Values(), &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (c *Client) PaidInvoices(ctx context.Context, p ListParams) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := c.get(ctx, "/invoices/paid/all", p.Values(), &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// StudentBalances lists every student's credit balance and due amount.
func (c *Client) StudentBalances(ctx context.Context) ([]models.StudentBalance, error) {
	var rows []models.StudentBalance
	if err := c.get(ctx, "/invoices/students/balances", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Stats returns the dashboard headline counters.
func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.get(ctx, "/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
