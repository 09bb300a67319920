package models

import (
	"time"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/billing"
)

// Invoice mirrors the backend invoice document. TotalAmount and Status are
// backend-supplied; the Subtotal/Pending helpers recompute locally for
// optimistic display between a mutation and the next refetch.
type Invoice struct {
	ID            string        `json:"_id"`
	InvoiceNumber string        `json:"invoiceNumber,omitempty"`
	User          *User         `json:"user,omitempty"`
	Items         []InvoiceItem `json:"items"`
	TotalAmount   float64       `json:"totalAmount"`
	AmountPaid    float64       `json:"amountPaid"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt,omitempty"`
}

// InvoiceItem is one ordered line: a product reference with the quantity and
// the unit price snapshotted at purchase time.
type InvoiceItem struct {
	ID       string   `json:"_id,omitempty"`
	Product  *Product `json:"product,omitempty"`
	Quantity int      `json:"quantity"`
	Price    float64  `json:"price"`
}

// Lines converts the items to billing lines using the stored price
// snapshots, never a live product price.
func (inv *Invoice) Lines() []billing.Line {
	lines := make([]billing.Line, 0, len(inv.Items))
	for _, it := range inv.Items {
		lines = append(lines, billing.Line{Quantity: it.Quantity, UnitPrice: it.Price})
	}
	return lines
}

// Subtotal recomputes Σ quantity × price over the line items.
func (inv *Invoice) Subtotal() float64 {
	return billing.Total(inv.Lines())
}

// Pending is the unpaid remainder, never negative.
func (inv *Invoice) Pending() float64 {
	return billing.Pending(inv.TotalAmount, inv.AmountPaid)
}

// IsPaid reports whether the backend marked the invoice settled.
func (inv *Invoice) IsPaid() bool {
	return inv.Status == billing.StatusPaid
}

// ProductTitle is a template convenience for items whose product reference
// was deleted server-side.
func (it InvoiceItem) ProductTitle() string {
	if it.Product == nil {
		return "(removed product)"
	}
	return it.Product.Title
}

// LineTotal is quantity × snapshot price for one line.
func (it InvoiceItem) LineTotal() float64 {
	return float64(it.Quantity) * it.Price
}
