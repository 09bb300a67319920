// Package pdfexport renders invoices and reports as tabular PDFs, entirely
// client-side with no server round trip.
package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
)

const currency = "Rs."

// Invoice renders one invoice with its line items and payment summary.
func Invoice(inv *models.Invoice, shopName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, shopName)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	title := "Invoice"
	if inv.InvoiceNumber != "" {
		title = "Invoice " + inv.InvoiceNumber
	}
	pdf.Cell(0, 8, title)
	pdf.Ln(6)
	if inv.User != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Billed to: %s", inv.User.Name))
		pdf.Ln(6)
	}
	if !inv.CreatedAt.IsZero() {
		pdf.Cell(0, 8, "Date: "+inv.CreatedAt.Format("02 Jan 2006"))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Items table
	header := []struct {
		label string
		width float64
	}{
		{"Item", 90}, {"Qty", 20}, {"Price", 35}, {"Total", 35},
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for _, h := range header {
		pdf.CellFormat(h.width, 8, h.label, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(90, 8, item.ProductTitle(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, money(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, money(item.LineTotal()), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	// Totals block
	pdf.SetFont("Helvetica", "B", 10)
	summary := []struct {
		label string
		value float64
	}{
		{"Total", inv.TotalAmount},
		{"Paid", inv.AmountPaid},
		{"Pending", inv.Pending()},
	}
	for _, row := range summary {
		pdf.CellFormat(145, 8, row.label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, money(row.value), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Report renders an invoice listing (due, paid, or all) as one table.
func Report(title string, invoices []models.Invoice) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(10)

	widths := []float64{70, 45, 35, 35, 35, 30}
	labels := []string{"Student", "Date", "Total", "Paid", "Pending", "Status"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for i, label := range labels {
		pdf.CellFormat(widths[i], 8, label, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	var total, paid float64
	for _, inv := range invoices {
		name := ""
		if inv.User != nil {
			name = inv.User.Name
		}
		date := ""
		if !inv.CreatedAt.IsZero() {
			date = inv.CreatedAt.Format("02 Jan 2006")
		}
		pdf.CellFormat(widths[0], 8, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, money(inv.TotalAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, money(inv.AmountPaid), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 8, money(inv.Pending()), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 8, inv.Status, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
		total += inv.TotalAmount
		paid += inv.AmountPaid
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0]+widths[1], 8, fmt.Sprintf("%d invoices", len(invoices)), "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[2], 8, money(total), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 8, money(paid), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4]+widths[5], 8, money(total-paid), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func money(v float64) string {
	return fmt.Sprintf("%s %.2f", currency, v)
}
