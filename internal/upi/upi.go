// Package upi builds UPI payment deep links and QR codes. Everything here
// is client-side rendering of the UPI URI scheme; no payment network call
// is made.
package upi

import (
	"errors"
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

// Payment is the payee and amount encoded into a deep link.
type Payment struct {
	PayeeID   string  // virtual payment address, e.g. "shop@upi"
	PayeeName string
	Amount    float64
	Note      string
}

var ErrNoPayee = errors.New("upi payee id is not configured")

// URI renders the upi://pay deep link with the payee, amount, and note as
// URL parameters.
func URI(p Payment) (string, error) {
	if p.PayeeID == "" {
		return "", ErrNoPayee
	}
	q := url.Values{}
	q.Set("pa", p.PayeeID)
	if p.PayeeName != "" {
		q.Set("pn", p.PayeeName)
	}
	if p.Amount > 0 {
		q.Set("am", fmt.Sprintf("%.2f", p.Amount))
	}
	if p.Note != "" {
		q.Set("tn", p.Note)
	}
	q.Set("cu", "INR")
	return "upi://pay?" + q.Encode(), nil
}

// QRPNG renders the deep link as a PNG QR code of the given size in pixels.
func QRPNG(p Payment, size int) ([]byte, error) {
	uri, err := URI(p)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(uri, qrcode.Medium, size)
}
