// Package billing holds the invoice arithmetic shared by every screen.
// The backend remains the authority on stored totals; these functions exist
// for optimistic display and pre-submission validation, and every consumer
// must go through this package rather than reimplementing the formula.
package billing

import "errors"

// Line is one invoice line item: a quantity at the unit price snapshotted
// when the item was added (never a live product price).
type Line struct {
	Quantity  int
	UnitPrice float64
}

// Validation errors surfaced to the user before any network call is made.
var (
	ErrNonPositiveAmount   = errors.New("payment amount must be a positive number")
	ErrExceedsPending      = errors.New("payment amount exceeds pending balance")
	ErrInsufficientBalance = errors.New("insufficient balance for this payment")
)

// Invoice payment status as the backend reports it.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)

// Total sums quantity × unit price over the lines. An empty list totals 0.
func Total(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += float64(l.Quantity) * l.UnitPrice
	}
	return total
}

// Pending is the unpaid remainder, clamped at zero so an overpaid invoice
// never shows a negative balance.
func Pending(total, paid float64) float64 {
	if pending := total - paid; pending > 0 {
		return pending
	}
	return 0
}

// Status derives the display status from the amounts.
func Status(total, paid float64) string {
	if Pending(total, paid) == 0 {
		return StatusPaid
	}
	return StatusPending
}

// ValidatePayment checks a requested payment against the pending balance.
// Amounts must be strictly positive and at most pending; paying exactly the
// pending amount is accepted.
func ValidatePayment(amount, pending float64) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	if amount > pending {
		return ErrExceedsPending
	}
	return nil
}

// BalanceAutofill is the amount pre-filled when "pay from balance" is
// selected: the whole pending amount if the balance covers it, otherwise
// everything the balance has.
func BalanceAutofill(pending, balance float64) float64 {
	if balance < pending {
		return balance
	}
	return pending
}

// ValidateBalancePayment applies the pending-balance bounds and additionally
// requires the user's credit balance to cover the amount.
func ValidateBalancePayment(amount, pending, balance float64) error {
	if err := ValidatePayment(amount, pending); err != nil {
		return err
	}
	if amount > balance {
		return ErrInsufficientBalance
	}
	return nil
}
