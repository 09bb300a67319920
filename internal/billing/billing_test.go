package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		want  float64
	}{
		{"empty list", nil, 0},
		{"single line", []Line{{Quantity: 2, UnitPrice: 50}}, 100},
		{"multiple lines", []Line{{Quantity: 3, UnitPrice: 10}, {Quantity: 1, UnitPrice: 12.5}, {Quantity: 4, UnitPrice: 0.75}}, 45.5},
		{"zero quantity line", []Line{{Quantity: 0, UnitPrice: 99}}, 0},
		{"free item", []Line{{Quantity: 5, UnitPrice: 0}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Total(tt.lines), 1e-9)
		})
	}
}

func TestPending(t *testing.T) {
	tests := []struct {
		name        string
		total, paid float64
		want        float64
	}{
		{"nothing paid", 500, 0, 500},
		{"partially paid", 500, 200, 300},
		{"fully paid", 500, 500, 0},
		{"overpaid clamps to zero", 500, 700, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pending(tt.total, tt.paid))
		})
	}
}

func TestStatus(t *testing.T) {
	assert.Equal(t, StatusPending, Status(500, 200))
	assert.Equal(t, StatusPaid, Status(500, 500))
	assert.Equal(t, StatusPaid, Status(500, 700))
	assert.Equal(t, StatusPaid, Status(0, 0))
}

func TestValidatePayment(t *testing.T) {
	assert.ErrorIs(t, ValidatePayment(0, 100), ErrNonPositiveAmount)
	assert.ErrorIs(t, ValidatePayment(-5, 100), ErrNonPositiveAmount)
	assert.ErrorIs(t, ValidatePayment(101, 100), ErrExceedsPending)
	assert.NoError(t, ValidatePayment(100, 100), "paying exactly the pending amount is accepted")
	assert.NoError(t, ValidatePayment(1, 100))
}

func TestBalanceAutofill(t *testing.T) {
	assert.Equal(t, 100.0, BalanceAutofill(100, 250), "balance covers pending")
	assert.Equal(t, 60.0, BalanceAutofill(100, 60), "balance smaller than pending")
	assert.Equal(t, 0.0, BalanceAutofill(0, 500))
	assert.Equal(t, 0.0, BalanceAutofill(100, 0))
}

func TestValidateBalancePayment(t *testing.T) {
	assert.NoError(t, ValidateBalancePayment(60, 100, 60))
	assert.ErrorIs(t, ValidateBalancePayment(61, 100, 60), ErrInsufficientBalance)
	assert.ErrorIs(t, ValidateBalancePayment(0, 100, 60), ErrNonPositiveAmount)
	assert.ErrorIs(t, ValidateBalancePayment(150, 100, 500), ErrExceedsPending)
}
