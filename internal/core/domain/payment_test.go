package domain_test

import (
	"testing"
	"time"

	"github.com/kasaops/treasury/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name       string
		totalDue   string
		amountPaid string
		want       domain.PaymentStatus
	}{
		{name: "nothing paid", totalDue: "1000", amountPaid: "0", want: domain.StatusUnpaid},
		{name: "net negative after reversals", totalDue: "1000", amountPaid: "-50", want: domain.StatusUnpaid},
		{name: "partially paid", totalDue: "1000", amountPaid: "400", want: domain.StatusPartial},
		{name: "paid exactly", totalDue: "1000", amountPaid: "1000", want: domain.StatusPaid},
		{name: "paid exactly with differing scale", totalDue: "1000", amountPaid: "1000.00", want: domain.StatusPaid},
		{name: "overpaid", totalDue: "1000", amountPaid: "1000.01", want: domain.StatusOverpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DerivePaymentStatus(
				decimal.RequireFromString(tt.totalDue),
				decimal.RequireFromString(tt.amountPaid),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveDocumentPayment(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	payment := func(id, amount string) domain.AccountMovement {
		m := mv(id, day, created, amount)
		m.SourceKind = domain.SourceDocumentPayment
		m.SourceRef = "inv-77"
		m.CurrencyCode = "PLN"
		return m
	}

	t.Run("two installments settle an invoice", func(t *testing.T) {
		totalDue := decimal.RequireFromString("1000")

		first := domain.DeriveDocumentPayment("inv-77", domain.DocInvoice, totalDue, "PLN",
			[]domain.AccountMovement{payment("m1", "400")})
		assert.Equal(t, domain.StatusPartial, first.Status)
		assert.True(t, first.AmountPaid.Equal(decimal.RequireFromString("400")))
		assert.True(t, first.Remaining.Equal(decimal.RequireFromString("600")))

		second := domain.DeriveDocumentPayment("inv-77", domain.DocInvoice, totalDue, "PLN",
			[]domain.AccountMovement{payment("m1", "400"), payment("m2", "600")})
		assert.Equal(t, domain.StatusPaid, second.Status)
		assert.True(t, second.AmountPaid.Equal(totalDue))
		assert.True(t, second.Remaining.IsZero())
	})

	t.Run("reversed installment drops back to unpaid", func(t *testing.T) {
		reversal := mv("m3", day, created.Add(time.Hour), "-400")
		reversal.SourceKind = domain.SourceReversal
		reversal.ReversesMovementID = strPtr("m1")

		got := domain.DeriveDocumentPayment("inv-77", domain.DocInvoice, decimal.RequireFromString("1000"), "PLN",
			[]domain.AccountMovement{payment("m1", "400"), reversal})
		assert.Equal(t, domain.StatusUnpaid, got.Status)
		assert.True(t, got.AmountPaid.IsZero())
		assert.True(t, got.Remaining.Equal(decimal.RequireFromString("1000")))
	})

	t.Run("no movements means unpaid", func(t *testing.T) {
		got := domain.DeriveDocumentPayment("inv-77", domain.DocInvoice, decimal.RequireFromString("1000"), "PLN", nil)
		assert.Equal(t, domain.StatusUnpaid, got.Status)
		assert.True(t, got.AmountPaid.IsZero())
	})

	t.Run("overpayment is surfaced, not rejected", func(t *testing.T) {
		got := domain.DeriveDocumentPayment("inv-77", domain.DocInvoice, decimal.RequireFromString("1000"), "PLN",
			[]domain.AccountMovement{payment("m1", "400"), payment("m2", "700")})
		assert.Equal(t, domain.StatusOverpaid, got.Status)
		assert.True(t, got.Remaining.Equal(decimal.RequireFromString("-100")))
	})
}
