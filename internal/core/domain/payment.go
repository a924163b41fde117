package domain

import (
	"github.com/shopspring/decimal"
)

// DocumentKind classifies the document a payment reconciles against.
type DocumentKind string

const (
	DocInvoice DocumentKind = "INVOICE"
	DocExpense DocumentKind = "EXPENSE"
	DocOther   DocumentKind = "OTHER"
)

// PaymentStatus is the derived reconciliation state of a document.
type PaymentStatus string

const (
	StatusUnpaid   PaymentStatus = "UNPAID"
	StatusPartial  PaymentStatus = "PARTIAL"
	StatusPaid     PaymentStatus = "PAID"
	StatusOverpaid PaymentStatus = "OVERPAID"
)

// DocumentPayment is a logical aggregate over the movement log, never a
// stored mutable total. Status and AmountPaid are always recomputed by
// folding the movements whose source reference equals the document ID, so
// there is no stored field that can drift from the log.
type DocumentPayment struct {
	DocumentID   string          `json:"documentID"`
	DocumentKind DocumentKind    `json:"documentKind"`
	TotalDue     decimal.Decimal `json:"totalDue"`
	CurrencyCode string          `json:"currencyCode"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
	Remaining    decimal.Decimal `json:"remaining"`
	Status       PaymentStatus   `json:"status"`
}

// DerivePaymentStatus maps an amount paid against the total due.
// Overpayment is accepted, not rejected; callers decide how to reconcile it.
func DerivePaymentStatus(totalDue, amountPaid decimal.Decimal) PaymentStatus {
	switch {
	case amountPaid.IsZero() || amountPaid.IsNegative():
		return StatusUnpaid
	case amountPaid.LessThan(totalDue):
		return StatusPartial
	case amountPaid.Equal(totalDue):
		return StatusPaid
	default:
		return StatusOverpaid
	}
}

// DeriveDocumentPayment folds the ordered movements for a document into the
// aggregate. Reversal pairs cancel out naturally because the fold sums
// signed amounts.
func DeriveDocumentPayment(documentID string, kind DocumentKind, totalDue decimal.Decimal, currency string, movements []AccountMovement) DocumentPayment {
	paid := decimal.Zero
	for _, m := range movements {
		paid = paid.Add(m.Amount)
	}
	return DocumentPayment{
		DocumentID:   documentID,
		DocumentKind: kind,
		TotalDue:     totalDue,
		CurrencyCode: currency,
		AmountPaid:   paid,
		Remaining:    totalDue.Sub(paid),
		Status:       DerivePaymentStatus(totalDue, paid),
	}
}
