package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kasaops/treasury/internal/core/domain"
)

// PayDocumentRequest defines the data needed to record a document payment.
// The idempotency key is the caller's retry token: resubmitting the same key
// replays the prior result without posting a second movement.
type PayDocumentRequest struct {
	DocumentID     string              `json:"documentID" binding:"required"`
	DocumentKind   domain.DocumentKind `json:"documentKind" binding:"required,oneof=INVOICE EXPENSE OTHER"`
	TotalDue       decimal.Decimal     `json:"totalDue" binding:"required,decimal_positive"`
	AccountID      string              `json:"accountID" binding:"required"`
	Amount         decimal.Decimal     `json:"amount" binding:"required,decimal_positive"`
	Date           time.Time           `json:"date" binding:"required"`
	IdempotencyKey string              `json:"idempotencyKey" binding:"required"`
}

// PaymentResultResponse is the derived reconciliation state returned after a
// payment posting or a status query.
type PaymentResultResponse struct {
	DocumentID string               `json:"documentID"`
	Status     domain.PaymentStatus `json:"status"`
	AmountPaid decimal.Decimal      `json:"amountPaid"`
	Remaining  decimal.Decimal      `json:"remaining"`
	MovementID string               `json:"movementID,omitempty"` // Movement created (or replayed) by PayDocument
	Replayed   bool                 `json:"replayed,omitempty"`   // True when an idempotency key was reused
}

// GetPaymentStatusParams defines query parameters for a payment status query.
type GetPaymentStatusParams struct {
	TotalDue decimal.Decimal `form:"totalDue" binding:"required"`
}
