package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kasaops/treasury/internal/dto"
)

// PaymentSvcFacade maps document payment requests to ledger movements and
// derives payment status from the movement log.
type PaymentSvcFacade interface {
	// PayDocument records one payment toward a document. Replaying an
	// idempotency key returns the prior result unchanged with Replayed set.
	PayDocument(ctx context.Context, entityID string, req dto.PayDocumentRequest, actor string) (*dto.PaymentResultResponse, error)

	// GetPaymentStatus recomputes the document's reconciliation state from
	// the movement log. Pure read.
	GetPaymentStatus(ctx context.Context, entityID string, documentID string, totalDue decimal.Decimal) (*dto.PaymentResultResponse, error)
}
