package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SourceKind identifies what caused a movement to be posted.
type SourceKind string

const (
	SourceDocumentPayment SourceKind = "DOCUMENT_PAYMENT"
	SourceTransfer        SourceKind = "TRANSFER"
	SourceAdjustment      SourceKind = "ADJUSTMENT"
	SourceReversal        SourceKind = "REVERSAL"
)

// AccountMovement is a single immutable, signed, dated entry in an account's
// ledger. Positive amounts are inflows, negative amounts are outflows.
// Movements are never mutated or deleted after creation; undoing one means
// posting an opposite-signed reversal and annotating both sides with the
// reversal links.
type AccountMovement struct {
	MovementID   string          `json:"movementID"`   // Primary Key (UUID)
	AccountID    string          `json:"accountID"`    // FK -> payment_accounts.account_id
	EntityID     string          `json:"entityID"`     // Denormalized owning entity, used by period checks and reporting
	Amount       decimal.Decimal `json:"amount"`       // Signed; never zero
	CurrencyCode string          `json:"currencyCode"` // Matches the account currency
	PostingDate  time.Time       `json:"postingDate"`  // Date the movement belongs to, drives period checks
	SourceKind   SourceKind      `json:"sourceKind"`
	SourceRef    string          `json:"sourceRef"` // Document ID, transfer ID or reversed movement ID
	Reason       string          `json:"reason"`    // Mandatory for adjustments, empty otherwise

	// IdempotencyKey is set only on document-payment movements; it is the
	// sole cross-retry deduplication guard.
	IdempotencyKey *string `json:"idempotencyKey,omitempty"`

	ReversesMovementID   *string `json:"reversesMovementID,omitempty"`   // Set on the reversal side
	ReversedByMovementID *string `json:"reversedByMovementID,omitempty"` // Set on the original once reversed

	AuditFields
}

// IsReversed reports whether a reversal has already been posted for this movement.
func (m AccountMovement) IsReversed() bool {
	return m.ReversedByMovementID != nil && *m.ReversedByMovementID != ""
}

// IsReversal reports whether this movement itself reverses another one.
// A reversal may never be reversed directly.
func (m AccountMovement) IsReversal() bool {
	return m.SourceKind == SourceReversal
}

// LessCanonical implements the canonical total order
// (postingDate, createdAt, movementID) ascending. Every derived computation
// folds movements in this order so results are deterministic regardless of
// storage iteration order.
func LessCanonical(a, b AccountMovement) bool {
	if !a.PostingDate.Equal(b.PostingDate) {
		return a.PostingDate.Before(b.PostingDate)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.MovementID < b.MovementID
}

// SortCanonical sorts movements in place into the canonical total order.
func SortCanonical(movements []AccountMovement) {
	sort.Slice(movements, func(i, j int) bool {
		return LessCanonical(movements[i], movements[j])
	})
}

// FoldBalance computes the balance as of the given date by summing signed
// amounts of all movements with posting date <= asOf. A zero asOf means no
// cutoff. Addition is commutative, so the result is independent of input
// order; the canonical order matters for listings and running balances, not
// for the sum itself.
func FoldBalance(movements []AccountMovement, asOf time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range movements {
		if !asOf.IsZero() && m.PostingDate.After(asOf) {
			continue
		}
		sum = sum.Add(m.Amount)
	}
	return sum
}
