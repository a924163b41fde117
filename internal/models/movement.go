package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceKind tags the business operation that produced a movement.
type SourceKind string

const (
	DocumentPayment SourceKind = "DOCUMENT_PAYMENT"
	Transfer        SourceKind = "TRANSFER"
	Adjustment      SourceKind = "ADJUSTMENT"
	Reversal        SourceKind = "REVERSAL"
)

// AccountMovement represents one immutable ledger row. Rows are only ever
// inserted; the single exception is the reversal link on the original row.
type AccountMovement struct {
	MovementID           string          `db:"movement_id"`
	AccountID            string          `db:"account_id"`
	EntityID             string          `db:"entity_id"`
	Amount               decimal.Decimal `db:"amount"`
	CurrencyCode         string          `db:"currency_code"`
	PostingDate          time.Time       `db:"posting_date"`
	SourceKind           SourceKind      `db:"source_kind"`
	SourceRef            string          `db:"source_ref"`
	Reason               string          `db:"reason"`
	IdempotencyKey       *string         `db:"idempotency_key"`        // Nullable, unique when set
	ReversesMovementID   *string         `db:"reverses_movement_id"`   // Nullable
	ReversedByMovementID *string         `db:"reversed_by_movement_id"` // Nullable
	AuditFields
}

// AccountTransfer represents a transfer header row. The two legs live in
// account_movements with this transfer's ID as their source_ref.
type AccountTransfer struct {
	TransferID    string          `db:"transfer_id"`
	EntityID      string          `db:"entity_id"`
	FromAccountID string          `db:"from_account_id"`
	ToAccountID   string          `db:"to_account_id"`
	Amount        decimal.Decimal `db:"amount"`
	CurrencyCode  string          `db:"currency_code"`
	TransferDate  time.Time       `db:"transfer_date"`
	AuditFields
}
