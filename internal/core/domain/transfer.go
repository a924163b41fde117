package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountTransfer is an atomic two-sided money movement between accounts of
// the same entity and currency. It materializes as exactly two
// AccountMovements (negative on the source, positive on the destination)
// sharing the transfer ID as their source reference. The pair is created or
// rejected as a unit; the ledger never holds a transfer with one leg.
type AccountTransfer struct {
	TransferID    string          `json:"transferID"` // Primary Key (UUID)
	EntityID      string          `json:"entityID"`
	FromAccountID string          `json:"fromAccountID"`
	ToAccountID   string          `json:"toAccountID"`
	Amount        decimal.Decimal `json:"amount"` // Positive
	CurrencyCode  string          `json:"currencyCode"`
	TransferDate  time.Time       `json:"transferDate"`
	AuditFields
}
