package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kasaops/treasury/internal/core/domain"
)

// CreateTransferRequest defines the data needed to move money between two accounts.
type CreateTransferRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,decimal_positive"`
	Date          time.Time       `json:"date" binding:"required"`
}

// TransferResponse defines the data returned for a transfer.
type TransferResponse struct {
	TransferID    string          `json:"transferID"`
	EntityID      string          `json:"entityID"`
	FromAccountID string          `json:"fromAccountID"`
	ToAccountID   string          `json:"toAccountID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	TransferDate  time.Time       `json:"transferDate"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransferResponse converts a domain.AccountTransfer to TransferResponse DTO.
func ToTransferResponse(t *domain.AccountTransfer) TransferResponse {
	return TransferResponse{
		TransferID:    t.TransferID,
		EntityID:      t.EntityID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		CurrencyCode:  t.CurrencyCode,
		TransferDate:  t.TransferDate,
		CreatedAt:     t.CreatedAt,
	}
}
