package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kasaops/treasury/internal/core/domain"
)

// MovementResponse defines the data returned for a ledger movement.
type MovementResponse struct {
	MovementID           string            `json:"movementID"`
	AccountID            string            `json:"accountID"`
	Amount               decimal.Decimal   `json:"amount"`
	CurrencyCode         string            `json:"currencyCode"`
	PostingDate          time.Time         `json:"postingDate"`
	SourceKind           domain.SourceKind `json:"sourceKind"`
	SourceRef            string            `json:"sourceRef"`
	Reason               string            `json:"reason,omitempty"`
	ReversesMovementID   *string           `json:"reversesMovementID,omitempty"`
	ReversedByMovementID *string           `json:"reversedByMovementID,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
}

// ToMovementResponse converts a domain.AccountMovement to MovementResponse DTO.
func ToMovementResponse(m *domain.AccountMovement) MovementResponse {
	return MovementResponse{
		MovementID:           m.MovementID,
		AccountID:            m.AccountID,
		Amount:               m.Amount,
		CurrencyCode:         m.CurrencyCode,
		PostingDate:          m.PostingDate,
		SourceKind:           m.SourceKind,
		SourceRef:            m.SourceRef,
		Reason:               m.Reason,
		ReversesMovementID:   m.ReversesMovementID,
		ReversedByMovementID: m.ReversedByMovementID,
		CreatedAt:            m.CreatedAt,
	}
}

// ToMovementResponses converts a slice of movements to response DTOs.
func ToMovementResponses(ms []domain.AccountMovement) []MovementResponse {
	res := make([]MovementResponse, len(ms))
	for i := range ms {
		res[i] = ToMovementResponse(&ms[i])
	}
	return res
}

// ListMovementsParams defines query parameters for listing an account's movements.
type ListMovementsParams struct {
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=50"`
	NextToken *string    `form:"nextToken"`
}

// ListMovementsResponse wraps a page of movements with the pagination cursor.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// AdjustBalanceRequest defines the data needed for a corrective adjustment.
type AdjustBalanceRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required,decimal_nonzero"` // Signed
	Date      time.Time       `json:"date" binding:"required"`
	Reason    string          `json:"reason" binding:"required"` // Mandatory, stored for audit
}

// ReverseMovementRequest defines the data needed to reverse a movement.
// The date is the reversal's own posting date; reversing into a locked
// period is rejected, so undoing old movements requires a current date.
type ReverseMovementRequest struct {
	Date time.Time `json:"date" binding:"required"`
}
