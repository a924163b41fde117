package dto

import (
	"github.com/shopspring/decimal"

	"github.com/kasaops/treasury/internal/core/domain"
)

// AccountBalanceRowResponse is one account's line in a period summary.
type AccountBalanceRowResponse struct {
	AccountID    string          `json:"accountID"`
	AccountName  string          `json:"accountName"`
	Kind         string          `json:"kind"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
}

// SummaryResponse is the treasury rollup for one entity and period.
type SummaryResponse struct {
	EntityID     string                      `json:"entityID"`
	Year         int                         `json:"year"`
	Month        int                         `json:"month"`
	TotalIncome  decimal.Decimal             `json:"totalIncome"`
	TotalExpense decimal.Decimal             `json:"totalExpense"`
	NetResult    decimal.Decimal             `json:"netResult"`
	PerAccount   []AccountBalanceRowResponse `json:"perAccountBalances"`
}

// ToSummaryResponse converts a domain.TreasurySummary to SummaryResponse DTO.
func ToSummaryResponse(s *domain.TreasurySummary) SummaryResponse {
	rows := make([]AccountBalanceRowResponse, len(s.PerAccount))
	for i, r := range s.PerAccount {
		rows[i] = AccountBalanceRowResponse{
			AccountID:    r.AccountID,
			AccountName:  r.AccountName,
			Kind:         string(r.Kind),
			CurrencyCode: r.CurrencyCode,
			Balance:      r.Balance,
		}
	}
	return SummaryResponse{
		EntityID:     s.EntityID,
		Year:         s.Year,
		Month:        s.Month,
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		NetResult:    s.NetResult,
		PerAccount:   rows,
	}
}

// SummaryParams defines query parameters for the summary endpoint.
type SummaryParams struct {
	Year  int `form:"year" binding:"required"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}
