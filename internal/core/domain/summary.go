package domain

import (
	"github.com/shopspring/decimal"
)

// AccountPeriodBalance is one account's contribution to a period summary.
type AccountPeriodBalance struct {
	AccountID    string          `json:"accountID"`
	AccountName  string          `json:"accountName"`
	Kind         AccountKind     `json:"kind"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
}

// TreasurySummary is a read-only rollup of the movement log for one entity
// and period. It is a pure function of the log at the moment of computation:
// it takes no lock and observes multi-movement operations either fully
// applied or not at all.
type TreasurySummary struct {
	EntityID     string                 `json:"entityID"`
	Year         int                    `json:"year"`
	Month        int                    `json:"month"`
	TotalIncome  decimal.Decimal        `json:"totalIncome"`  // Sum of positive movements
	TotalExpense decimal.Decimal        `json:"totalExpense"` // Absolute sum of negative movements
	NetResult    decimal.Decimal        `json:"netResult"`
	PerAccount   []AccountPeriodBalance `json:"perAccountBalances"`
}
