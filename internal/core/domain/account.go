package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind classifies a payment account within a business entity.
type AccountKind string

const (
	KindMain  AccountKind = "MAIN"
	KindVAT   AccountKind = "VAT"
	KindTax   AccountKind = "TAX"
	KindCash  AccountKind = "CASH"
	KindOther AccountKind = "OTHER"
)

// ValidAccountKind reports whether k is one of the enumerated account kinds.
func ValidAccountKind(k AccountKind) bool {
	switch k {
	case KindMain, KindVAT, KindTax, KindCash, KindOther:
		return true
	}
	return false
}

// PaymentAccount represents a money account owned by a business entity.
// Kind, currency and owning entity are fixed at creation; only the display
// metadata (Name, Description) may change afterwards. Balance is a cached
// projection of the movement log, updated atomically with every posting and
// always reproducible by replaying the log.
type PaymentAccount struct {
	AccountID     string          `json:"accountID"`     // Primary Key (UUID)
	EntityID      string          `json:"entityID"`      // FK -> business_entities.entity_id (NON-NULL)
	Name          string          `json:"name"`          // User-defined display name
	AccountNumber string          `json:"accountNumber"` // Optional bank account number, unique per entity when set
	Kind          AccountKind     `json:"kind"`          // MAIN, VAT, TAX, CASH, OTHER
	CurrencyCode  string          `json:"currencyCode"`  // ISO 4217 code, immutable
	Description   string          `json:"description"`   // Nullable user description
	IsActive      bool            `json:"isActive"`
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Cached balance projection
}
