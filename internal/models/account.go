package models

import (
	"github.com/shopspring/decimal"
)

// AccountKind classifies a payment account by its treasury role.
type AccountKind string

const (
	Main  AccountKind = "MAIN"
	VAT   AccountKind = "VAT"
	Tax   AccountKind = "TAX"
	Cash  AccountKind = "CASH"
	Other AccountKind = "OTHER"
)

// PaymentAccount represents a payment account row. Balance is the cached
// fold of the account's movements, updated atomically with each posting.
type PaymentAccount struct {
	AccountID     string      `db:"account_id"`
	EntityID      string      `db:"entity_id"`
	Name          string      `db:"name"`
	AccountNumber string      `db:"account_number"`
	Kind          AccountKind `db:"kind"`
	CurrencyCode  string      `db:"currency_code"`
	Description   string      `db:"description"`
	IsActive      bool        `db:"is_active"`
	AuditFields
	Balance decimal.Decimal `db:"balance"`
}
