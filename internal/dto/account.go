package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kasaops/treasury/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new payment account.
type CreateAccountRequest struct {
	Name          string             `json:"name" binding:"required"`
	Kind          domain.AccountKind `json:"kind" binding:"required,oneof=MAIN VAT TAX CASH OTHER"`
	CurrencyCode  string             `json:"currencyCode" binding:"required,iso4217"`
	AccountNumber string             `json:"accountNumber"` // Optional; duplicate-checked per entity
	Description   string             `json:"description"`   // Optional
}

// UpdateAccountRequest defines the display metadata allowed to change after creation.
// Use pointers to distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for a payment account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	EntityID      string             `json:"entityID"`
	Name          string             `json:"name"`
	AccountNumber string             `json:"accountNumber"`
	Kind          domain.AccountKind `json:"kind"`
	CurrencyCode  string             `json:"currencyCode"`
	Description   string             `json:"description"`
	IsActive      bool               `json:"isActive"`
	Balance       decimal.Decimal    `json:"balance"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
}

// ToAccountResponse converts a domain.PaymentAccount to AccountResponse DTO.
func ToAccountResponse(acc *domain.PaymentAccount) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		EntityID:      acc.EntityID,
		Name:          acc.Name,
		AccountNumber: acc.AccountNumber,
		Kind:          acc.Kind,
		CurrencyCode:  acc.CurrencyCode,
		Description:   acc.Description,
		IsActive:      acc.IsActive,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.PaymentAccount to response DTOs.
func ToListAccountResponse(accounts []domain.PaymentAccount) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// AccountBalanceResponse defines the data returned for a balance query.
type AccountBalanceResponse struct {
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	AsOf         *time.Time      `json:"asOf,omitempty"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
