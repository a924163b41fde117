package services

import (
	"context"

	"github.com/kasaops/treasury/internal/core/domain"
	"github.com/kasaops/treasury/internal/dto"
)

// AccountReaderSvc defines read operations for payment account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account, scoped to the entity.
	GetAccountByID(ctx context.Context, entityID string, accountID string) (*domain.PaymentAccount, error)

	// GetAccountsByIDs retrieves multiple accounts by their IDs, scoped to the entity.
	GetAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.PaymentAccount, error)

	// ListAccounts retrieves a paginated list of accounts for a given entity.
	ListAccounts(ctx context.Context, entityID string, limit int, offset int) ([]domain.PaymentAccount, error)
}

// AccountWriterSvc defines write operations for payment account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account after validating kind, currency
	// and account-number uniqueness within the entity.
	CreateAccount(ctx context.Context, entityID string, req dto.CreateAccountRequest, actor string) (*domain.PaymentAccount, error)

	// UpdateAccount updates the mutable display metadata of an account.
	UpdateAccount(ctx context.Context, entityID string, accountID string, req dto.UpdateAccountRequest, actor string) (*domain.PaymentAccount, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, entityID string, accountID string, actor string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
