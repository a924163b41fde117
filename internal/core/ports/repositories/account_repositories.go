package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kasaops/treasury/internal/core/domain"
)

// AccountReader defines read operations for payment account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.PaymentAccount, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.PaymentAccount, error)

	// FindAccountByNumber retrieves an account by its account number within an entity.
	// Used for duplicate detection on creation.
	FindAccountByNumber(ctx context.Context, entityID string, accountNumber string) (*domain.PaymentAccount, error)

	// ListAccountsByEntity retrieves a paginated list of accounts for a given entity.
	ListAccountsByEntity(ctx context.Context, entityID string, limit int, offset int) ([]domain.PaymentAccount, error)
}

// AccountWriter defines write operations for payment account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.PaymentAccount) error

	// UpdateAccountMetadata updates the mutable display fields of an account.
	// Kind, currency and owning entity are immutable and not touched here.
	UpdateAccountMetadata(ctx context.Context, account domain.PaymentAccount) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, actor string, now time.Time) error
}

// AccountTransactionSupport defines operations used inside ledger write transactions
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows for update
	// within a transaction. IDs are locked in sorted order to avoid deadlocks.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.PaymentAccount, error)

	// ApplyBalanceChangesInTx adjusts the cached balance for multiple accounts
	// within a given transaction.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, actor string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
