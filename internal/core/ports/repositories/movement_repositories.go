package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kasaops/treasury/internal/core/domain"
)

// MovementReader defines read operations over the movement log.
// Every listing returns movements in the canonical order
// (postingDate, createdAt, movementID) ascending.
type MovementReader interface {
	// FindMovementByID retrieves a single movement.
	FindMovementByID(ctx context.Context, movementID string) (*domain.AccountMovement, error)

	// FindMovementByIdempotencyKey retrieves the movement previously posted
	// with the given key, or ErrNotFound when no such posting exists.
	FindMovementByIdempotencyKey(ctx context.Context, key string) (*domain.AccountMovement, error)

	// FindMovementsByDocumentID retrieves all document-payment movements
	// referencing the document, in canonical order.
	FindMovementsByDocumentID(ctx context.Context, documentID string) ([]domain.AccountMovement, error)

	// ListMovementsByAccount retrieves a paginated slice of an account's
	// movement stream, optionally bounded by posting date. Restartable: each
	// call re-derives from the durable store.
	ListMovementsByAccount(ctx context.Context, accountID string, from, to *time.Time, limit int, nextToken *string) ([]domain.AccountMovement, *string, error)

	// SumMovements folds all signed amounts for the account with posting
	// date <= asOf (no cutoff when asOf is nil). This is the from-scratch
	// replay path for balance verification.
	SumMovements(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)

	// FindTransferByID retrieves a transfer header.
	FindTransferByID(ctx context.Context, transferID string) (*domain.AccountTransfer, error)
}

// MovementWriter defines the append-only write operations of the ledger.
// Each method is a single atomic unit: the movement insert, the period-lock
// re-check and the cached balance update commit or roll back together, so
// readers never observe partial state.
type MovementWriter interface {
	// AppendMovement appends one immutable movement and applies its amount
	// to the account's cached balance. Returns ErrPeriodLocked when the
	// posting date's period was locked by the time the row was written.
	AppendMovement(ctx context.Context, movement domain.AccountMovement) error

	// AppendTransferPair persists the transfer header and both legs in one
	// transaction. No transfer ever exists with a single leg. When
	// enforceSourceFunds is set, the source balance is re-checked against the
	// row-locked account inside the transaction and ErrInsufficientFunds is
	// returned if the debit would drive it negative.
	AppendTransferPair(ctx context.Context, transfer domain.AccountTransfer, debitLeg, creditLeg domain.AccountMovement, enforceSourceFunds bool) error

	// AppendReversal appends the reversal movement and sets the original's
	// reversed-by link atomically. Returns ErrAlreadyReversed when the
	// original was reversed concurrently.
	AppendReversal(ctx context.Context, reversal domain.AccountMovement, originalMovementID string) error
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}

// MovementRepositoryWithTx extends MovementRepositoryFacade with transaction capabilities
type MovementRepositoryWithTx interface {
	MovementRepositoryFacade
	TransactionManager
}
