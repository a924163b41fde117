package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kasaops/treasury/internal/core/domain"
	"github.com/kasaops/treasury/internal/dto"
)

// PostMovementParams carries everything needed to append one movement.
// The ledger service owns all posting preconditions (non-zero amount,
// account existence and currency, period lock), so the processor services
// funnel every write through it.
type PostMovementParams struct {
	EntityID       string
	AccountID      string
	Amount         decimal.Decimal // Signed, non-zero
	PostingDate    time.Time
	SourceKind     domain.SourceKind
	SourceRef      string
	Reason         string
	IdempotencyKey *string
	Actor          string
}

// PostTransferParams carries everything needed to post a transfer pair.
type PostTransferParams struct {
	EntityID      string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal // Positive
	Date          time.Time
	Actor         string
}

// LedgerReaderSvc defines the read side of the movement ledger.
type LedgerReaderSvc interface {
	// GetMovementByID retrieves a single movement, scoped to the entity.
	GetMovementByID(ctx context.Context, entityID string, movementID string) (*domain.AccountMovement, error)

	// ComputeBalance folds the account's movements with posting date <= asOf
	// (latest when asOf is nil). Pure read, replayed from the durable store.
	ComputeBalance(ctx context.Context, entityID string, accountID string, asOf *time.Time) (decimal.Decimal, error)

	// ListMovements returns a page of the account's movement stream in
	// canonical order.
	ListMovements(ctx context.Context, entityID string, accountID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error)
}

// LedgerWriterSvc defines the append-only write side of the ledger.
type LedgerWriterSvc interface {
	// PostMovement validates and appends one immutable movement.
	PostMovement(ctx context.Context, params PostMovementParams) (*domain.AccountMovement, error)

	// PostTransfer validates and atomically appends both legs of a transfer.
	PostTransfer(ctx context.Context, params PostTransferParams) (*domain.AccountTransfer, error)

	// PostReversal appends the negation of an existing movement and links
	// the two atomically.
	PostReversal(ctx context.Context, entityID string, movementID string, date time.Time, actor string) (*domain.AccountMovement, error)
}

// LedgerSvcFacade combines the ledger read and write interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
