package services

import (
	"context"

	"github.com/kasaops/treasury/internal/core/domain"
	"github.com/kasaops/treasury/internal/dto"
)

// AdjustmentSvcFacade handles corrective and undo operations. Both are
// additive: nothing in the ledger is ever mutated or deleted.
type AdjustmentSvcFacade interface {
	// AdjustBalance posts a corrective movement with a mandatory audit reason.
	AdjustBalance(ctx context.Context, entityID string, req dto.AdjustBalanceRequest, actor string) (*domain.AccountMovement, error)

	// ReverseMovement posts the exact negation of an existing movement and
	// links the pair. A movement can be reversed at most once, and a
	// reversal can never be reversed directly.
	ReverseMovement(ctx context.Context, entityID string, movementID string, req dto.ReverseMovementRequest, actor string) (*domain.AccountMovement, error)
}
