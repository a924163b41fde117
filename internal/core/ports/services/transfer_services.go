package services

import (
	"context"

	"github.com/kasaops/treasury/internal/core/domain"
	"github.com/kasaops/treasury/internal/dto"
)

// TransferSvcFacade executes atomic two-sided transfers between accounts.
type TransferSvcFacade interface {
	// Transfer moves money between two same-currency accounts of one entity.
	// Exactly two movements are created, or none.
	Transfer(ctx context.Context, entityID string, req dto.CreateTransferRequest, actor string) (*domain.AccountTransfer, error)

	// GetTransferByID retrieves a transfer, scoped to the entity.
	GetTransferByID(ctx context.Context, entityID string, transferID string) (*domain.AccountTransfer, error)
}
