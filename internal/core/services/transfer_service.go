package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kasaops/treasury/internal/apperrors"
	"github.com/kasaops/treasury/internal/core/domain"
	portsrepo "github.com/kasaops/treasury/internal/core/ports/repositories"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
	"github.com/kasaops/treasury/internal/dto"
	"github.com/kasaops/treasury/internal/middleware"
)

// transferService is a thin processor over the ledger service, which owns
// every transfer precondition and the atomic two-leg append.
type transferService struct {
	movementRepo portsrepo.MovementReader
	ledgerSvc    portssvc.LedgerWriterSvc
}

// NewTransferService creates a new TransferService.
func NewTransferService(movementRepo portsrepo.MovementReader, ledgerSvc portssvc.LedgerWriterSvc) portssvc.TransferSvcFacade {
	return &transferService{
		movementRepo: movementRepo,
		ledgerSvc:    ledgerSvc,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Transfer moves money between two same-currency accounts of one entity.
func (s *transferService) Transfer(ctx context.Context, entityID string, req dto.CreateTransferRequest, actor string) (*domain.AccountTransfer, error) {
	return s.ledgerSvc.PostTransfer(ctx, portssvc.PostTransferParams{
		EntityID:      entityID,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Date:          req.Date,
		Actor:         actor,
	})
}

// GetTransferByID retrieves a transfer, scoped to the entity.
func (s *transferService) GetTransferByID(ctx context.Context, entityID string, transferID string) (*domain.AccountTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transfer, err := s.movementRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transfer", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
			return nil, fmt.Errorf("failed to find transfer: %w", err)
		}
		return nil, err
	}
	if transfer.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}
	return transfer, nil
}
