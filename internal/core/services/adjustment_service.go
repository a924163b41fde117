package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kasaops/treasury/internal/apperrors"
	"github.com/kasaops/treasury/internal/core/domain"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
	"github.com/kasaops/treasury/internal/dto"
)

// adjustmentService posts corrective and undo movements through the ledger
// service. Both operations are additive; nothing is ever mutated or deleted.
type adjustmentService struct {
	ledgerSvc portssvc.LedgerWriterSvc
}

// NewAdjustmentService creates a new AdjustmentService.
func NewAdjustmentService(ledgerSvc portssvc.LedgerWriterSvc) portssvc.AdjustmentSvcFacade {
	return &adjustmentService{ledgerSvc: ledgerSvc}
}

var _ portssvc.AdjustmentSvcFacade = (*adjustmentService)(nil)

// AdjustBalance posts a corrective movement with a mandatory audit reason.
func (s *adjustmentService) AdjustBalance(ctx context.Context, entityID string, req dto.AdjustBalanceRequest, actor string) (*domain.AccountMovement, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: adjustment reason is required", apperrors.ErrValidation)
	}

	return s.ledgerSvc.PostMovement(ctx, portssvc.PostMovementParams{
		EntityID:    entityID,
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		PostingDate: req.Date,
		SourceKind:  domain.SourceAdjustment,
		SourceRef:   req.AccountID,
		Reason:      req.Reason,
		Actor:       actor,
	})
}

// ReverseMovement posts the exact negation of an existing movement.
func (s *adjustmentService) ReverseMovement(ctx context.Context, entityID string, movementID string, req dto.ReverseMovementRequest, actor string) (*domain.AccountMovement, error) {
	return s.ledgerSvc.PostReversal(ctx, entityID, movementID, req.Date, actor)
}
