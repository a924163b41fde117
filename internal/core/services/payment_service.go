package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/kasaops/treasury/internal/apperrors"
	"github.com/kasaops/treasury/internal/core/domain"
	portsrepo "github.com/kasaops/treasury/internal/core/ports/repositories"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
	"github.com/kasaops/treasury/internal/dto"
	"github.com/kasaops/treasury/internal/middleware"
)

// paymentService maps document payment requests to ledger movements. The
// idempotency key is the sole deduplication mechanism: the ledger carries no
// uniqueness constraint on (document, amount, date), so retried requests are
// only collapsed by their key.
type paymentService struct {
	movementRepo portsrepo.MovementReader
	ledgerSvc    portssvc.LedgerWriterSvc
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(movementRepo portsrepo.MovementReader, ledgerSvc portssvc.LedgerWriterSvc) portssvc.PaymentSvcFacade {
	return &paymentService{
		movementRepo: movementRepo,
		ledgerSvc:    ledgerSvc,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// PayDocument records one payment toward a document and returns the derived
// reconciliation state.
func (s *paymentService) PayDocument(ctx context.Context, entityID string, req dto.PayDocumentRequest, actor string) (*dto.PaymentResultResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrInvalidAmount)
	}

	// Replay check before posting anything.
	if prior, err := s.movementRepo.FindMovementByIdempotencyKey(ctx, req.IdempotencyKey); err == nil {
		return s.replay(ctx, prior, req)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	}

	key := req.IdempotencyKey
	movement, err := s.ledgerSvc.PostMovement(ctx, portssvc.PostMovementParams{
		EntityID:       entityID,
		AccountID:      req.AccountID,
		Amount:         req.Amount,
		PostingDate:    req.Date,
		SourceKind:     domain.SourceDocumentPayment,
		SourceRef:      req.DocumentID,
		IdempotencyKey: &key,
		Actor:          actor,
	})
	if err != nil {
		// A concurrent request with the same key won the race on the unique
		// index. Re-fetch and treat as a replay.
		if errors.Is(err, apperrors.ErrDuplicate) {
			prior, findErr := s.movementRepo.FindMovementByIdempotencyKey(ctx, req.IdempotencyKey)
			if findErr != nil {
				return nil, fmt.Errorf("failed to resolve idempotency conflict: %w", findErr)
			}
			return s.replay(ctx, prior, req)
		}
		return nil, err
	}

	result, err := s.derive(ctx, entityID, req.DocumentID, req.DocumentKind, req.TotalDue, movement.CurrencyCode)
	if err != nil {
		return nil, err
	}
	result.MovementID = movement.MovementID

	logger.Info("Document payment recorded",
		slog.String("document_id", req.DocumentID),
		slog.String("movement_id", movement.MovementID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(result.Status)),
	)
	return result, nil
}

// replay returns the prior result for a reused idempotency key. A key reused
// against a different document is a caller bug, not a retry.
func (s *paymentService) replay(ctx context.Context, prior *domain.AccountMovement, req dto.PayDocumentRequest) (*dto.PaymentResultResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if prior.SourceKind != domain.SourceDocumentPayment || prior.SourceRef != req.DocumentID {
		return nil, fmt.Errorf("%w: idempotency key already used for a different operation", apperrors.ErrConflict)
	}

	result, err := s.derive(ctx, prior.EntityID, req.DocumentID, req.DocumentKind, req.TotalDue, prior.CurrencyCode)
	if err != nil {
		return nil, err
	}
	result.MovementID = prior.MovementID
	result.Replayed = true

	logger.Info("Document payment replayed",
		slog.String("document_id", req.DocumentID),
		slog.String("movement_id", prior.MovementID),
		slog.String("idempotency_key", req.IdempotencyKey),
	)
	return result, nil
}

// GetPaymentStatus recomputes the document's reconciliation state from the
// movement log. Pure read; never served from a cached field.
func (s *paymentService) GetPaymentStatus(ctx context.Context, entityID string, documentID string, totalDue decimal.Decimal) (*dto.PaymentResultResponse, error) {
	return s.derive(ctx, entityID, documentID, domain.DocOther, totalDue, "")
}

func (s *paymentService) derive(ctx context.Context, entityID string, documentID string, kind domain.DocumentKind, totalDue decimal.Decimal, currency string) (*dto.PaymentResultResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	movements, err := s.movementRepo.FindMovementsByDocumentID(ctx, documentID)
	if err != nil {
		logger.Error("Failed to load document movements", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to load document movements: %w", err)
	}

	// Document IDs are caller-supplied, so two entities can reference the same
	// ID. Only this entity's movements count toward the fold.
	scoped := make([]domain.AccountMovement, 0, len(movements))
	for _, m := range movements {
		if m.EntityID == entityID {
			scoped = append(scoped, m)
		}
	}

	payment := domain.DeriveDocumentPayment(documentID, kind, totalDue, currency, scoped)
	return &dto.PaymentResultResponse{
		DocumentID: payment.DocumentID,
		Status:     payment.Status,
		AmountPaid: payment.AmountPaid,
		Remaining:  payment.Remaining,
	}, nil
}
