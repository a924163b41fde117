package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kasaops/treasury/internal/apperrors"
	"github.com/kasaops/treasury/internal/core/domain"
	portsrepo "github.com/kasaops/treasury/internal/core/ports/repositories"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
	"github.com/kasaops/treasury/internal/dto"
	"github.com/kasaops/treasury/internal/middleware"
)

var (
	ErrSameAccountTransfer = errors.New("transfer source and destination must differ")
	ErrReversalOfReversal  = errors.New("a reversal cannot be reversed directly")
)

// OverdraftPolicy controls whether a transfer may drive the source account
// balance below zero. The default is to allow it; the ledger is a record of
// what happened, not a credit decision engine.
type OverdraftPolicy string

const (
	OverdraftAllow OverdraftPolicy = "allow"
	OverdraftDeny  OverdraftPolicy = "deny"
)

// ledgerService is the single chokepoint for every posting. It owns the
// shared preconditions (non-zero amount, account existence and currency,
// period lock) and delegates the atomic write to the movement repository.
type ledgerService struct {
	movementRepo    portsrepo.MovementRepositoryFacade
	accountSvc      portssvc.AccountReaderSvc
	periodSvc       portssvc.PeriodGuardSvc
	overdraftPolicy OverdraftPolicy
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(movementRepo portsrepo.MovementRepositoryFacade, accountSvc portssvc.AccountReaderSvc, periodSvc portssvc.PeriodGuardSvc, overdraft OverdraftPolicy) portssvc.LedgerSvcFacade {
	if overdraft == "" {
		overdraft = OverdraftAllow
	}
	return &ledgerService{
		movementRepo:    movementRepo,
		accountSvc:      accountSvc,
		periodSvc:       periodSvc,
		overdraftPolicy: overdraft,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostMovement validates and appends one immutable movement.
func (s *ledgerService) PostMovement(ctx context.Context, params portssvc.PostMovementParams) (*domain.AccountMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if params.Amount.IsZero() {
		return nil, fmt.Errorf("%w: movement amount must be non-zero", apperrors.ErrInvalidAmount)
	}

	if err := s.periodSvc.AssertPostable(ctx, params.EntityID, params.PostingDate); err != nil {
		return nil, err
	}

	account, err := s.accountSvc.GetAccountByID(ctx, params.EntityID, params.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s", ErrAccountInactive, params.AccountID)
	}

	now := time.Now().UTC()
	movement := domain.AccountMovement{
		MovementID:     uuid.NewString(),
		AccountID:      account.AccountID,
		EntityID:       params.EntityID,
		Amount:         params.Amount,
		CurrencyCode:   account.CurrencyCode,
		PostingDate:    params.PostingDate,
		SourceKind:     params.SourceKind,
		SourceRef:      params.SourceRef,
		Reason:         params.Reason,
		IdempotencyKey: params.IdempotencyKey,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     params.Actor,
			LastUpdatedAt: now,
			LastUpdatedBy: params.Actor,
		},
	}

	if err := s.movementRepo.AppendMovement(ctx, movement); err != nil {
		logger.Error("Failed to append movement", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Movement posted",
		slog.String("movement_id", movement.MovementID),
		slog.String("account_id", account.AccountID),
		slog.String("source_kind", string(movement.SourceKind)),
		slog.String("amount", movement.Amount.String()),
	)
	return &movement, nil
}

// PostTransfer validates and atomically appends both legs of a transfer.
func (s *ledgerService) PostTransfer(ctx context.Context, params portssvc.PostTransferParams) (*domain.AccountTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrInvalidAmount)
	}
	if params.FromAccountID == params.ToAccountID {
		return nil, fmt.Errorf("%w: %s", ErrSameAccountTransfer, params.FromAccountID)
	}

	if err := s.periodSvc.AssertPostable(ctx, params.EntityID, params.Date); err != nil {
		return nil, err
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, params.EntityID, []string{params.FromAccountID, params.ToAccountID})
	if err != nil {
		return nil, err
	}
	from, ok := accounts[params.FromAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, params.FromAccountID)
	}
	to, ok := accounts[params.ToAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, params.ToAccountID)
	}
	if !from.IsActive {
		return nil, fmt.Errorf("%w: account %s", ErrAccountInactive, from.AccountID)
	}
	if !to.IsActive {
		return nil, fmt.Errorf("%w: account %s", ErrAccountInactive, to.AccountID)
	}
	if from.CurrencyCode != to.CurrencyCode {
		return nil, fmt.Errorf("%w: %s vs %s", apperrors.ErrCurrencyMismatch, from.CurrencyCode, to.CurrencyCode)
	}

	// Overdraft is a policy decision, not a ledger invariant. Cash accounts
	// hold physical money and can never go negative. The snapshot check here
	// fails fast; the repository re-checks against the row-locked balance so
	// interleaved transfers cannot both pass on the same funds.
	enforceSourceFunds := s.overdraftPolicy == OverdraftDeny || from.Kind == domain.KindCash
	if enforceSourceFunds && from.Balance.LessThan(params.Amount) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", apperrors.ErrInsufficientFunds, from.Balance.String(), params.Amount.String())
	}

	now := time.Now().UTC()
	transfer := domain.AccountTransfer{
		TransferID:    uuid.NewString(),
		EntityID:      params.EntityID,
		FromAccountID: from.AccountID,
		ToAccountID:   to.AccountID,
		Amount:        params.Amount,
		CurrencyCode:  from.CurrencyCode,
		TransferDate:  params.Date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     params.Actor,
			LastUpdatedAt: now,
			LastUpdatedBy: params.Actor,
		},
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     params.Actor,
		LastUpdatedAt: now,
		LastUpdatedBy: params.Actor,
	}
	debitLeg := domain.AccountMovement{
		MovementID:   uuid.NewString(),
		AccountID:    from.AccountID,
		EntityID:     params.EntityID,
		Amount:       params.Amount.Neg(),
		CurrencyCode: from.CurrencyCode,
		PostingDate:  params.Date,
		SourceKind:   domain.SourceTransfer,
		SourceRef:    transfer.TransferID,
		AuditFields:  audit,
	}
	creditLeg := domain.AccountMovement{
		MovementID:   uuid.NewString(),
		AccountID:    to.AccountID,
		EntityID:     params.EntityID,
		Amount:       params.Amount,
		CurrencyCode: to.CurrencyCode,
		PostingDate:  params.Date,
		SourceKind:   domain.SourceTransfer,
		SourceRef:    transfer.TransferID,
		AuditFields:  audit,
	}

	if err := s.movementRepo.AppendTransferPair(ctx, transfer, debitLeg, creditLeg, enforceSourceFunds); err != nil {
		logger.Error("Failed to append transfer pair", slog.String("error", err.Error()), slog.String("transfer_id", transfer.TransferID))
		return nil, err
	}

	logger.Info("Transfer posted",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("from_account_id", from.AccountID),
		slog.String("to_account_id", to.AccountID),
		slog.String("amount", params.Amount.String()),
	)
	return &transfer, nil
}

// PostReversal appends the exact negation of an existing movement and links
// the pair atomically. The reversal carries its own posting date: reversing
// a movement from a now-locked period requires a current date outside the
// lock, never a backdate.
func (s *ledgerService) PostReversal(ctx context.Context, entityID string, movementID string, date time.Time, actor string) (*domain.AccountMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.GetMovementByID(ctx, entityID, movementID)
	if err != nil {
		return nil, err
	}

	if original.IsReversal() {
		return nil, fmt.Errorf("%w: movement %s", ErrReversalOfReversal, movementID)
	}
	if original.IsReversed() {
		return nil, fmt.Errorf("%w: movement %s reversed by %s", apperrors.ErrAlreadyReversed, movementID, *original.ReversedByMovementID)
	}

	if err := s.periodSvc.AssertPostable(ctx, entityID, date); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reversal := domain.AccountMovement{
		MovementID:         uuid.NewString(),
		AccountID:          original.AccountID,
		EntityID:           entityID,
		Amount:             original.Amount.Neg(),
		CurrencyCode:       original.CurrencyCode,
		PostingDate:        date,
		SourceKind:         domain.SourceReversal,
		SourceRef:          original.MovementID,
		ReversesMovementID: &original.MovementID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.movementRepo.AppendReversal(ctx, reversal, original.MovementID); err != nil {
		logger.Error("Failed to append reversal", slog.String("error", err.Error()), slog.String("movement_id", movementID))
		return nil, err
	}

	logger.Info("Movement reversed",
		slog.String("original_movement_id", original.MovementID),
		slog.String("reversal_movement_id", reversal.MovementID),
	)
	return &reversal, nil
}

// GetMovementByID retrieves a single movement, scoped to the entity.
func (s *ledgerService) GetMovementByID(ctx context.Context, entityID string, movementID string) (*domain.AccountMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find movement by ID", slog.String("error", err.Error()), slog.String("movement_id", movementID))
		}
		return nil, err
	}
	if movement.EntityID != entityID {
		return nil, apperrors.ErrNotFound
	}
	return movement, nil
}

// ComputeBalance folds the account's movement stream with posting date <= asOf.
func (s *ledgerService) ComputeBalance(ctx context.Context, entityID string, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountSvc.GetAccountByID(ctx, entityID, accountID); err != nil {
		return decimal.Zero, err
	}

	balance, err := s.movementRepo.SumMovements(ctx, accountID, asOf)
	if err != nil {
		logger.Error("Failed to compute balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to compute balance: %w", err)
	}
	return balance, nil
}

// ListMovements returns a page of the account's movement stream in canonical order.
func (s *ledgerService) ListMovements(ctx context.Context, entityID string, accountID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountSvc.GetAccountByID(ctx, entityID, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	movements, nextToken, err := s.movementRepo.ListMovementsByAccount(ctx, accountID, params.From, params.To, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list movements", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	return &dto.ListMovementsResponse{
		Movements: dto.ToMovementResponses(movements),
		NextToken: nextToken,
	}, nil
}
