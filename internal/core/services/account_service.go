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
	"github.com/kasaops/treasury/internal/utils"
)

var (
	ErrInvalidAccountKind = errors.New("invalid account kind")
	ErrAccountInactive    = errors.New("account is inactive")
)

// accountService owns payment account identity and metadata. Kind, currency
// and owning entity are fixed at creation; only display metadata may change.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	entitySvc   portssvc.EntityReaderSvc
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, entitySvc portssvc.EntityReaderSvc) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		entitySvc:   entitySvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new payment account.
func (s *accountService) CreateAccount(ctx context.Context, entityID string, req dto.CreateAccountRequest, actor string) (*domain.PaymentAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidAccountKind(req.Kind) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAccountKind, req.Kind)
	}
	if !utils.IsValidCurrencyCode(req.CurrencyCode) {
		return nil, fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, req.CurrencyCode)
	}

	// The owning entity must exist and be active.
	entity, err := s.entitySvc.GetEntityByID(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entity %s: %w", entityID, err)
	}
	if !entity.IsActive {
		return nil, fmt.Errorf("%w: entity %s is inactive", apperrors.ErrValidation, entityID)
	}

	// Duplicate detection of account numbers within an entity, when supplied.
	if req.AccountNumber != "" {
		existing, err := s.accountRepo.FindAccountByNumber(ctx, entityID, req.AccountNumber)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to check account number uniqueness", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to check account number uniqueness: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: account number %s already registered for entity %s", apperrors.ErrDuplicate, req.AccountNumber, entityID)
		}
	}

	now := time.Now().UTC()
	account := domain.PaymentAccount{
		AccountID:     uuid.NewString(),
		EntityID:      entityID,
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		Kind:          req.Kind,
		CurrencyCode:  req.CurrencyCode,
		Description:   req.Description,
		IsActive:      true,
		Balance:       decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID), slog.String("entity_id", entityID))
	return &account, nil
}

// GetAccountByID retrieves an account, scoped to the entity.
func (s *accountService) GetAccountByID(ctx context.Context, entityID string, accountID string) (*domain.PaymentAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	if account.EntityID != entityID {
		// Obscure existence across entity boundaries.
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts, all of which must belong to the entity.
func (s *accountService) GetAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.PaymentAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		logger.Error("Failed to find accounts by IDs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for id, acc := range accounts {
		if acc.EntityID != entityID {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}

// ListAccounts retrieves a paginated list of the entity's accounts.
func (s *accountService) ListAccounts(ctx context.Context, entityID string, limit int, offset int) ([]domain.PaymentAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccountsByEntity(ctx, entityID, limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.PaymentAccount{}, nil
	}
	return accounts, nil
}

// UpdateAccount updates display metadata only.
func (s *accountService) UpdateAccount(ctx context.Context, entityID string, accountID string, req dto.UpdateAccountRequest, actor string) (*domain.PaymentAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, entityID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}

	if !updated {
		return account, nil
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = actor

	if err := s.accountRepo.UpdateAccountMetadata(ctx, *account); err != nil {
		logger.Error("Failed to update account metadata", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account as inactive.
func (s *accountService) DeactivateAccount(ctx context.Context, entityID string, accountID string, actor string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetAccountByID(ctx, entityID, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, actor, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	logger.Info("Account deactivated successfully", slog.String("account_id", accountID))
	return nil
}
