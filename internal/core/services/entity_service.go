package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kasaops/treasury/internal/apperrors"
	"github.com/kasaops/treasury/internal/core/domain"
	portsrepo "github.com/kasaops/treasury/internal/core/ports/repositories"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
	"github.com/kasaops/treasury/internal/dto"
	"github.com/kasaops/treasury/internal/middleware"
	"github.com/kasaops/treasury/internal/utils"
)

// entityService manages business entities, the tenant boundary that
// accounts and accounting periods hang off.
type entityService struct {
	entityRepo portsrepo.EntityRepositoryFacade
}

// NewEntityService creates a new EntityService.
func NewEntityService(entityRepo portsrepo.EntityRepositoryFacade) portssvc.EntitySvcFacade {
	return &entityService{entityRepo: entityRepo}
}

var _ portssvc.EntitySvcFacade = (*entityService)(nil)

// CreateEntity persists a new business entity.
func (s *entityService) CreateEntity(ctx context.Context, req dto.CreateEntityRequest, actor string) (*domain.BusinessEntity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.DefaultCurrencyCode != nil && !utils.IsValidCurrencyCode(*req.DefaultCurrencyCode) {
		return nil, fmt.Errorf("%w: invalid default currency code %q", apperrors.ErrValidation, *req.DefaultCurrencyCode)
	}

	now := time.Now().UTC()
	entity := domain.BusinessEntity{
		EntityID:            uuid.NewString(),
		Name:                req.Name,
		Description:         req.Description,
		DefaultCurrencyCode: req.DefaultCurrencyCode,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.entityRepo.SaveEntity(ctx, entity); err != nil {
		logger.Error("Failed to save entity", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entity: %w", err)
	}

	logger.Info("Entity created successfully", slog.String("entity_id", entity.EntityID))
	return &entity, nil
}

// GetEntityByID retrieves a business entity.
func (s *entityService) GetEntityByID(ctx context.Context, entityID string) (*domain.BusinessEntity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entity, err := s.entityRepo.FindEntityByID(ctx, entityID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find entity by ID", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		}
		return nil, err
	}
	return entity, nil
}

// ListEntities retrieves a paginated list of entities.
func (s *entityService) ListEntities(ctx context.Context, limit int, offset int) ([]domain.BusinessEntity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entities, err := s.entityRepo.ListEntities(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list entities", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	if entities == nil {
		return []domain.BusinessEntity{}, nil
	}
	return entities, nil
}
