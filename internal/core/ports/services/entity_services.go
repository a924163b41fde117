package services

import (
	"context"

	"github.com/kasaops/treasury/internal/core/domain"
	"github.com/kasaops/treasury/internal/dto"
)

// EntityReaderSvc defines read operations for business entities
type EntityReaderSvc interface {
	// GetEntityByID retrieves a business entity by its unique identifier.
	GetEntityByID(ctx context.Context, entityID string) (*domain.BusinessEntity, error)

	// ListEntities retrieves a paginated list of entities.
	ListEntities(ctx context.Context, limit int, offset int) ([]domain.BusinessEntity, error)
}

// EntityWriterSvc defines write operations for business entities
type EntityWriterSvc interface {
	// CreateEntity persists a new business entity.
	CreateEntity(ctx context.Context, req dto.CreateEntityRequest, actor string) (*domain.BusinessEntity, error)
}

// EntitySvcFacade combines all entity-related service interfaces
type EntitySvcFacade interface {
	EntityReaderSvc
	EntityWriterSvc
}
