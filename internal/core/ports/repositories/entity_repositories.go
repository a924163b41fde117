package repositories

import (
	"context"

	"github.com/kasaops/treasury/internal/core/domain"
)

// EntityReader defines read operations for business entities
type EntityReader interface {
	// FindEntityByID retrieves a business entity by its unique identifier.
	FindEntityByID(ctx context.Context, entityID string) (*domain.BusinessEntity, error)

	// ListEntities retrieves a paginated list of entities.
	ListEntities(ctx context.Context, limit int, offset int) ([]domain.BusinessEntity, error)
}

// EntityWriter defines write operations for business entities
type EntityWriter interface {
	// SaveEntity persists a new business entity.
	SaveEntity(ctx context.Context, entity domain.BusinessEntity) error
}

// EntityRepositoryFacade combines all entity-related repository interfaces
type EntityRepositoryFacade interface {
	EntityReader
	EntityWriter
}
