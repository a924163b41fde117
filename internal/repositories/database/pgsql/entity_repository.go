package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasaops/treasury/internal/apperrors"
	"github.com/kasaops/treasury/internal/core/domain"
	portsrepo "github.com/kasaops/treasury/internal/core/ports/repositories"
	"github.com/kasaops/treasury/internal/models"
	"github.com/kasaops/treasury/internal/utils/mapping"
)

type PgxEntityRepository struct {
	BaseRepository
}

// newPgxEntityRepository creates a new repository for business entity data.
func newPgxEntityRepository(pool *pgxpool.Pool) portsrepo.EntityRepositoryFacade {
	return &PgxEntityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EntityRepositoryFacade = (*PgxEntityRepository)(nil)

// SaveEntity persists a new business entity.
func (r *PgxEntityRepository) SaveEntity(ctx context.Context, entity domain.BusinessEntity) error {
	m := mapping.ToModelEntity(entity)
	query := `
		INSERT INTO business_entities (entity_id, name, description, default_currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntityID,
		m.Name,
		m.Description,
		m.DefaultCurrencyCode,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert entity "+m.EntityID, err)
	}
	return nil
}

// FindEntityByID retrieves a business entity by its ID.
func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.BusinessEntity, error) {
	query := `
		SELECT entity_id, name, description, default_currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM business_entities
		WHERE entity_id = $1;
	`
	var m models.BusinessEntity
	err := r.Pool.QueryRow(ctx, query, entityID).Scan(
		&m.EntityID,
		&m.Name,
		&m.Description,
		&m.DefaultCurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entity by ID "+entityID, err)
	}

	d := mapping.ToDomainEntity(m)
	return &d, nil
}

// ListEntities retrieves a paginated list of entities.
func (r *PgxEntityRepository) ListEntities(ctx context.Context, limit int, offset int) ([]domain.BusinessEntity, error) {
	query := `
		SELECT entity_id, name, description, default_currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM business_entities
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entities", err)
	}
	defer rows.Close()

	entities := []models.BusinessEntity{}
	for rows.Next() {
		var m models.BusinessEntity
		if err := rows.Scan(
			&m.EntityID,
			&m.Name,
			&m.Description,
			&m.DefaultCurrencyCode,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entity row", err)
		}
		entities = append(entities, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entity rows", err)
	}

	return mapping.ToDomainEntitySlice(entities), nil
}
