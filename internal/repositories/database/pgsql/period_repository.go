package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kasaops/treasury/internal/apperrors"
	"github.com/kasaops/treasury/internal/core/domain"
	portsrepo "github.com/kasaops/treasury/internal/core/ports/repositories"
	"github.com/kasaops/treasury/internal/models"
	"github.com/kasaops/treasury/internal/utils/mapping"
)

const periodColumns = `period_id, entity_id, year, month, status, locked_at, locked_by, lock_reason, auto_lock_day, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (*models.AccountingPeriod, error) {
	var m models.AccountingPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.EntityID,
		&m.Year,
		&m.Month,
		&m.Status,
		&m.LockedAt,
		&m.LockedBy,
		&m.LockReason,
		&m.AutoLockDay,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SavePeriod persists a new period record.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelPeriod(period)
	query := `
		INSERT INTO accounting_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.EntityID,
		m.Year,
		m.Month,
		m.Status,
		m.LockedAt,
		m.LockedBy,
		m.LockReason,
		m.AutoLockDay,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert period "+m.PeriodID, err)
	}
	return nil
}

// FindPeriod retrieves the period record for (entity, year, month).
func (r *PgxPeriodRepository) FindPeriod(ctx context.Context, entityID string, year int, month time.Month) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE entity_id = $1 AND year = $2 AND month = $3;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, entityID, year, int(month)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period for entity "+entityID, err)
	}

	d := mapping.ToDomainPeriod(*m)
	return &d, nil
}

// ListPeriodsByEntity retrieves all stored period records for an entity, newest first.
func (r *PgxPeriodRepository) ListPeriodsByEntity(ctx context.Context, entityID string, limit int, offset int) ([]domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE entity_id = $1
		ORDER BY year DESC, month DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, entityID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query periods for entity "+entityID, err)
	}
	defer rows.Close()

	periods := []models.AccountingPeriod{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row for entity "+entityID, err)
		}
		periods = append(periods, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period rows for entity "+entityID, err)
	}

	return mapping.ToDomainPeriodSlice(periods), nil
}

// UpdatePeriodStatus transitions a period. The lock metadata is set when
// moving to LOCKED and cleared when reopening; every in-flight posting
// transaction holds FOR SHARE on this row, so the status flip serializes
// against them.
func (r *PgxPeriodRepository) UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, actor string, reason string, now time.Time) error {
	query := `
		UPDATE accounting_periods
		SET status = $2,
		    locked_at = CASE WHEN $2 = 'LOCKED' THEN $3 ELSE NULL END,
		    locked_by = CASE WHEN $2 = 'LOCKED' THEN $4 ELSE '' END,
		    lock_reason = CASE WHEN $2 = 'LOCKED' THEN $5 ELSE '' END,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE period_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, periodID, string(status), now, actor, reason)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update period status for "+periodID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("period " + periodID + " not found for update")
	}
	return nil
}
