package repositories

import (
	"context"
	"time"

	"github.com/kasaops/treasury/internal/core/domain"
)

// PeriodReader defines read operations for accounting periods
type PeriodReader interface {
	// FindPeriod retrieves the period record for (entity, year, month).
	// Returns ErrNotFound when no record exists, which callers treat as OPEN.
	FindPeriod(ctx context.Context, entityID string, year int, month time.Month) (*domain.AccountingPeriod, error)

	// ListPeriodsByEntity retrieves all stored period records for an entity,
	// newest first.
	ListPeriodsByEntity(ctx context.Context, entityID string, limit int, offset int) ([]domain.AccountingPeriod, error)
}

// PeriodWriter defines write operations for accounting periods
type PeriodWriter interface {
	// SavePeriod persists a new period record.
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) error

	// UpdatePeriodStatus transitions a period, recording lock metadata when
	// the new status is LOCKED. The update takes a row lock so the
	// transition serializes against in-flight postings for the period.
	UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, actor string, reason string, now time.Time) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
