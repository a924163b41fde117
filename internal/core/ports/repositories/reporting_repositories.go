package repositories

import (
	"context"
	"time"

	"github.com/kasaops/treasury/internal/core/domain"
)

// ReportingReader defines read-only rollup queries over the movement log.
// Implementations must be pure reads: no locks, no writes.
type ReportingReader interface {
	// SummarizePeriod folds all movements for the entity's accounts within
	// (year, month) into income/expense/net totals and per-account balances.
	SummarizePeriod(ctx context.Context, entityID string, year int, month time.Month) (*domain.TreasurySummary, error)
}

// ReportingRepositoryFacade is the facade for reporting queries.
type ReportingRepositoryFacade interface {
	ReportingReader
}
