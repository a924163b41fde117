package services

import (
	"context"
	"time"

	"github.com/kasaops/treasury/internal/core/domain"
)

// ReportingSvcFacade exposes read-only rollups over the movement log.
type ReportingSvcFacade interface {
	// Summary computes income/expense/net totals and per-account balances
	// for one entity and period. Never mutates the ledger.
	Summary(ctx context.Context, entityID string, year int, month time.Month) (*domain.TreasurySummary, error)
}
