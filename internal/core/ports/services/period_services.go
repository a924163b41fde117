package services

import (
	"context"
	"time"

	"github.com/kasaops/treasury/internal/core/domain"
)

// PeriodGuardSvc is the gate every mutating ledger operation passes through.
type PeriodGuardSvc interface {
	// AssertPostable returns nil when a movement dated `date` may be posted
	// for the entity, or ErrPeriodLocked when that period is locked.
	// OPEN and CLOSING periods (and periods with no stored record) are postable.
	AssertPostable(ctx context.Context, entityID string, date time.Time) error
}

// PeriodAdminSvc defines the administrative period transitions.
type PeriodAdminSvc interface {
	// ClosePeriod moves a period into the CLOSING grace state.
	ClosePeriod(ctx context.Context, entityID string, year int, month time.Month, actor string) (*domain.AccountingPeriod, error)

	// LockPeriod locks a period against all further postings dated inside it.
	LockPeriod(ctx context.Context, entityID string, year int, month time.Month, actor string, reason string) (*domain.AccountingPeriod, error)

	// ReopenPeriod reverts a locked period to OPEN. Rejected with
	// ErrValidation unless the engine is configured to allow reopening.
	ReopenPeriod(ctx context.Context, entityID string, year int, month time.Month, actor string, reason string) (*domain.AccountingPeriod, error)
}

// PeriodReaderSvc defines read operations for accounting periods.
type PeriodReaderSvc interface {
	// GetPeriod returns the stored period record, or a synthesized OPEN
	// record when none exists yet.
	GetPeriod(ctx context.Context, entityID string, year int, month time.Month) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves the stored period records for an entity.
	ListPeriods(ctx context.Context, entityID string, limit int, offset int) ([]domain.AccountingPeriod, error)
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodGuardSvc
	PeriodAdminSvc
	PeriodReaderSvc
}
