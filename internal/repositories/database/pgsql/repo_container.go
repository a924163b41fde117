package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/kasaops/treasury/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository. The movement repository
// takes the account repository so ledger writes can lock account rows and
// update cached balances inside their own transaction, and the default
// auto-lock day so its in-transaction period check matches the service-level
// guard.
func NewRepositoryProvider(dbPool *pgxpool.Pool, autoLockDay int) portsrepo.RepositoryProvider {
	entityRepo := newPgxEntityRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	movementRepo := newPgxMovementRepository(dbPool, accountRepo, autoLockDay)
	periodRepo := newPgxPeriodRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		EntityRepo:    entityRepo,
		AccountRepo:   accountRepo,
		MovementRepo:  movementRepo,
		PeriodRepo:    periodRepo,
		ReportingRepo: reportingRepo,
	}
}
