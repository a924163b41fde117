package services

import (
	portsrepo "github.com/kasaops/treasury/internal/core/ports/repositories"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
	"github.com/kasaops/treasury/internal/platform/config"
)

// NewServiceContainer wires every service with its dependencies. The ledger
// service is constructed first because every posting processor funnels its
// writes through it.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	entitySvc := NewEntityService(repos.EntityRepo)
	accountSvc := NewAccountService(repos.AccountRepo, entitySvc)
	periodSvc := NewPeriodService(repos.PeriodRepo, entitySvc, cfg.AllowPeriodReopen, cfg.AutoLockDay)
	ledgerSvc := NewLedgerService(repos.MovementRepo, accountSvc, periodSvc, OverdraftPolicy(cfg.OverdraftPolicy))
	paymentSvc := NewPaymentService(repos.MovementRepo, ledgerSvc)
	transferSvc := NewTransferService(repos.MovementRepo, ledgerSvc)
	adjustmentSvc := NewAdjustmentService(ledgerSvc)
	reportingSvc := NewReportingService(repos.ReportingRepo, entitySvc)

	return &portssvc.ServiceContainer{
		Entity:     entitySvc,
		Account:    accountSvc,
		Ledger:     ledgerSvc,
		Period:     periodSvc,
		Payment:    paymentSvc,
		Transfer:   transferSvc,
		Adjustment: adjustmentSvc,
		Reporting:  reportingSvc,
	}
}
