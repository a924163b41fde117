package mapping

import (
	"time"

	"github.com/kasaops/treasury/internal/core/domain"
	"github.com/kasaops/treasury/internal/models"
)

// ToModelPeriod converts a domain AccountingPeriod to a model AccountingPeriod
func ToModelPeriod(d domain.AccountingPeriod) models.AccountingPeriod {
	return models.AccountingPeriod{
		PeriodID:    d.PeriodID,
		EntityID:    d.EntityID,
		Year:        d.Year,
		Month:       int(d.Month),
		Status:      models.PeriodStatus(d.Status),
		LockedAt:    d.LockedAt,
		LockedBy:    d.LockedBy,
		LockReason:  d.LockReason,
		AutoLockDay: d.AutoLockDay,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model AccountingPeriod to a domain AccountingPeriod
func ToDomainPeriod(m models.AccountingPeriod) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:    m.PeriodID,
		EntityID:    m.EntityID,
		Year:        m.Year,
		Month:       time.Month(m.Month),
		Status:      domain.PeriodStatus(m.Status),
		LockedAt:    m.LockedAt,
		LockedBy:    m.LockedBy,
		LockReason:  m.LockReason,
		AutoLockDay: m.AutoLockDay,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPeriodSlice converts a slice of model periods to domain periods
func ToDomainPeriodSlice(ms []models.AccountingPeriod) []domain.AccountingPeriod {
	ds := make([]domain.AccountingPeriod, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPeriod(m)
	}
	return ds
}
