package mapping

import (
	"github.com/kasaops/treasury/internal/core/domain"
	"github.com/kasaops/treasury/internal/models"
)

// ToModelEntity converts a domain BusinessEntity to a model BusinessEntity
func ToModelEntity(d domain.BusinessEntity) models.BusinessEntity {
	return models.BusinessEntity{
		EntityID:            d.EntityID,
		Name:                d.Name,
		Description:         d.Description,
		DefaultCurrencyCode: d.DefaultCurrencyCode,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntity converts a model BusinessEntity to a domain BusinessEntity
func ToDomainEntity(m models.BusinessEntity) domain.BusinessEntity {
	return domain.BusinessEntity{
		EntityID:            m.EntityID,
		Name:                m.Name,
		Description:         m.Description,
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntitySlice converts a slice of model entities to domain entities
func ToDomainEntitySlice(ms []models.BusinessEntity) []domain.BusinessEntity {
	ds := make([]domain.BusinessEntity, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntity(m)
	}
	return ds
}
