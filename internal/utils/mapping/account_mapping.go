package mapping

import (
	"github.com/kasaops/treasury/internal/core/domain"
	"github.com/kasaops/treasury/internal/models"
)

// ToModelAccount converts a domain PaymentAccount to a model PaymentAccount
func ToModelAccount(d domain.PaymentAccount) models.PaymentAccount {
	return models.PaymentAccount{
		AccountID:     d.AccountID,
		EntityID:      d.EntityID,
		Name:          d.Name,
		AccountNumber: d.AccountNumber,
		Kind:          models.AccountKind(d.Kind),
		CurrencyCode:  d.CurrencyCode,
		Description:   d.Description,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
		Balance:       d.Balance,
	}
}

// ToDomainAccount converts a model PaymentAccount to a domain PaymentAccount
func ToDomainAccount(m models.PaymentAccount) domain.PaymentAccount {
	return domain.PaymentAccount{
		AccountID:     m.AccountID,
		EntityID:      m.EntityID,
		Name:          m.Name,
		AccountNumber: m.AccountNumber,
		Kind:          domain.AccountKind(m.Kind),
		CurrencyCode:  m.CurrencyCode,
		Description:   m.Description,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
		Balance:       m.Balance,
	}
}

// ToDomainAccountSlice converts a slice of model accounts to domain accounts
func ToDomainAccountSlice(ms []models.PaymentAccount) []domain.PaymentAccount {
	ds := make([]domain.PaymentAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
