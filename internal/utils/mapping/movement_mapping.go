package mapping

import (
	"github.com/kasaops/treasury/internal/core/domain"
	"github.com/kasaops/treasury/internal/models"
)

// ToModelMovement converts a domain AccountMovement to a model AccountMovement
func ToModelMovement(d domain.AccountMovement) models.AccountMovement {
	return models.AccountMovement{
		MovementID:           d.MovementID,
		AccountID:            d.AccountID,
		EntityID:             d.EntityID,
		Amount:               d.Amount,
		CurrencyCode:         d.CurrencyCode,
		PostingDate:          d.PostingDate,
		SourceKind:           models.SourceKind(d.SourceKind),
		SourceRef:            d.SourceRef,
		Reason:               d.Reason,
		IdempotencyKey:       d.IdempotencyKey,
		ReversesMovementID:   d.ReversesMovementID,
		ReversedByMovementID: d.ReversedByMovementID,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMovement converts a model AccountMovement to a domain AccountMovement
func ToDomainMovement(m models.AccountMovement) domain.AccountMovement {
	return domain.AccountMovement{
		MovementID:           m.MovementID,
		AccountID:            m.AccountID,
		EntityID:             m.EntityID,
		Amount:               m.Amount,
		CurrencyCode:         m.CurrencyCode,
		PostingDate:          m.PostingDate,
		SourceKind:           domain.SourceKind(m.SourceKind),
		SourceRef:            m.SourceRef,
		Reason:               m.Reason,
		IdempotencyKey:       m.IdempotencyKey,
		ReversesMovementID:   m.ReversesMovementID,
		ReversedByMovementID: m.ReversedByMovementID,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMovementSlice converts a slice of model movements to domain movements
func ToDomainMovementSlice(ms []models.AccountMovement) []domain.AccountMovement {
	ds := make([]domain.AccountMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}

// ToModelTransfer converts a domain AccountTransfer to a model AccountTransfer
func ToModelTransfer(d domain.AccountTransfer) models.AccountTransfer {
	return models.AccountTransfer{
		TransferID:    d.TransferID,
		EntityID:      d.EntityID,
		FromAccountID: d.FromAccountID,
		ToAccountID:   d.ToAccountID,
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		TransferDate:  d.TransferDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransfer converts a model AccountTransfer to a domain AccountTransfer
func ToDomainTransfer(m models.AccountTransfer) domain.AccountTransfer {
	return domain.AccountTransfer{
		TransferID:    m.TransferID,
		EntityID:      m.EntityID,
		FromAccountID: m.FromAccountID,
		ToAccountID:   m.ToAccountID,
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		TransferDate:  m.TransferDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
