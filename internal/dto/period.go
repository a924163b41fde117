package dto

import (
	"time"

	"github.com/kasaops/treasury/internal/core/domain"
)

// ClosePeriodRequest moves a period into the CLOSING grace state.
type ClosePeriodRequest struct {
	Year  int        `json:"year" binding:"required"`
	Month time.Month `json:"month" binding:"required,min=1,max=12"`
}

// LockPeriodRequest locks a period against any further postings.
type LockPeriodRequest struct {
	Year   int        `json:"year" binding:"required"`
	Month  time.Month `json:"month" binding:"required,min=1,max=12"`
	Reason string     `json:"reason" binding:"required"`
}

// ReopenPeriodRequest reopens a locked period. Only honored when the engine
// is configured to allow it.
type ReopenPeriodRequest struct {
	Year   int        `json:"year" binding:"required"`
	Month  time.Month `json:"month" binding:"required,min=1,max=12"`
	Reason string     `json:"reason" binding:"required"`
}

// PeriodResponse defines the data returned for an accounting period.
type PeriodResponse struct {
	PeriodID    string              `json:"periodID"`
	EntityID    string              `json:"entityID"`
	Year        int                 `json:"year"`
	Month       int                 `json:"month"`
	Status      domain.PeriodStatus `json:"status"`
	LockedAt    *time.Time          `json:"lockedAt,omitempty"`
	LockedBy    string              `json:"lockedBy,omitempty"`
	LockReason  string              `json:"lockReason,omitempty"`
	AutoLockDay int                 `json:"autoLockDay,omitempty"`
}

// ToPeriodResponse converts a domain.AccountingPeriod to PeriodResponse DTO.
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:    p.PeriodID,
		EntityID:    p.EntityID,
		Year:        p.Year,
		Month:       int(p.Month),
		Status:      p.Status,
		LockedAt:    p.LockedAt,
		LockedBy:    p.LockedBy,
		LockReason:  p.LockReason,
		AutoLockDay: p.AutoLockDay,
	}
}

// ListPeriodsResponse wraps the list of stored period records.
type ListPeriodsResponse struct {
	Periods []PeriodResponse `json:"periods"`
}
