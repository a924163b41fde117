package domain

import (
	"time"
)

// PeriodStatus is the state of an accounting period.
// Transitions are one-directional: OPEN -> CLOSING -> LOCKED. CLOSING is a
// grace state that still accepts postings; LOCKED rejects every posting
// dated inside the period, reversals and adjustments included.
type PeriodStatus string

const (
	PeriodOpen    PeriodStatus = "OPEN"
	PeriodClosing PeriodStatus = "CLOSING"
	PeriodLocked  PeriodStatus = "LOCKED"
)

// AccountingPeriod is the lock record for one (entity, year, month).
// A period with no stored record is implicitly OPEN.
type AccountingPeriod struct {
	PeriodID   string       `json:"periodID"` // Primary Key (UUID)
	EntityID   string       `json:"entityID"`
	Year       int          `json:"year"`
	Month      time.Month   `json:"month"`
	Status     PeriodStatus `json:"status"`
	LockedAt   *time.Time   `json:"lockedAt,omitempty"`
	LockedBy   string       `json:"lockedBy,omitempty"`
	LockReason string       `json:"lockReason,omitempty"`

	// AutoLockDay, when non-zero, is the day of the following month on
	// which the period is locked automatically.
	AutoLockDay int `json:"autoLockDay,omitempty"`

	AuditFields
}

// Postable reports whether movements dated inside the period may still be created.
func (p AccountingPeriod) Postable() bool {
	return p.Status != PeriodLocked
}

// Contains reports whether the given date falls inside this period.
func (p AccountingPeriod) Contains(date time.Time) bool {
	return date.Year() == p.Year && date.Month() == p.Month
}

// CanTransitionTo enforces the one-directional period state machine.
// Reopening a locked period is rejected here; callers that allow it behind
// configuration must bypass this check explicitly.
func (p AccountingPeriod) CanTransitionTo(next PeriodStatus) bool {
	switch p.Status {
	case PeriodOpen:
		return next == PeriodClosing || next == PeriodLocked
	case PeriodClosing:
		return next == PeriodLocked
	default:
		return false
	}
}

// PeriodOf returns the (year, month) bucket a posting date belongs to.
func PeriodOf(date time.Time) (int, time.Month) {
	return date.Year(), date.Month()
}

// AutoLockExpired reports whether the (year, month) period's auto-lock
// deadline has passed at the instant now. The deadline is midnight UTC on day
// `day` of the following month; time.Date normalizes the month overflow. A
// non-positive day disables auto-locking.
func AutoLockExpired(year int, month time.Month, day int, now time.Time) bool {
	if day <= 0 {
		return false
	}
	deadline := time.Date(year, month+1, day, 0, 0, 0, 0, time.UTC)
	return !now.UTC().Before(deadline)
}
