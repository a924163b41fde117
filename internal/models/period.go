package models

import "time"

// PeriodStatus indicates the state of an accounting period.
type PeriodStatus string

const (
	Open    PeriodStatus = "OPEN"
	Closing PeriodStatus = "CLOSING"
	Locked  PeriodStatus = "LOCKED"
)

// AccountingPeriod represents the lock record for one (entity, year, month).
type AccountingPeriod struct {
	PeriodID    string       `db:"period_id"`
	EntityID    string       `db:"entity_id"`
	Year        int          `db:"year"`
	Month       int          `db:"month"`
	Status      PeriodStatus `db:"status"`
	LockedAt    *time.Time   `db:"locked_at"` // Nullable
	LockedBy    string       `db:"locked_by"`
	LockReason  string       `db:"lock_reason"`
	AutoLockDay int          `db:"auto_lock_day"`
	AuditFields
}
