package domain_test

import (
	"testing"
	"time"

	"github.com/kasaops/treasury/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAccountingPeriod_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.PeriodStatus
		to   domain.PeriodStatus
		want bool
	}{
		{name: "open to closing", from: domain.PeriodOpen, to: domain.PeriodClosing, want: true},
		{name: "open directly to locked", from: domain.PeriodOpen, to: domain.PeriodLocked, want: true},
		{name: "closing to locked", from: domain.PeriodClosing, to: domain.PeriodLocked, want: true},
		{name: "closing back to open", from: domain.PeriodClosing, to: domain.PeriodOpen, want: false},
		{name: "locked back to open", from: domain.PeriodLocked, to: domain.PeriodOpen, want: false},
		{name: "locked back to closing", from: domain.PeriodLocked, to: domain.PeriodClosing, want: false},
		{name: "open to open", from: domain.PeriodOpen, to: domain.PeriodOpen, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.AccountingPeriod{Status: tt.from}
			assert.Equal(t, tt.want, p.CanTransitionTo(tt.to))
		})
	}
}

func TestAccountingPeriod_Postable(t *testing.T) {
	assert.True(t, domain.AccountingPeriod{Status: domain.PeriodOpen}.Postable())
	assert.True(t, domain.AccountingPeriod{Status: domain.PeriodClosing}.Postable())
	assert.False(t, domain.AccountingPeriod{Status: domain.PeriodLocked}.Postable())
}

func TestAccountingPeriod_Contains(t *testing.T) {
	p := domain.AccountingPeriod{Year: 2025, Month: time.March}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{name: "first day of the month", date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), want: true},
		{name: "last day of the month", date: time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC), want: true},
		{name: "next month", date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), want: false},
		{name: "same month previous year", date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Contains(tt.date))
		})
	}
}

func TestPeriodOf(t *testing.T) {
	year, month := domain.PeriodOf(time.Date(2025, 12, 31, 18, 30, 0, 0, time.UTC))
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.December, month)
}

func TestAutoLockExpired(t *testing.T) {
	tests := []struct {
		name string
		day  int
		now  time.Time
		want bool
	}{
		{name: "before the deadline", day: 10, now: time.Date(2025, 4, 9, 23, 59, 59, 0, time.UTC), want: false},
		{name: "exactly at the deadline", day: 10, now: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), want: true},
		{name: "after the deadline", day: 10, now: time.Date(2025, 4, 10, 0, 0, 1, 0, time.UTC), want: true},
		{name: "zero day disables auto-lock", day: 0, now: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), want: false},
		{name: "negative day disables auto-lock", day: -1, now: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.AutoLockExpired(2025, time.March, tt.day, tt.now))
		})
	}

	// December rolls over into January of the next year.
	assert.True(t, domain.AutoLockExpired(2025, time.December, 10, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.False(t, domain.AutoLockExpired(2025, time.December, 10, time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)))
}
