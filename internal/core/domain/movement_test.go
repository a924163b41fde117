package domain_test

import (
	"testing"
	"time"

	"github.com/kasaops/treasury/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func mv(id string, postingDate, createdAt time.Time, amount string) domain.AccountMovement {
	m := domain.AccountMovement{
		MovementID:  id,
		AccountID:   "acc-1",
		EntityID:    "ent-1",
		Amount:      decimal.RequireFromString(amount),
		PostingDate: postingDate,
	}
	m.CreatedAt = createdAt
	return m
}

func TestAccountMovement_IsReversed(t *testing.T) {
	tests := []struct {
		name     string
		movement domain.AccountMovement
		want     bool
	}{
		{
			name:     "no reversal link",
			movement: domain.AccountMovement{},
			want:     false,
		},
		{
			name:     "empty reversal link",
			movement: domain.AccountMovement{ReversedByMovementID: strPtr("")},
			want:     false,
		},
		{
			name:     "reversed",
			movement: domain.AccountMovement{ReversedByMovementID: strPtr("mov-2")},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.movement.IsReversed())
		})
	}
}

func TestAccountMovement_IsReversal(t *testing.T) {
	assert.True(t, domain.AccountMovement{SourceKind: domain.SourceReversal}.IsReversal())
	assert.False(t, domain.AccountMovement{SourceKind: domain.SourceAdjustment}.IsReversal())
	assert.False(t, domain.AccountMovement{SourceKind: domain.SourceDocumentPayment}.IsReversal())
}

func TestLessCanonical(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	creation1 := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
	creation2 := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a    domain.AccountMovement
		b    domain.AccountMovement
		want bool
	}{
		{
			name: "earlier posting date wins over later creation",
			a:    mv("zzz", day1, creation2, "10"),
			b:    mv("aaa", day2, creation1, "10"),
			want: true,
		},
		{
			name: "same posting date falls back to creation time",
			a:    mv("zzz", day1, creation1, "10"),
			b:    mv("aaa", day1, creation2, "10"),
			want: true,
		},
		{
			name: "same posting date and creation time falls back to movement ID",
			a:    mv("aaa", day1, creation1, "10"),
			b:    mv("bbb", day1, creation1, "10"),
			want: true,
		},
		{
			name: "equal movements are not less",
			a:    mv("aaa", day1, creation1, "10"),
			b:    mv("aaa", day1, creation1, "10"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.LessCanonical(tt.a, tt.b))
		})
	}
}

func TestSortCanonical(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	creation1 := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
	creation2 := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)

	movements := []domain.AccountMovement{
		mv("ddd", day2, creation1, "1"),
		mv("bbb", day1, creation1, "1"),
		mv("ccc", day1, creation2, "1"),
		mv("aaa", day1, creation1, "1"),
	}

	domain.SortCanonical(movements)

	gotIDs := make([]string, 0, len(movements))
	for _, m := range movements {
		gotIDs = append(gotIDs, m.MovementID)
	}
	assert.Equal(t, []string{"aaa", "bbb", "ccc", "ddd"}, gotIDs)
}

func TestFoldBalance(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	day3 := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

	movements := []domain.AccountMovement{
		mv("m1", day1, created, "100.00"),
		mv("m2", day2, created, "-40.50"),
		mv("m3", day3, created, "25.25"),
	}

	tests := []struct {
		name string
		asOf time.Time
		want string
	}{
		{name: "no cutoff sums everything", asOf: time.Time{}, want: "84.75"},
		{name: "cutoff excludes later postings", asOf: day2, want: "59.5"},
		{name: "cutoff before first movement", asOf: day1.AddDate(0, 0, -1), want: "0"},
		{name: "cutoff on last posting date is inclusive", asOf: day3, want: "84.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.FoldBalance(movements, tt.asOf)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestFoldBalance_ReversalPairCancels(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	original := mv("m1", day, created, "200.00")
	reversal := mv("m2", day, created.Add(time.Hour), "-200.00")
	reversal.SourceKind = domain.SourceReversal
	reversal.ReversesMovementID = strPtr("m1")

	got := domain.FoldBalance([]domain.AccountMovement{original, reversal}, time.Time{})
	assert.True(t, got.IsZero(), "got %s, want 0", got)
}
