package pgsql

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kasaops/treasury/internal/apperrors"
	"github.com/kasaops/treasury/internal/core/domain"
	portsrepo "github.com/kasaops/treasury/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
	sb sq.StatementBuilderType
}

// newPgxReportingRepository creates a new repository for read-only rollups.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
		sb:             sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

type accountSummaryRow struct {
	AccountID    string          `db:"account_id"`
	AccountName  string          `db:"account_name"`
	Kind         string          `db:"kind"`
	CurrencyCode string          `db:"currency_code"`
	Income       decimal.Decimal `db:"income"`
	Expense      decimal.Decimal `db:"expense"`
	Balance      decimal.Decimal `db:"balance"`
}

// SummarizePeriod folds all movements for the entity's accounts within
// (year, month) into income/expense/net totals and per-account balances.
// One aggregate query, no locks; a concurrent transfer is observed with both
// legs applied or neither because legs commit in one transaction.
func (r *PgxReportingRepository) SummarizePeriod(ctx context.Context, entityID string, year int, month time.Month) (*domain.TreasurySummary, error) {
	periodStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)

	query, args, err := r.sb.
		Select(
			"a.account_id",
			"a.name AS account_name",
			"a.kind",
			"a.currency_code",
			"COALESCE(SUM(m.amount) FILTER (WHERE m.amount > 0), 0) AS income",
			"COALESCE(-SUM(m.amount) FILTER (WHERE m.amount < 0), 0) AS expense",
			"COALESCE(SUM(m.amount), 0) AS balance",
		).
		From("payment_accounts a").
		LeftJoin("account_movements m ON m.account_id = a.account_id AND m.posting_date >= ? AND m.posting_date < ?", periodStart, periodEnd).
		Where(sq.Eq{"a.entity_id": entityID}).
		GroupBy("a.account_id", "a.name", "a.kind", "a.currency_code").
		OrderBy("a.name ASC").
		ToSql()
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to build summary query", err)
	}

	var rows []accountSummaryRow
	if err := pgxscan.Select(ctx, r.Pool, &rows, query, args...); err != nil {
		return nil, apperrors.NewAppError(500, "failed to query period summary for entity "+entityID, err)
	}

	summary := &domain.TreasurySummary{
		EntityID:     entityID,
		Year:         year,
		Month:        int(month),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		NetResult:    decimal.Zero,
		PerAccount:   make([]domain.AccountPeriodBalance, 0, len(rows)),
	}
	for _, row := range rows {
		summary.TotalIncome = summary.TotalIncome.Add(row.Income)
		summary.TotalExpense = summary.TotalExpense.Add(row.Expense)
		summary.NetResult = summary.NetResult.Add(row.Balance)
		summary.PerAccount = append(summary.PerAccount, domain.AccountPeriodBalance{
			AccountID:    row.AccountID,
			AccountName:  row.AccountName,
			Kind:         domain.AccountKind(row.Kind),
			CurrencyCode: row.CurrencyCode,
			Balance:      row.Balance,
		})
	}

	return summary, nil
}
