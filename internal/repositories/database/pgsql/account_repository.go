package pgsql

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kasaops/treasury/internal/apperrors"
	"github.com/kasaops/treasury/internal/core/domain"
	portsrepo "github.com/kasaops/treasury/internal/core/ports/repositories"
	"github.com/kasaops/treasury/internal/models"
	"github.com/kasaops/treasury/internal/utils/mapping"
)

const accountColumns = `account_id, entity_id, name, account_number, kind, currency_code, description, is_active, created_at, created_by, last_updated_at, last_updated_by, balance`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for payment account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*models.PaymentAccount, error) {
	var m models.PaymentAccount
	err := row.Scan(
		&m.AccountID,
		&m.EntityID,
		&m.Name,
		&m.AccountNumber,
		&m.Kind,
		&m.CurrencyCode,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Balance,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.PaymentAccount) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO payment_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.EntityID,
		m.Name,
		m.AccountNumber,
		m.Kind,
		m.CurrencyCode,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Balance,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert account "+m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.PaymentAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM payment_accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}

	d := mapping.ToDomainAccount(*m)
	return &d, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.PaymentAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.PaymentAccount{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM payment_accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.PaymentAccount, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}

	return accounts, nil
}

// FindAccountByNumber retrieves an account by its account number within an entity.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, entityID string, accountNumber string) (*domain.PaymentAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM payment_accounts WHERE entity_id = $1 AND account_number = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, entityID, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by number "+accountNumber, err)
	}

	d := mapping.ToDomainAccount(*m)
	return &d, nil
}

// ListAccountsByEntity retrieves a paginated list of accounts for an entity.
func (r *PgxAccountRepository) ListAccountsByEntity(ctx context.Context, entityID string, limit int, offset int) ([]domain.PaymentAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM payment_accounts
		WHERE entity_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, entityID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for entity "+entityID, err)
	}
	defer rows.Close()

	accounts := []models.PaymentAccount{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row for entity "+entityID, err)
		}
		accounts = append(accounts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows for entity "+entityID, err)
	}

	return mapping.ToDomainAccountSlice(accounts), nil
}

// UpdateAccountMetadata updates the mutable display fields of an account.
// Kind, currency and owning entity are immutable and deliberately absent.
func (r *PgxAccountRepository) UpdateAccountMetadata(ctx context.Context, account domain.PaymentAccount) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE payment_accounts
		SET name = $2,
		    description = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + m.AccountID + " not found for update")
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, actor string, now time.Time) error {
	query := `
		UPDATE payment_accounts
		SET is_active = FALSE,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, actor)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + accountID + " not found for deactivation")
	}
	return nil
}

// FindAccountsByIDsForUpdate selects accounts and locks their rows within a
// transaction. IDs are locked in sorted order so concurrent postings touching
// the same accounts never deadlock.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.PaymentAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.PaymentAccount{}, nil
	}

	sorted := make([]string, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Strings(sorted)

	query := `SELECT ` + accountColumns + ` FROM payment_accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.PaymentAccount, len(sorted))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked account row", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked account rows", err)
	}

	for _, id := range sorted {
		if _, ok := accounts[id]; !ok {
			return nil, apperrors.NewNotFoundError("account " + id + " not found for locking")
		}
	}

	return accounts, nil
}

// ApplyBalanceChangesInTx adjusts the cached balance for multiple accounts
// within a given transaction.
func (r *PgxAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, actor string, now time.Time) error {
	query := `
		UPDATE payment_accounts
		SET balance = balance + $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for accountID, change := range balanceChanges {
		batch.Queue(query, accountID, change, now, actor)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to apply balance changes", err)
	}
	return nil
}
