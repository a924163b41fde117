package pgsql

import (
	"context"
	"errors"
	"strconv"
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
	"github.com/kasaops/treasury/internal/utils/pagination"
)

const movementColumns = `movement_id, account_id, entity_id, amount, currency_code, posting_date, source_kind, source_ref, reason, idempotency_key, reverses_movement_id, reversed_by_movement_id, created_at, created_by, last_updated_at, last_updated_by`

// canonicalOrder is the total order every derived computation folds in.
const canonicalOrder = `ORDER BY posting_date ASC, created_at ASC, movement_id ASC`

type PgxMovementRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade

	// autoLockDay is the default auto-lock day applied when a period record
	// carries none (or does not exist). Zero disables auto-locking.
	autoLockDay int
}

// newPgxMovementRepository creates a new repository for ledger movements and transfers.
func newPgxMovementRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade, autoLockDay int) portsrepo.MovementRepositoryWithTx {
	return &PgxMovementRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		autoLockDay:    autoLockDay,
	}
}

var _ portsrepo.MovementRepositoryWithTx = (*PgxMovementRepository)(nil)

// checkPeriodPostableTx re-checks the posting date's period status inside the
// write transaction. FOR SHARE blocks a concurrent lock transition from
// committing between this check and our insert; a missing row means the
// period is implicitly OPEN. The auto-lock deadline is evaluated here too, so
// a posting racing the deadline cannot land after it has passed.
func (r *PgxMovementRepository) checkPeriodPostableTx(ctx context.Context, tx pgx.Tx, entityID string, postingDate time.Time) error {
	year, month := domain.PeriodOf(postingDate)

	var status models.PeriodStatus
	var periodAutoLockDay int
	err := tx.QueryRow(ctx, `
		SELECT status, auto_lock_day FROM accounting_periods
		WHERE entity_id = $1 AND year = $2 AND month = $3
		FOR SHARE;
	`, entityID, year, int(month)).Scan(&status, &periodAutoLockDay)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if domain.AutoLockExpired(year, month, r.autoLockDay, time.Now()) {
				return apperrors.ErrPeriodLocked
			}
			return nil
		}
		return apperrors.NewAppError(500, "failed to check period status", err)
	}

	if status == models.Locked {
		return apperrors.ErrPeriodLocked
	}
	if periodAutoLockDay == 0 {
		periodAutoLockDay = r.autoLockDay
	}
	if domain.AutoLockExpired(year, month, periodAutoLockDay, time.Now()) {
		return apperrors.ErrPeriodLocked
	}
	return nil
}

// insertMovementTx inserts one movement row inside a transaction. A unique
// violation on the idempotency key index surfaces as ErrDuplicate.
func (r *PgxMovementRepository) insertMovementTx(ctx context.Context, tx pgx.Tx, movement domain.AccountMovement) error {
	m := mapping.ToModelMovement(movement)
	query := `
		INSERT INTO account_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		m.MovementID,
		m.AccountID,
		m.EntityID,
		m.Amount,
		m.CurrencyCode,
		m.PostingDate,
		m.SourceKind,
		m.SourceRef,
		m.Reason,
		m.IdempotencyKey,
		m.ReversesMovementID,
		m.ReversedByMovementID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert movement "+m.MovementID, err)
	}
	return nil
}

// AppendMovement appends one immutable movement and applies its amount to the
// account's cached balance, all within one transaction.
func (r *PgxMovementRepository) AppendMovement(ctx context.Context, movement domain.AccountMovement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.checkPeriodPostableTx(ctx, tx, movement.EntityID, movement.PostingDate); err != nil {
		return err
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{movement.AccountID}); err != nil {
		return err
	}

	if err := r.insertMovementTx(ctx, tx, movement); err != nil {
		return err
	}

	balanceChanges := map[string]decimal.Decimal{movement.AccountID: movement.Amount}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, movement.CreatedBy, movement.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// AppendTransferPair persists the transfer header and both legs in one
// transaction. No transfer ever exists with a single leg. The source balance
// check runs against the row-locked account, not the caller's snapshot, so two
// concurrent transfers cannot both spend the same funds.
func (r *PgxMovementRepository) AppendTransferPair(ctx context.Context, transfer domain.AccountTransfer, debitLeg, creditLeg domain.AccountMovement, enforceSourceFunds bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.checkPeriodPostableTx(ctx, tx, transfer.EntityID, transfer.TransferDate); err != nil {
		return err
	}

	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{transfer.FromAccountID, transfer.ToAccountID})
	if err != nil {
		return err
	}
	if enforceSourceFunds {
		source, ok := locked[transfer.FromAccountID]
		if !ok {
			return apperrors.ErrNotFound
		}
		if source.Balance.Add(debitLeg.Amount).IsNegative() {
			return apperrors.ErrInsufficientFunds
		}
	}

	m := mapping.ToModelTransfer(transfer)
	headerQuery := `
		INSERT INTO account_transfers (transfer_id, entity_id, from_account_id, to_account_id, amount, currency_code, transfer_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	if _, err := tx.Exec(ctx, headerQuery,
		m.TransferID,
		m.EntityID,
		m.FromAccountID,
		m.ToAccountID,
		m.Amount,
		m.CurrencyCode,
		m.TransferDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert transfer "+m.TransferID, err)
	}

	if err := r.insertMovementTx(ctx, tx, debitLeg); err != nil {
		return err
	}
	if err := r.insertMovementTx(ctx, tx, creditLeg); err != nil {
		return err
	}

	balanceChanges := map[string]decimal.Decimal{
		debitLeg.AccountID:  debitLeg.Amount,
		creditLeg.AccountID: creditLeg.Amount,
	}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, transfer.CreatedBy, transfer.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// AppendReversal appends the reversal movement and sets the original's
// reversed-by link atomically. The conditional UPDATE doubles as the
// concurrency guard: whichever transaction flips the link first wins, the
// loser sees zero rows affected and fails with ErrAlreadyReversed.
func (r *PgxMovementRepository) AppendReversal(ctx context.Context, reversal domain.AccountMovement, originalMovementID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.checkPeriodPostableTx(ctx, tx, reversal.EntityID, reversal.PostingDate); err != nil {
		return err
	}

	linkQuery := `
		UPDATE account_movements
		SET reversed_by_movement_id = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE movement_id = $1 AND reversed_by_movement_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, linkQuery, originalMovementID, reversal.MovementID, reversal.CreatedAt, reversal.CreatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link reversal for movement "+originalMovementID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyReversed
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{reversal.AccountID}); err != nil {
		return err
	}

	if err := r.insertMovementTx(ctx, tx, reversal); err != nil {
		return err
	}

	balanceChanges := map[string]decimal.Decimal{reversal.AccountID: reversal.Amount}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, reversal.CreatedBy, reversal.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func scanMovement(row pgx.Row) (*models.AccountMovement, error) {
	var m models.AccountMovement
	err := row.Scan(
		&m.MovementID,
		&m.AccountID,
		&m.EntityID,
		&m.Amount,
		&m.CurrencyCode,
		&m.PostingDate,
		&m.SourceKind,
		&m.SourceRef,
		&m.Reason,
		&m.IdempotencyKey,
		&m.ReversesMovementID,
		&m.ReversedByMovementID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindMovementByID retrieves a single movement.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.AccountMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM account_movements WHERE movement_id = $1;`

	m, err := scanMovement(r.Pool.QueryRow(ctx, query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find movement by ID "+movementID, err)
	}

	d := mapping.ToDomainMovement(*m)
	return &d, nil
}

// FindMovementByIdempotencyKey retrieves the movement previously posted with
// the given key.
func (r *PgxMovementRepository) FindMovementByIdempotencyKey(ctx context.Context, key string) (*domain.AccountMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM account_movements WHERE idempotency_key = $1;`

	m, err := scanMovement(r.Pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find movement by idempotency key", err)
	}

	d := mapping.ToDomainMovement(*m)
	return &d, nil
}

// FindMovementsByDocumentID retrieves the document's payment movements plus
// any reversals of them, in canonical order. Including the reversals keeps
// the amount-paid fold honest after an undo.
func (r *PgxMovementRepository) FindMovementsByDocumentID(ctx context.Context, documentID string) ([]domain.AccountMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM account_movements
		WHERE (source_kind = 'DOCUMENT_PAYMENT' AND source_ref = $1)
		   OR reverses_movement_id IN (
		        SELECT movement_id FROM account_movements
		        WHERE source_kind = 'DOCUMENT_PAYMENT' AND source_ref = $1
		      )
		` + canonicalOrder + `;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query movements for document "+documentID, err)
	}
	defer rows.Close()

	movements := []models.AccountMovement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan movement row for document "+documentID, err)
		}
		movements = append(movements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating movement rows for document "+documentID, err)
	}

	return mapping.ToDomainMovementSlice(movements), nil
}

// ListMovementsByAccount retrieves a paginated slice of an account's movement
// stream in canonical order, optionally bounded by posting date.
func (r *PgxMovementRepository) ListMovementsByAccount(ctx context.Context, accountID string, from, to *time.Time, limit int, nextToken *string) ([]domain.AccountMovement, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + movementColumns + ` FROM account_movements`
	filterClause := `WHERE account_id = $1`
	args := []interface{}{accountID}

	if from != nil {
		args = append(args, *from)
		filterClause += ` AND posting_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		filterClause += ` AND posting_date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastPostingDate, lastCreatedAt, lastMovementID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Row comparison over the full canonical key, so boundary rows sharing
		// (posting_date, created_at) are never skipped.
		args = append(args, lastPostingDate, lastCreatedAt, lastMovementID)
		filterClause += ` AND (posting_date, created_at, movement_id) > ($` + strconv.Itoa(len(args)-2) + `, $` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + canonicalOrder + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query movements for account "+accountID, err)
	}
	defer rows.Close()

	movements := make([]models.AccountMovement, 0, fetchLimit)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan movement row for account "+accountID, err)
		}
		movements = append(movements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating movement rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := movements
	if len(movements) > limit {
		last := movements[limit-1]
		token := pagination.EncodeToken(last.PostingDate, last.CreatedAt, last.MovementID)
		nextTokenVal = &token
		results = movements[:limit]
	}

	return mapping.ToDomainMovementSlice(results), nextTokenVal, nil
}

// SumMovements folds all signed amounts for the account with posting date
// <= asOf. This is the from-scratch replay path that must always reproduce
// the cached balance column.
func (r *PgxMovementRepository) SumMovements(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM account_movements WHERE account_id = $1`
	args := []interface{}{accountID}
	if asOf != nil {
		query += ` AND posting_date <= $2`
		args = append(args, *asOf)
	}
	query += `;`

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum movements for account "+accountID, err)
	}
	return sum, nil
}

// FindTransferByID retrieves a transfer header.
func (r *PgxMovementRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.AccountTransfer, error) {
	query := `
		SELECT transfer_id, entity_id, from_account_id, to_account_id, amount, currency_code, transfer_date, created_at, created_by, last_updated_at, last_updated_by
		FROM account_transfers
		WHERE transfer_id = $1;
	`
	var m models.AccountTransfer
	err := r.Pool.QueryRow(ctx, query, transferID).Scan(
		&m.TransferID,
		&m.EntityID,
		&m.FromAccountID,
		&m.ToAccountID,
		&m.Amount,
		&m.CurrencyCode,
		&m.TransferDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transfer by ID "+transferID, err)
	}

	d := mapping.ToDomainTransfer(m)
	return &d, nil
}
