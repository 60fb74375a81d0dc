package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository. Amounts are stored
// as NUMERIC, never binary floats, so aggregates stay exact.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `id, transaction_id, account_id, debit_amount, credit_amount, description, created_at`

// Create inserts an entry inside the caller's database transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Tx, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO entries (id, transaction_id, account_id, debit_amount, credit_amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID,
		entry.TransactionID,
		entry.AccountID,
		decimalToNumeric(entry.Debit),
		decimalToNumeric(entry.Credit),
		entry.Description,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// GetByTransaction retrieves the entries of one transaction in insertion
// order.
func (r *EntryRepository) GetByTransaction(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+` FROM entries
		WHERE transaction_id = $1
		ORDER BY created_at, id`,
		transactionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByAccount retrieves every entry posted to an account.
func (r *EntryRepository) GetByAccount(ctx context.Context, accountID string) ([]domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+` FROM entries
		WHERE account_id = $1
		ORDER BY created_at, id`,
		accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// CountByAccount counts the entries referencing an account.
func (r *EntryRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM entries WHERE account_id = $1`, accountID).Scan(&count)

	return count, err
}

// Totals sums the debit and credit sides across the whole ledger.
func (r *EntryRepository) Totals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	var debits, credits pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(debit_amount), 0), COALESCE(SUM(credit_amount), 0)
		FROM entries`,
	).Scan(&debits, &credits)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(debits), numericToDecimal(credits), nil
}

func scanEntries(rows pgx.Rows) ([]domain.Entry, error) {
	var entries []domain.Entry

	for rows.Next() {
		var (
			entry     domain.Entry
			debit     pgtype.Numeric
			credit    pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&entry.ID,
			&entry.TransactionID,
			&entry.AccountID,
			&debit,
			&credit,
			&entry.Description,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		entry.Debit = numericToDecimal(debit)
		entry.Credit = numericToDecimal(credit)
		entry.CreatedAt = createdAt.Time

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
