package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, reference, description, transaction_date, created_at, updated_at`

// Create inserts the transaction row inside the caller's database
// transaction. Entries are written by EntryRepository in the same unit.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO transactions (id, reference, description, transaction_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		transaction.ID,
		transaction.Reference,
		transaction.Description,
		timeToPgTimestamptz(transaction.Date),
		timeToPgTimestamptz(transaction.CreatedAt),
		timeToPgTimestamptz(transaction.UpdatedAt),
	)
	if isUniqueViolation(err) {
		// The unique index closes the check-then-insert race.
		return domain.ErrDuplicateReference
	}

	return err
}

// GetByID retrieves a transaction by ID, without entries.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	return scanTransaction(row)
}

// ReferenceExists reports whether a reference is already used.
func (r *TransactionRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transactions WHERE reference = $1)`,
		reference,
	).Scan(&exists)

	return exists, err
}

// List lists transactions with pagination, newest first.
func (r *TransactionRepository) List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}

// Delete removes a transaction; entries go with it via ON DELETE CASCADE.
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		transaction domain.Transaction
		date        pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&transaction.ID,
		&transaction.Reference,
		&transaction.Description,
		&date,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	transaction.Date = date.Time
	transaction.CreatedAt = createdAt.Time
	transaction.UpdatedAt = updatedAt.Time

	return &transaction, nil
}
