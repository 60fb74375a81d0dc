package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/infrastructure/metrics"
)

// TransactionUseCase handles transaction recording and retrieval.
type TransactionUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	entryRepo       EntryRepository
	idGen           IDGenerator
	retrier         Retrier
	cache           Cache
	metrics         *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase. The metrics
// parameter may be nil.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
	m *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		entryRepo:       entryRepo,
		idGen:           idGen,
		retrier:         retrier,
		cache:           cache,
		metrics:         m,
	}
}

// EntryInput represents one candidate entry. Nil amount means the side
// was not supplied.
type EntryInput struct {
	Debit       *decimal.Decimal
	Credit      *decimal.Decimal
	AccountID   string
	Description string
}

// CreateTransactionInput represents input for recording a transaction.
type CreateTransactionInput struct {
	Date        *time.Time
	Reference   string
	Description string
	Entries     []EntryInput
}

// CreateTransaction validates a candidate transaction against the
// double-entry invariants and persists it atomically with its entries.
// Nothing is written on rejection.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	now := time.Now().UTC()

	date := now
	if input.Date != nil {
		date = *input.Date
	}

	draft := domain.DraftTransaction{
		Reference:   input.Reference,
		Description: input.Description,
		Date:        date,
		Entries:     make([]domain.DraftEntry, len(input.Entries)),
	}
	for i, e := range input.Entries {
		draft.Entries[i] = domain.DraftEntry{
			AccountID:   e.AccountID,
			Debit:       e.Debit,
			Credit:      e.Credit,
			Description: e.Description,
		}
	}

	lookup, err := uc.accountLookup(ctx, input.Entries)
	if err != nil {
		return nil, err
	}

	exists, err := uc.transactionRepo.ReferenceExists(ctx, input.Reference)
	if err != nil {
		return nil, err
	}

	transaction, err := domain.ValidateTransaction(draft, lookup, func(string) bool { return exists })
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.TransactionsRejected.WithLabelValues(rejectionReason(err)).Inc()
		}

		return nil, err
	}

	transaction.ID = uc.idGen.Generate()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now
	for i := range transaction.Entries {
		transaction.Entries[i].ID = uc.idGen.Generate()
		transaction.Entries[i].TransactionID = transaction.ID
		transaction.Entries[i].CreatedAt = now
	}

	err = uc.retrier.Retry(ctx, func() error {
		return uc.persist(ctx, transaction)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateBalances(ctx, transaction.Entries)

	if uc.metrics != nil {
		uc.metrics.TransactionsRecorded.Inc()
		uc.metrics.EntriesPerTransaction.Observe(float64(len(transaction.Entries)))
		uc.metrics.TransactionDuration.Observe(time.Since(now).Seconds())
	}

	return transaction, nil
}

// rejectionReason maps a validation error to a stable metric label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientEntries):
		return "insufficient_entries"
	case errors.Is(err, domain.ErrAmbiguousEntry):
		return "ambiguous_entry"
	case errors.Is(err, domain.ErrNonPositiveAmount):
		return "non_positive_amount"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "unknown_account"
	case errors.Is(err, domain.ErrUnbalancedTransaction):
		return "unbalanced"
	case errors.Is(err, domain.ErrDuplicateReference):
		return "duplicate_reference"
	default:
		return "other"
	}
}

// persist writes the transaction and all its entries in one database
// transaction. The unique index on reference closes the race between
// the validator's check and the insert.
func (uc *TransactionUseCase) persist(ctx context.Context, transaction *domain.Transaction) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.transactionRepo.Create(ctx, tx, transaction); err != nil {
		return err
	}

	for i := range transaction.Entries {
		if err := uc.entryRepo.Create(ctx, tx, &transaction.Entries[i]); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetTransaction retrieves a transaction with its entries, each entry
// annotated with its account's code and name.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	transaction, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.GetByTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	accounts := make(map[string]*domain.Account)
	for i := range entries {
		account, ok := accounts[entries[i].AccountID]
		if !ok {
			account, err = uc.accountRepo.GetByID(ctx, entries[i].AccountID)
			if err != nil {
				return nil, err
			}
			accounts[entries[i].AccountID] = account
		}

		entries[i].AccountCode = account.Code
		entries[i].AccountName = account.Name
	}

	transaction.Entries = entries

	return transaction, nil
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	Limit  int
	Offset int
}

// ListTransactions lists transactions with pagination.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.transactionRepo.List(ctx, input.Limit, input.Offset)
}

// DeleteTransaction removes a transaction and, through ownership, all of
// its entries.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id string) error {
	entries, err := uc.entryRepo.GetByTransaction(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidateBalances(ctx, entries)

	return nil
}

func (uc *TransactionUseCase) accountLookup(ctx context.Context, entries []EntryInput) (domain.AccountLookup, error) {
	accounts := make(map[string]*domain.Account, len(entries))

	for _, e := range entries {
		if e.AccountID == "" {
			continue
		}
		if _, ok := accounts[e.AccountID]; ok {
			continue
		}

		account, err := uc.accountRepo.GetByID(ctx, e.AccountID)
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Missing accounts surface through the validator so the
			// caller sees a single failure order.
			continue
		}
		if err != nil {
			return nil, err
		}

		accounts[e.AccountID] = account
	}

	return func(id string) (*domain.Account, bool) {
		a, ok := accounts[id]
		return a, ok
	}, nil
}

// invalidateBalances drops cached balances for every account touched by
// the entries. Cache errors are ignored; stale entries expire anyway.
func (uc *TransactionUseCase) invalidateBalances(ctx context.Context, entries []domain.Entry) {
	if uc.cache == nil {
		return
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.AccountID] {
			continue
		}
		seen[e.AccountID] = true

		_ = uc.cache.Delete(ctx, balanceCacheKey(e.AccountID))
	}
}
