package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/infrastructure/metrics"
)

// BalanceUseCase computes account balances from committed entries.
type BalanceUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	cache       Cache
	cacheTTL    time.Duration
	metrics     *metrics.Metrics
}

// NewBalanceUseCase creates a new BalanceUseCase. The metrics parameter
// may be nil.
func NewBalanceUseCase(accountRepo AccountRepository, entryRepo EntryRepository, cache Cache, cacheTTL time.Duration, m *metrics.Metrics) *BalanceUseCase {
	return &BalanceUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		metrics:     m,
	}
}

// AccountBalance is one account's balance with its debit/credit totals.
type AccountBalance struct {
	AccountID   string          `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	DebitTotal  decimal.Decimal `json:"debit_total"`
	CreditTotal decimal.Decimal `json:"credit_total"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalance is the ledger-wide debit/credit aggregate.
type TrialBalance struct {
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
	Balanced     bool            `json:"balanced"`
}

func balanceCacheKey(accountID string) string {
	return "balance:" + accountID
}

// GetAccountBalance computes one account's own balance.
func (uc *BalanceUseCase) GetAccountBalance(ctx context.Context, accountID string) (*AccountBalance, error) {
	if uc.metrics != nil {
		uc.metrics.BalanceQueries.Inc()
	}

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, balanceCacheKey(accountID)); err == nil {
			var balance AccountBalance
			if err := json.Unmarshal([]byte(cached), &balance); err == nil {
				if uc.metrics != nil {
					uc.metrics.BalanceCacheHits.Inc()
				}

				return &balance, nil
			}
		}
	}

	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	balance := newAccountBalance(account, entries)

	if uc.cache != nil {
		if encoded, err := json.Marshal(balance); err == nil {
			_ = uc.cache.Set(ctx, balanceCacheKey(accountID), string(encoded), uc.cacheTTL)
		}
	}

	return balance, nil
}

// ListBalancesInput filters the bulk balance listing.
type ListBalancesInput struct {
	AccountType *string
}

// ListBalances computes the own balance of every active account,
// optionally filtered by type.
func (uc *BalanceUseCase) ListBalances(ctx context.Context, input ListBalancesInput) ([]*AccountBalance, error) {
	var typeFilter *domain.AccountType
	if input.AccountType != nil {
		t, err := domain.ParseAccountType(*input.AccountType)
		if err != nil {
			return nil, err
		}
		typeFilter = &t
	}

	accounts, err := uc.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	chart := domain.NewChart(accounts)

	balances := make([]*AccountBalance, 0, len(accounts))
	for _, account := range chart.Accounts() {
		if !account.IsActive {
			continue
		}
		if typeFilter != nil && account.Type != *typeFilter {
			continue
		}

		entries, err := uc.entryRepo.GetByAccount(ctx, account.ID)
		if err != nil {
			return nil, err
		}

		balances = append(balances, newAccountBalance(account, entries))
	}

	return balances, nil
}

// GetRolledUpBalance computes an account's balance consolidated with all
// of its descendants.
func (uc *BalanceUseCase) GetRolledUpBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	accounts, err := uc.accountRepo.ListAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	calc := domain.NewCalculator(domain.NewChart(accounts), func(id string) ([]domain.Entry, error) {
		return uc.entryRepo.GetByAccount(ctx, id)
	})

	return calc.BalanceIncludingDescendants(accountID)
}

// GetTrialBalance sums every entry's debit and credit sides across the
// whole ledger. An accepted-only ledger is always balanced; a mismatch
// means the store has been corrupted outside the validator.
func (uc *BalanceUseCase) GetTrialBalance(ctx context.Context) (*TrialBalance, error) {
	debits, credits, err := uc.entryRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	return &TrialBalance{
		TotalDebits:  debits,
		TotalCredits: credits,
		Balanced:     debits.Equal(credits),
	}, nil
}

func newAccountBalance(account *domain.Account, entries []domain.Entry) *AccountBalance {
	debits, credits := domain.DebitCreditTotals(entries)

	return &AccountBalance{
		AccountID:   account.ID,
		AccountCode: account.Code,
		AccountName: account.Name,
		AccountType: string(account.Type),
		DebitTotal:  debits,
		CreditTotal: credits,
		Balance:     domain.OwnBalance(account.Type, entries),
	}
}
