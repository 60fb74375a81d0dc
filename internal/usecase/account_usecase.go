package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/infrastructure/metrics"
)

// AccountUseCase handles chart-of-accounts business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. The metrics parameter
// may be nil.
func NewAccountUseCase(accountRepo AccountRepository, entryRepo EntryRepository, idGen IDGenerator, m *metrics.Metrics) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
		metrics:     m,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	ParentID *string
	Code     string
	Name     string
	Type     string
}

// CreateAccount creates a new account in the chart.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateCode(input.Code); err != nil {
		return nil, err
	}

	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	accountType, err := domain.ParseAccountType(input.Type)
	if err != nil {
		return nil, err
	}

	existing, err := uc.accountRepo.GetByCode(ctx, input.Code)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateCode, input.Code)
	}

	if input.ParentID != nil {
		if _, err := uc.accountRepo.GetByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return nil, fmt.Errorf("%w: %s", domain.ErrParentNotFound, *input.ParentID)
			}

			return nil, err
		}
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Code:      input.Code,
		Name:      input.Name,
		Type:      accountType,
		ParentID:  input.ParentID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.accountRepo.List(ctx, input.Limit, input.Offset)
}

// UpdateAccountInput represents a partial account update. Nil fields are
// left unchanged.
type UpdateAccountInput struct {
	Code     *string
	Name     *string
	Type     *string
	ParentID *string
	IsActive *bool
}

// UpdateAccount applies a partial update to an account.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id string, input UpdateAccountInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Code != nil {
		if err := domain.ValidateCode(*input.Code); err != nil {
			return nil, err
		}

		existing, err := uc.accountRepo.GetByCode(ctx, *input.Code)
		if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateCode, *input.Code)
		}

		account.Code = *input.Code
	}

	if input.Name != nil {
		if err := domain.ValidateName(*input.Name); err != nil {
			return nil, err
		}

		account.Name = *input.Name
	}

	if input.Type != nil {
		accountType, err := domain.ParseAccountType(*input.Type)
		if err != nil {
			return nil, err
		}

		account.Type = accountType
	}

	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, fmt.Errorf("%w: account cannot be its own parent", domain.ErrCycleDetected)
		}

		parent, err := uc.accountRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return nil, fmt.Errorf("%w: %s", domain.ErrParentNotFound, *input.ParentID)
			}

			return nil, err
		}

		if err := uc.ensureNoCycle(ctx, id, parent); err != nil {
			return nil, err
		}

		account.ParentID = input.ParentID
	}

	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}

	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// DeactivateAccount marks an account inactive, preserving its history.
func (uc *AccountUseCase) DeactivateAccount(ctx context.Context, id string) (*domain.Account, error) {
	inactive := false
	return uc.UpdateAccount(ctx, id, UpdateAccountInput{IsActive: &inactive})
}

// DeleteAccount removes an account. Accounts referenced by entries keep
// their history and must be deactivated instead.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	if _, err := uc.accountRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := uc.entryRepo.CountByAccount(ctx, id)
	if err != nil {
		return err
	}

	if count > 0 {
		return fmt.Errorf("%w: %d entries", domain.ErrAccountHasEntries, count)
	}

	if err := uc.accountRepo.Delete(ctx, id); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsDeleted.Inc()
	}

	return nil
}

// ensureNoCycle verifies that re-parenting would not make the account an
// ancestor of itself.
func (uc *AccountUseCase) ensureNoCycle(ctx context.Context, id string, newParent *domain.Account) error {
	accounts, err := uc.accountRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	chart := domain.NewChart(accounts)

	ancestors, err := chart.Ancestors(newParent.ID)
	if err != nil {
		return err
	}

	for _, a := range ancestors {
		if a.ID == id {
			return fmt.Errorf("%w: %s is a descendant of %s", domain.ErrCycleDetected, newParent.ID, id)
		}
	}

	return nil
}
