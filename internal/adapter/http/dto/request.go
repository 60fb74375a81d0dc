package dto

import (
	"time"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	ParentID *string `json:"parent_id,omitempty"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Type     string  `json:"account_type"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Code:     r.Code,
		Name:     r.Name,
		Type:     r.Type,
		ParentID: r.ParentID,
	}
}

// UpdateAccountRequest represents a partial account update. Absent
// fields are left unchanged.
type UpdateAccountRequest struct {
	Code     *string `json:"code,omitempty"`
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"account_type,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		Code:     r.Code,
		Name:     r.Name,
		Type:     r.Type,
		ParentID: r.ParentID,
		IsActive: r.IsActive,
	}
}

// CreateEntryRequest represents one candidate entry. Amounts are decimal
// strings so clients never round through binary floats.
type CreateEntryRequest struct {
	DebitAmount  *string `json:"debit_amount,omitempty"`
	CreditAmount *string `json:"credit_amount,omitempty"`
	AccountID    string  `json:"account_id"`
	Description  string  `json:"description,omitempty"`
}

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	TransactionDate *time.Time           `json:"transaction_date,omitempty"`
	Reference       string               `json:"reference"`
	Description     string               `json:"description"`
	Entries         []CreateEntryRequest `json:"entries"`
}

// ToUseCaseInput converts to use case input, parsing amounts exactly.
func (r *CreateTransactionRequest) ToUseCaseInput() (usecase.CreateTransactionInput, error) {
	input := usecase.CreateTransactionInput{
		Reference:   r.Reference,
		Description: r.Description,
		Date:        r.TransactionDate,
		Entries:     make([]usecase.EntryInput, len(r.Entries)),
	}

	for i, e := range r.Entries {
		debit, err := domain.ParseOptionalAmount(e.DebitAmount)
		if err != nil {
			return usecase.CreateTransactionInput{}, err
		}

		credit, err := domain.ParseOptionalAmount(e.CreditAmount)
		if err != nil {
			return usecase.CreateTransactionInput{}, err
		}

		input.Entries[i] = usecase.EntryInput{
			AccountID:   e.AccountID,
			Debit:       debit,
			Credit:      credit,
			Description: e.Description,
		}
	}

	return input, nil
}
