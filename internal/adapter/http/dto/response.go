package dto

import (
	"time"

	"github.com/iho/bookkeeper/internal/domain"
)

// Response is the envelope every endpoint returns. Exactly one of Data
// and Errors is populated depending on Success.
type Response struct {
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Success bool     `json:"success"`
}

// SuccessResponse wraps data in a success envelope.
func SuccessResponse(data any, message string) Response {
	return Response{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// ErrorResponse wraps errors in a failure envelope.
func ErrorResponse(message string, errs ...string) Response {
	return Response{
		Success: false,
		Message: message,
		Errors:  errs,
	}
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ParentID  *string   `json:"parent_id,omitempty"`
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"account_type"`
	IsActive  bool      `json:"is_active"`
}

// AccountFromDomain converts a domain account.
func AccountFromDomain(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		ParentID:  a.ParentID,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts a slice of domain accounts.
func AccountsFromDomain(accounts []*domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = AccountFromDomain(a)
	}

	return out
}

// EntryResponse represents an entry in API responses. Amounts are
// decimal strings.
type EntryResponse struct {
	CreatedAt     time.Time `json:"created_at"`
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	AccountID     string    `json:"account_id"`
	AccountCode   string    `json:"account_code,omitempty"`
	AccountName   string    `json:"account_name,omitempty"`
	Description   string    `json:"description,omitempty"`
	DebitAmount   string    `json:"debit_amount"`
	CreditAmount  string    `json:"credit_amount"`
}

// TransactionResponse represents a transaction with its entries.
type TransactionResponse struct {
	CreatedAt       time.Time       `json:"created_at"`
	TransactionDate time.Time       `json:"transaction_date"`
	ID              string          `json:"id"`
	Reference       string          `json:"reference"`
	Description     string          `json:"description"`
	Entries         []EntryResponse `json:"entries"`
}

// TransactionFromDomain converts a domain transaction.
func TransactionFromDomain(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:              t.ID,
		Reference:       t.Reference,
		Description:     t.Description,
		TransactionDate: t.Date,
		CreatedAt:       t.CreatedAt,
		Entries:         make([]EntryResponse, len(t.Entries)),
	}

	for i, e := range t.Entries {
		resp.Entries[i] = EntryResponse{
			ID:            e.ID,
			TransactionID: e.TransactionID,
			AccountID:     e.AccountID,
			AccountCode:   e.AccountCode,
			AccountName:   e.AccountName,
			Description:   e.Description,
			DebitAmount:   e.Debit.String(),
			CreditAmount:  e.Credit.String(),
			CreatedAt:     e.CreatedAt,
		}
	}

	return resp
}

// TransactionsFromDomain converts a slice of domain transactions.
func TransactionsFromDomain(transactions []*domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		out[i] = TransactionFromDomain(t)
	}

	return out
}
