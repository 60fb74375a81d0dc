package domain

import "errors"

var (
	// Amount errors
	ErrInvalidAmount     = errors.New("amount must be a non-negative decimal")
	ErrNonPositiveAmount = errors.New("entry amount must be positive")

	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidCode        = errors.New("invalid account code")
	ErrInvalidName        = errors.New("invalid account name")
	ErrDuplicateCode      = errors.New("account code already exists")
	ErrParentNotFound     = errors.New("parent account not found")
	ErrAccountHasEntries  = errors.New("account has entries and cannot be deleted")
	ErrCycleDetected      = errors.New("account hierarchy contains a cycle")

	// Transaction errors
	ErrInsufficientEntries   = errors.New("transaction requires at least two entries")
	ErrAmbiguousEntry        = errors.New("entry must carry exactly one of debit or credit")
	ErrUnbalancedTransaction = errors.New("total debits must equal total credits")
	ErrDuplicateReference    = errors.New("transaction reference already exists")
	ErrTransactionNotFound   = errors.New("transaction not found")
)
