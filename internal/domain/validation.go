package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountLookup resolves an account id against the caller's store.
type AccountLookup func(id string) (*Account, bool)

// ReferenceSet reports whether a transaction reference is already used.
type ReferenceSet func(reference string) bool

// ValidateTransaction checks a draft against the double-entry invariants
// and returns the normalized transaction, with an explicit zero on the
// unset side of every entry. The validator is storage-agnostic: accounts
// and existing references are supplied as read-only views.
//
// Checks run in order: entry count, single-sidedness, amount positivity,
// account resolution, balance equality, reference uniqueness. The first
// violation is returned.
func ValidateTransaction(draft DraftTransaction, accounts AccountLookup, references ReferenceSet) (*Transaction, error) {
	if len(draft.Entries) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientEntries, len(draft.Entries))
	}

	for i, e := range draft.Entries {
		if err := validateEntrySides(e); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	for i, e := range draft.Entries {
		if _, ok := accounts(e.AccountID); !ok {
			return nil, fmt.Errorf("entry %d: %w: %s", i, ErrAccountNotFound, e.AccountID)
		}
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, e := range draft.Entries {
		if e.Debit != nil {
			totalDebits = totalDebits.Add(*e.Debit)
		}
		if e.Credit != nil {
			totalCredits = totalCredits.Add(*e.Credit)
		}
	}

	if !totalDebits.Equal(totalCredits) {
		return nil, fmt.Errorf("%w: debits %s, credits %s", ErrUnbalancedTransaction, totalDebits, totalCredits)
	}

	if references(draft.Reference) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateReference, draft.Reference)
	}

	tx := &Transaction{
		Reference:   draft.Reference,
		Description: draft.Description,
		Date:        draft.Date,
		Entries:     make([]Entry, len(draft.Entries)),
	}

	for i, e := range draft.Entries {
		entry := Entry{
			AccountID:   e.AccountID,
			Description: e.Description,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if e.Debit != nil {
			entry.Debit = *e.Debit
		}
		if e.Credit != nil {
			entry.Credit = *e.Credit
		}
		tx.Entries[i] = entry
	}

	return tx, nil
}

// validateEntrySides enforces that exactly one side carries a positive
// amount. An explicit zero counts as unset so that already-normalized
// entries revalidate cleanly, but an entry whose only supplied side is
// zero or negative is a bad amount rather than a missing one.
func validateEntrySides(e DraftEntry) error {
	debitSet := e.Debit != nil && !e.Debit.IsZero()
	creditSet := e.Credit != nil && !e.Credit.IsZero()

	switch {
	case debitSet && creditSet:
		return fmt.Errorf("%w: both debit and credit set", ErrAmbiguousEntry)

	case !debitSet && !creditSet:
		if e.Debit == nil && e.Credit == nil {
			return fmt.Errorf("%w: neither debit nor credit set", ErrAmbiguousEntry)
		}

		return fmt.Errorf("%w: got 0", ErrNonPositiveAmount)

	case debitSet:
		if e.Debit.IsNegative() {
			return fmt.Errorf("%w: got %s", ErrNonPositiveAmount, e.Debit)
		}

	default:
		if e.Credit.IsNegative() {
			return fmt.Errorf("%w: got %s", ErrNonPositiveAmount, e.Credit)
		}
	}

	return nil
}
