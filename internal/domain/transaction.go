package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable double-entry record. Corrections are made
// by recording a new offsetting transaction, never by amending this one.
type Transaction struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Date        time.Time
	ID          string
	Reference   string
	Description string
	Entries     []Entry
}

// Entry is one single-sided line item within a transaction. Exactly one
// of Debit and Credit is non-zero. AccountCode and AccountName are
// denormalized for read paths and stay empty during validation.
type Entry struct {
	CreatedAt     time.Time
	ID            string
	TransactionID string
	AccountID     string
	AccountCode   string
	AccountName   string
	Description   string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
}

// DraftTransaction is a candidate transaction prior to validation.
type DraftTransaction struct {
	Date        time.Time
	Reference   string
	Description string
	Entries     []DraftEntry
}

// DraftEntry is a candidate entry. Nil means the side was not supplied,
// which is distinct from an explicit zero.
type DraftEntry struct {
	Debit       *decimal.Decimal
	Credit      *decimal.Decimal
	AccountID   string
	Description string
}

// Draft re-expresses a validated transaction as a draft, with only the
// populated side of each entry set. Validating the result reproduces the
// same normalized form.
func (t *Transaction) Draft() DraftTransaction {
	draft := DraftTransaction{
		Reference:   t.Reference,
		Description: t.Description,
		Date:        t.Date,
		Entries:     make([]DraftEntry, len(t.Entries)),
	}

	for i, e := range t.Entries {
		de := DraftEntry{AccountID: e.AccountID, Description: e.Description}
		if !e.Debit.IsZero() {
			d := e.Debit
			de.Debit = &d
		}
		if !e.Credit.IsZero() {
			c := e.Credit
			de.Credit = &c
		}
		draft.Entries[i] = de
	}

	return draft
}
