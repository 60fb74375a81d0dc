package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func amount(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func testAccounts() AccountLookup {
	accounts := map[string]*Account{
		"bank":    {ID: "bank", Code: "1100", Type: AccountTypeAsset, IsActive: true},
		"sales":   {ID: "sales", Code: "4000", Type: AccountTypeRevenue, IsActive: true},
		"payable": {ID: "payable", Code: "2000", Type: AccountTypeLiability, IsActive: true},
	}
	return func(id string) (*Account, bool) {
		a, ok := accounts[id]
		return a, ok
	}
}

func noReferences(string) bool { return false }

func TestValidateTransaction(t *testing.T) {
	tests := []struct {
		expectedErr error
		references  ReferenceSet
		name        string
		draft       DraftTransaction
	}{
		{
			name: "balanced two-entry transaction accepted",
			draft: DraftTransaction{
				Reference: "INV-001",
				Entries: []DraftEntry{
					{AccountID: "bank", Debit: amount("500.00")},
					{AccountID: "sales", Credit: amount("500.00")},
				},
			},
		},
		{
			name: "balanced multi-entry split accepted",
			draft: DraftTransaction{
				Reference: "INV-002",
				Entries: []DraftEntry{
					{AccountID: "bank", Debit: amount("300.00")},
					{AccountID: "bank", Debit: amount("200.00")},
					{AccountID: "sales", Credit: amount("500.00")},
				},
			},
		},
		{
			name: "single entry rejected",
			draft: DraftTransaction{
				Reference: "INV-003",
				Entries: []DraftEntry{
					{AccountID: "bank", Debit: amount("500.00")},
				},
			},
			expectedErr: ErrInsufficientEntries,
		},
		{
			name: "no entries rejected",
			draft: DraftTransaction{
				Reference: "INV-004",
			},
			expectedErr: ErrInsufficientEntries,
		},
		{
			name: "both sides set rejected",
			draft: DraftTransaction{
				Reference: "INV-005",
				Entries: []DraftEntry{
					{AccountID: "bank", Debit: amount("500.00"), Credit: amount("500.00")},
					{AccountID: "sales", Credit: amount("500.00")},
				},
			},
			expectedErr: ErrAmbiguousEntry,
		},
		{
			name: "neither side set rejected",
			draft: DraftTransaction{
				Reference: "INV-006",
				Entries: []DraftEntry{
					{AccountID: "bank"},
					{AccountID: "sales", Credit: amount("500.00")},
				},
			},
			expectedErr: ErrAmbiguousEntry,
		},
		{
			name: "explicit zero amount rejected",
			draft: DraftTransaction{
				Reference: "INV-007",
				Entries: []DraftEntry{
					{AccountID: "bank", Debit: amount("0")},
					{AccountID: "sales", Credit: amount("500.00")},
				},
			},
			expectedErr: ErrNonPositiveAmount,
		},
		{
			name: "negative amount rejected",
			draft: DraftTransaction{
				Reference: "INV-008",
				Entries: []DraftEntry{
					{AccountID: "bank", Debit: amount("-500.00")},
					{AccountID: "sales", Credit: amount("500.00")},
				},
			},
			expectedErr: ErrNonPositiveAmount,
		},
		{
			name: "unknown account rejected",
			draft: DraftTransaction{
				Reference: "INV-009",
				Entries: []DraftEntry{
					{AccountID: "bank", Debit: amount("500.00")},
					{AccountID: "ghost", Credit: amount("500.00")},
				},
			},
			expectedErr: ErrAccountNotFound,
		},
		{
			name: "unbalanced rejected",
			draft: DraftTransaction{
				Reference: "INV-010",
				Entries: []DraftEntry{
					{AccountID: "bank", Debit: amount("500.00")},
					{AccountID: "sales", Credit: amount("400.00")},
				},
			},
			expectedErr: ErrUnbalancedTransaction,
		},
		{
			name: "off by a cent rejected",
			draft: DraftTransaction{
				Reference: "INV-011",
				Entries: []DraftEntry{
					{AccountID: "bank", Debit: amount("100.01")},
					{AccountID: "sales", Credit: amount("100.00")},
				},
			},
			expectedErr: ErrUnbalancedTransaction,
		},
		{
			name: "duplicate reference rejected",
			draft: DraftTransaction{
				Reference: "INV-001",
				Entries: []DraftEntry{
					{AccountID: "bank", Debit: amount("500.00")},
					{AccountID: "sales", Credit: amount("500.00")},
				},
			},
			references:  func(ref string) bool { return ref == "INV-001" },
			expectedErr: ErrDuplicateReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			references := tt.references
			if references == nil {
				references = noReferences
			}

			tx, err := ValidateTransaction(tt.draft, testAccounts(), references)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tx == nil {
				t.Fatal("expected transaction, got nil")
			}

			// Accepted transactions always balance exactly.
			debits, credits := DebitCreditTotals(tx.Entries)
			if !debits.Equal(credits) {
				t.Errorf("accepted transaction does not balance: %s vs %s", debits, credits)
			}
		})
	}
}

func TestValidateTransaction_Normalization(t *testing.T) {
	draft := DraftTransaction{
		Reference:   "INV-100",
		Description: "invoice",
		Entries: []DraftEntry{
			{AccountID: "bank", Debit: amount("500.00")},
			{AccountID: "sales", Credit: amount("500.00")},
		},
	}

	tx, err := ValidateTransaction(draft, testAccounts(), noReferences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Unset sides carry an explicit zero.
	if !tx.Entries[0].Credit.IsZero() {
		t.Errorf("expected explicit zero credit, got %s", tx.Entries[0].Credit)
	}
	if !tx.Entries[1].Debit.IsZero() {
		t.Errorf("expected explicit zero debit, got %s", tx.Entries[1].Debit)
	}
}

func TestValidateTransaction_NormalizationIdempotent(t *testing.T) {
	draft := DraftTransaction{
		Reference: "INV-101",
		Entries: []DraftEntry{
			{AccountID: "bank", Debit: amount("250.50")},
			{AccountID: "payable", Credit: amount("250.50")},
		},
	}

	first, err := ValidateTransaction(draft, testAccounts(), noReferences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := ValidateTransaction(first.Draft(), testAccounts(), noReferences)
	if err != nil {
		t.Fatalf("revalidating normalized transaction failed: %v", err)
	}

	if len(first.Entries) != len(second.Entries) {
		t.Fatalf("entry count changed: %d vs %d", len(first.Entries), len(second.Entries))
	}

	for i := range first.Entries {
		a, b := first.Entries[i], second.Entries[i]
		if a.AccountID != b.AccountID || !a.Debit.Equal(b.Debit) || !a.Credit.Equal(b.Credit) {
			t.Errorf("entry %d changed: %+v vs %+v", i, a, b)
		}
	}
}
