package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DebitCreditTotals sums the debit and credit sides of a set of entries.
func DebitCreditTotals(entries []Entry) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero

	for _, e := range entries {
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}

	return debits, credits
}

// OwnBalance computes the signed balance of a set of entries under an
// account type's normal-balance convention: debits increase asset and
// expense accounts, credits increase liability, equity and revenue.
func OwnBalance(t AccountType, entries []Entry) decimal.Decimal {
	debits, credits := DebitCreditTotals(entries)
	if t.NormalBalanceSign() > 0 {
		return debits.Sub(credits)
	}

	return credits.Sub(debits)
}

// EntrySource supplies the committed entries posted to one account. The
// caller owns consistency: a single computation must not observe a
// half-written transaction.
type EntrySource func(accountID string) ([]Entry, error)

// Calculator computes account balances over a chart snapshot and an
// entry source. It performs no I/O beyond what the source does.
type Calculator struct {
	chart   *Chart
	entries EntrySource
}

// NewCalculator creates a Calculator.
func NewCalculator(chart *Chart, entries EntrySource) *Calculator {
	return &Calculator{chart: chart, entries: entries}
}

// Balance computes an account's own balance, excluding descendants.
func (c *Calculator) Balance(accountID string) (decimal.Decimal, error) {
	account, ok := c.chart.Get(accountID)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}

	entries, err := c.entries(accountID)
	if err != nil {
		return decimal.Zero, err
	}

	return OwnBalance(account.Type, entries), nil
}

// BalanceIncludingDescendants rolls up an account's own balance with the
// own balances of its whole subtree. Each account contributes under its
// own sign convention; membership in the tree is all that matters.
func (c *Calculator) BalanceIncludingDescendants(accountID string) (decimal.Decimal, error) {
	total, err := c.Balance(accountID)
	if err != nil {
		return decimal.Zero, err
	}

	descendants, err := c.chart.Descendants(accountID)
	if err != nil {
		return decimal.Zero, err
	}

	for _, d := range descendants {
		own, err := c.Balance(d.ID)
		if err != nil {
			return decimal.Zero, err
		}

		total = total.Add(own)
	}

	return total, nil
}

// BalancesByType computes the own balance of every active account of the
// given type, keyed by account id.
func (c *Calculator) BalancesByType(t AccountType) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)

	for _, a := range c.chart.Accounts() {
		if a.Type != t || !a.IsActive {
			continue
		}

		balance, err := c.Balance(a.ID)
		if err != nil {
			return nil, err
		}

		out[a.ID] = balance
	}

	return out, nil
}
