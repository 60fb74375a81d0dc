package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// AccountType classifies an account under the accounting equation.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// AccountTypes lists all valid account types.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
}

// ParseAccountType parses an account type string.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AccountTypes {
		if t == known {
			return t, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidAccountType, s)
}

// NormalBalanceSign returns +1 for debit-normal types (asset, expense)
// and -1 for credit-normal types (liability, equity, revenue).
func (t AccountType) NormalBalanceSign() int {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return 1
	default:
		return -1
	}
}

// Account represents one node in the chart of accounts.
type Account struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ParentID  *string
	ID        string
	Code      string
	Name      string
	Type      AccountType
	IsActive  bool
}

// Validation constants
const (
	MaxCodeLength = 20
	MaxNameLength = 255
)

// ValidateCode validates an account code.
func ValidateCode(code string) error {
	code = strings.TrimSpace(code)

	if code == "" {
		return fmt.Errorf("%w: code cannot be empty", ErrInvalidCode)
	}

	if len(code) > MaxCodeLength {
		return fmt.Errorf("%w: code exceeds %d characters", ErrInvalidCode, MaxCodeLength)
	}

	return nil
}

// ValidateName validates an account name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// Chart is an arena of accounts indexed by id. Parent relationships are
// stored ids resolved through the arena, never embedded pointers, so the
// structure stays cycle-detectable.
type Chart struct {
	accounts map[string]*Account
	children map[string][]string
}

// NewChart builds a chart from a snapshot of accounts.
func NewChart(accounts []*Account) *Chart {
	c := &Chart{
		accounts: make(map[string]*Account, len(accounts)),
		children: make(map[string][]string),
	}

	for _, a := range accounts {
		c.accounts[a.ID] = a
	}

	for _, a := range accounts {
		if a.ParentID != nil {
			c.children[*a.ParentID] = append(c.children[*a.ParentID], a.ID)
		}
	}

	return c
}

// Get returns the account with the given id.
func (c *Chart) Get(id string) (*Account, bool) {
	a, ok := c.accounts[id]
	return a, ok
}

// Accounts returns all accounts ordered by code.
func (c *Chart) Accounts() []*Account {
	out := make([]*Account, 0, len(c.accounts))
	for _, a := range c.accounts {
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })

	return out
}

// Ancestors returns the parent chain of an account, nearest parent first.
// A revisited node means the stored hierarchy is corrupt and yields
// ErrCycleDetected rather than an infinite loop.
func (c *Chart) Ancestors(id string) ([]*Account, error) {
	account, ok := c.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}

	seen := map[string]bool{account.ID: true}

	var chain []*Account
	for account.ParentID != nil {
		parent, ok := c.accounts[*account.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrParentNotFound, *account.ParentID)
		}

		if seen[parent.ID] {
			return nil, fmt.Errorf("%w: at account %s", ErrCycleDetected, parent.ID)
		}

		seen[parent.ID] = true
		chain = append(chain, parent)
		account = parent
	}

	return chain, nil
}

// Descendants returns all direct and indirect children of an account.
func (c *Chart) Descendants(id string) ([]*Account, error) {
	if _, ok := c.accounts[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}

	seen := map[string]bool{id: true}

	var out []*Account

	queue := append([]string(nil), c.children[id]...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		if seen[next] {
			return nil, fmt.Errorf("%w: at account %s", ErrCycleDetected, next)
		}

		seen[next] = true
		out = append(out, c.accounts[next])
		queue = append(queue, c.children[next]...)
	}

	return out, nil
}
