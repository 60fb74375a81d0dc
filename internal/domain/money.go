package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a decimal-formatted amount string. Entry amounts are
// unsigned; direction is carried by which side (debit or credit) is set,
// so negative input is rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return d, nil
}

// ParseOptionalAmount parses an optional amount string. Nil and empty
// input both mean "side not set".
func ParseOptionalAmount(s *string) (*decimal.Decimal, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	d, err := ParseAmount(*s)
	if err != nil {
		return nil, err
	}

	return &d, nil
}
