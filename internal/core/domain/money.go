package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultBalanceScale is the number of decimal digits carried by balances
// and amounts unless overridden in configuration.
const DefaultBalanceScale int32 = 4

// ErrMalformedAmount is returned by ParseAmount for input that is not a
// decimal number at all.
var ErrMalformedAmount = errors.New("malformed amount")

// ErrNonPositiveAmount is returned by ParseAmount for zero or negative input.
var ErrNonPositiveAmount = errors.New("amount must be positive")

// ErrAmountScale is returned by ParseAmount when the input carries more
// fractional digits than the configured scale.
var ErrAmountScale = errors.New("amount exceeds allowed scale")

// ParseAmount parses a textual amount into an exact decimal, rejecting
// non-positive values and values with more than scale fractional digits.
// The text never round-trips through a binary float.
func ParseAmount(s string, scale int32) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	if d.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNonPositiveAmount, s)
	}
	if d.Exponent() < -scale {
		return decimal.Zero, fmt.Errorf("%w: %q has more than %d fractional digits", ErrAmountScale, s, scale)
	}
	return d, nil
}
