package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/velopay/wallet_app/internal/apperrors"
)

// MoneyScale is the fixed number of fractional digits carried by every Money
// value, matching the NUMERIC(18,4) column width of persisted balances.
const MoneyScale = 4

// Money is an immutable monetary value at fixed scale 4. Every operation
// truncates (never rounds) its result to MoneyScale fractional digits, so a
// commission can never fabricate fractional currency. All arithmetic is exact
// decimal via shopspring/decimal; binary floating point is never involved.
type Money struct {
	value decimal.Decimal
}

// NewMoneyFromString parses a decimal numeral into Money, truncating to
// MoneyScale. It returns apperrors.ErrInvalidAmount if the text is empty or
// contains anything other than a plain decimal numeral.
func NewMoneyFromString(raw string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidAmount, raw)
	}
	return Money{value: d.Truncate(MoneyScale)}, nil
}

// MoneyFromDecimal normalizes an already-parsed decimal into Money.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{value: d.Truncate(MoneyScale)}
}

// ZeroMoney returns the zero monetary value.
func ZeroMoney() Money {
	return Money{}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{value: m.value.Add(other.value).Truncate(MoneyScale)}
}

// Subtract returns m - other.
func (m Money) Subtract(other Money) Money {
	return Money{value: m.value.Sub(other.value).Truncate(MoneyScale)}
}

// Multiply returns m scaled by the given decimal factor string.
func (m Money) Multiply(factor string) (Money, error) {
	f, err := decimal.NewFromString(factor)
	if err != nil {
		return Money{}, fmt.Errorf("%w: factor %q", apperrors.ErrInvalidAmount, factor)
	}
	return Money{value: m.value.Mul(f).Truncate(MoneyScale)}, nil
}

// Divide returns m divided by the given decimal divisor string, the exact
// quotient truncated to MoneyScale. A zero divisor yields
// apperrors.ErrDivisionByZero rather than a panic.
func (m Money) Divide(divisor string) (Money, error) {
	d, err := decimal.NewFromString(divisor)
	if err != nil {
		return Money{}, fmt.Errorf("%w: divisor %q", apperrors.ErrInvalidAmount, divisor)
	}
	if d.IsZero() {
		return Money{}, apperrors.ErrDivisionByZero
	}
	// QuoRem truncates the quotient at MoneyScale directly; Div rounds
	// half-up at decimal.DivisionPrecision first, which can leak a rounded
	// digit into the 4th fractional place.
	q, _ := m.value.QuoRem(d, MoneyScale)
	return Money{value: q}, nil
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.value.LessThan(other.value)
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.value.GreaterThan(other.value)
}

// Equals reports whether the two values are numerically equal. Because every
// Money is already truncated to MoneyScale, this matches canonical string
// equality.
func (m Money) Equals(other Money) bool {
	return m.value.Equal(other.value)
}

// IsPositive reports whether m > 0.
func (m Money) IsPositive() bool {
	return m.value.IsPositive()
}

// Decimal exposes the underlying decimal for persistence.
func (m Money) Decimal() decimal.Decimal {
	return m.value
}

// String returns the canonical form: truncated to MoneyScale with trailing
// zeros and any trailing decimal point stripped ("10.5000" -> "10.5",
// "0.0000" -> "0").
func (m Money) String() string {
	return m.value.String()
}
