package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velopay/wallet_app/internal/apperrors"
	"github.com/velopay/wallet_app/internal/core/domain"
)

func mustMoney(t *testing.T, raw string) domain.Money {
	t.Helper()
	m, err := domain.NewMoneyFromString(raw)
	require.NoError(t, err)
	return m
}

func TestNewMoneyFromString_Invalid(t *testing.T) {
	for _, raw := range []string{"", "abc", "1,5", "10.5.5", "$10", "1e5x"} {
		_, err := domain.NewMoneyFromString(raw)
		assert.ErrorIs(t, err, apperrors.ErrInvalidAmount, "input %q", raw)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "input %q", raw)
	}
}

func TestNewMoneyFromString_CanonicalForm(t *testing.T) {
	cases := map[string]string{
		"10.5000":                 "10.5",
		"0.0000":                  "0",
		"0":                       "0",
		"10.00005":                "10",
		"10.12345":                "10.1234",
		"50":                      "50",
		"0.015":                   "0.015",
		"-3.10":                   "-3.1",
		"123456789012345678.1234": "123456789012345678.1234",
	}
	for raw, want := range cases {
		assert.Equal(t, want, mustMoney(t, raw).String(), "input %q", raw)
	}
}

func TestMoney_Truncates_NeverRounds(t *testing.T) {
	// Digits beyond the 4th fractional place are discarded, never rounded up.
	assert.Equal(t, "10", mustMoney(t, "10.00005").String())
	assert.Equal(t, "0.9999", mustMoney(t, "0.99999").String())

	product, err := mustMoney(t, "1.99").Multiply("0.015")
	require.NoError(t, err)
	// 1.99 * 0.015 = 0.029850 -> 0.0298
	assert.Equal(t, "0.0298", product.String())
}

func TestMoney_AddSubtract(t *testing.T) {
	a := mustMoney(t, "100.0000")
	b := mustMoney(t, "50.75")

	assert.Equal(t, "150.75", a.Add(b).String())
	assert.Equal(t, "49.25", a.Subtract(b).String())
}

func TestMoney_Add_CommutativeWithZeroIdentity(t *testing.T) {
	samples := []string{"0", "0.0001", "10.5", "99999.9999", "3"}
	zero := domain.ZeroMoney()
	for _, x := range samples {
		for _, y := range samples {
			a, b := mustMoney(t, x), mustMoney(t, y)
			assert.True(t, a.Add(b).Equals(b.Add(a)), "%s + %s", x, y)
		}
		a := mustMoney(t, x)
		assert.True(t, a.Add(zero).Equals(a), "%s + 0", x)
		assert.True(t, zero.Add(a).Equals(a), "0 + %s", x)
	}
}

func TestMoney_Multiply_Commission(t *testing.T) {
	commission, err := mustMoney(t, "50").Multiply("0.015")
	require.NoError(t, err)
	assert.Equal(t, "0.75", commission.String())

	_, err = mustMoney(t, "50").Multiply("x")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}

func TestMoney_Divide(t *testing.T) {
	q, err := mustMoney(t, "1").Divide("3")
	require.NoError(t, err)
	assert.Equal(t, "0.3333", q.String())

	q, err = mustMoney(t, "2").Divide("3")
	require.NoError(t, err)
	assert.Equal(t, "0.6666", q.String())

	q, err = mustMoney(t, "-1").Divide("3")
	require.NoError(t, err)
	assert.Equal(t, "-0.3333", q.String())

	// The exact quotient is truncated; a quotient just below 0.0001 must not
	// be rounded up through an intermediate precision.
	q, err = mustMoney(t, "1").Divide("10000.00000000000005")
	require.NoError(t, err)
	assert.Equal(t, "0", q.String())

	_, err = mustMoney(t, "1").Divide("0")
	assert.ErrorIs(t, err, apperrors.ErrDivisionByZero)

	_, err = mustMoney(t, "1").Divide("zero")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}

func TestMoney_Comparisons(t *testing.T) {
	small := mustMoney(t, "10")
	big := mustMoney(t, "10.0001")

	assert.True(t, small.LessThan(big))
	assert.False(t, big.LessThan(small))
	assert.True(t, big.GreaterThan(small))
	assert.True(t, small.Equals(mustMoney(t, "10.0000")))
	assert.False(t, small.Equals(big))
	assert.True(t, mustMoney(t, "0.0001").IsPositive())
	assert.False(t, domain.ZeroMoney().IsPositive())
	assert.False(t, mustMoney(t, "-1").IsPositive())
}

func TestMoneyFromDecimal_Normalizes(t *testing.T) {
	d := decimal.RequireFromString("1.23456789")
	assert.Equal(t, "1.2345", domain.MoneyFromDecimal(d).String())
}
