package domain

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// currencyPattern matches an ISO 4217 alphabetic code.
var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Money is an exact decimal amount bound to a currency. Arithmetic between
// two Money values requires identical currencies. Amounts never carry more
// than 2 fractional digits; construction rejects finer scale instead of
// rounding.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// NewMoney creates a Money value, validating the currency code format and
// the amount scale.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if !currencyPattern.MatchString(currency) {
		return Money{}, ErrInvalidCurrency
	}

	if !amount.Equal(amount.Truncate(2)) {
		return Money{}, ErrInvalidAmount
	}

	return Money{Amount: amount, Currency: currency}, nil
}

// NewMoneyFromString parses a decimal string into Money.
func NewMoneyFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}

	return NewMoney(d, currency)
}

// Zero returns a zero Money in the given currency. The currency is assumed
// to be already validated.
func Zero(currency string) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}

	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub returns m - other. The result may be negative; callers must reject a
// negative result before applying it to an account.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}

	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// Cmp compares m against other: -1 if m < other, 0 if equal, 1 if m > other.
func (m Money) Cmp(other Money) (int, error) {
	if m.Currency != other.Currency {
		return 0, ErrCurrencyMismatch
	}

	return m.Amount.Cmp(other.Amount), nil
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) (bool, error) {
	c, err := m.Cmp(other)
	if err != nil {
		return false, err
	}

	return c > 0, nil
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) (bool, error) {
	c, err := m.Cmp(other)
	if err != nil {
		return false, err
	}

	return c < 0, nil
}

// Equal reports whether m and other are the same amount in the same currency.
func (m Money) Equal(other Money) (bool, error) {
	c, err := m.Cmp(other)
	if err != nil {
		return false, err
	}

	return c == 0, nil
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// IsNegative reports whether the amount is negative.
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// IsPositive reports whether the amount is strictly positive.
func (m Money) IsPositive() bool {
	return m.Amount.IsPositive()
}

// String renders the amount with exactly 2 fractional digits, e.g.
// "100.00 USD". External reconciliation depends on this form.
func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency
}
