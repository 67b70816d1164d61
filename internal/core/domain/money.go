package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of decimal places used when comparing amounts.
// Amounts are rounded to this precision before any equality check so that
// conversion artifacts do not break otherwise-equal values.
const MoneyPrecision = 8

// ErrCurrencyMismatch indicates arithmetic between two different currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is an immutable (amount, currency) pair.
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// NewMoney creates a Money value.
func NewMoney(amount decimal.Decimal, currencyCode string) Money {
	return Money{Amount: amount, CurrencyCode: currencyCode}
}

// Add returns the sum of two Moneys of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.CurrencyCode != other.CurrencyCode {
		return Money{}, fmt.Errorf("%w: cannot add %s to %s", ErrCurrencyMismatch, other.CurrencyCode, m.CurrencyCode)
	}
	return Money{Amount: m.Amount.Add(other.Amount), CurrencyCode: m.CurrencyCode}, nil
}

// Neg returns the Money with its amount negated.
func (m Money) Neg() Money {
	return Money{Amount: m.Amount.Neg(), CurrencyCode: m.CurrencyCode}
}

// IsZero reports whether the amount rounds to zero at MoneyPrecision.
func (m Money) IsZero() bool {
	return m.Amount.Round(MoneyPrecision).IsZero()
}

// Equal reports whether both Moneys have the same currency and amounts that
// agree within the decimal comparison tolerance.
func (m Money) Equal(other Money) bool {
	if m.CurrencyCode != other.CurrencyCode {
		return false
	}
	return m.Amount.Round(MoneyPrecision).Equal(other.Amount.Round(MoneyPrecision))
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.String(), m.CurrencyCode)
}
