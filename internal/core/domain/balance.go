package domain

import "github.com/shopspring/decimal"

// Balance aggregates Money across currencies. It is a value type: AddMoney
// returns a new Balance and never mutates the receiver. A currency that is
// absent is equivalent to a zero amount for that currency.
type Balance struct {
	amounts map[string]decimal.Decimal
}

// NewBalance creates an empty Balance.
func NewBalance() Balance {
	return Balance{amounts: map[string]decimal.Decimal{}}
}

// NewBalanceFromMoneys creates a Balance holding the given Moneys.
func NewBalanceFromMoneys(moneys ...Money) Balance {
	b := NewBalance()
	for _, m := range moneys {
		b = b.AddMoney(m)
	}
	return b
}

// AddMoney returns a new Balance with the Money merged into the per-currency total.
func (b Balance) AddMoney(m Money) Balance {
	next := make(map[string]decimal.Decimal, len(b.amounts)+1)
	for code, amount := range b.amounts {
		next[code] = amount
	}
	next[m.CurrencyCode] = next[m.CurrencyCode].Add(m.Amount)
	return Balance{amounts: next}
}

// Add returns a new Balance holding the per-currency sums of both balances.
func (b Balance) Add(other Balance) Balance {
	result := b
	for _, m := range other.Moneys() {
		result = result.AddMoney(m)
	}
	return result
}

// GetForCurrency returns the summed Money for a currency, or a zero Money if
// the currency is absent.
func (b Balance) GetForCurrency(currencyCode string) Money {
	amount, ok := b.amounts[currencyCode]
	if !ok {
		return Money{Amount: decimal.Zero, CurrencyCode: currencyCode}
	}
	return Money{Amount: amount, CurrencyCode: currencyCode}
}

// Moneys returns one Money per currency present. The order is not guaranteed;
// callers that serialize a Balance must impose their own ordering.
func (b Balance) Moneys() []Money {
	moneys := make([]Money, 0, len(b.amounts))
	for code, amount := range b.amounts {
		moneys = append(moneys, Money{Amount: amount, CurrencyCode: code})
	}
	return moneys
}

// Equal reports whether both balances agree for every currency appearing in
// either, within the decimal comparison tolerance.
func (b Balance) Equal(other Balance) bool {
	seen := map[string]struct{}{}
	for code := range b.amounts {
		seen[code] = struct{}{}
	}
	for code := range other.amounts {
		seen[code] = struct{}{}
	}
	for code := range seen {
		if !b.GetForCurrency(code).Equal(other.GetForCurrency(code)) {
			return false
		}
	}
	return true
}
