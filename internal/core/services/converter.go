package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/treeledger/treeledger/internal/core/domain"
	portssvc "github.com/treeledger/treeledger/internal/core/ports/services"
)

// TableConverter converts Money using a fixed table of unit values in a base
// currency. The base currency is the pivot: converting A to B computes A's
// value in the base currency, then divides by B's unit value. It carries no
// date dimension; callers needing dated prices use the price service instead.
type TableConverter struct {
	baseCurrency string
	values       map[string]decimal.Decimal
}

// NewTableConverter builds a converter from per-currency unit values in the
// base currency. The base currency's value is pinned to 1: providing a
// different value for it is an error.
func NewTableConverter(baseCurrency string, values map[string]decimal.Decimal) (*TableConverter, error) {
	table := make(map[string]decimal.Decimal, len(values)+1)
	for code, value := range values {
		table[code] = value
	}
	if base, ok := table[baseCurrency]; ok && !base.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("base currency %s must have unit value 1, got %s", baseCurrency, base.String())
	}
	table[baseCurrency] = decimal.NewFromInt(1)
	return &TableConverter{baseCurrency: baseCurrency, values: table}, nil
}

// Ensure TableConverter implements the converter port.
var _ portssvc.CurrencyConverter = (*TableConverter)(nil)

// Value returns the Money's value in the base currency. The date is ignored;
// the table is not dated.
func (c *TableConverter) Value(_ context.Context, m domain.Money, _ time.Time) (decimal.Decimal, error) {
	unitValue, ok := c.values[m.CurrencyCode]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, m.CurrencyCode)
	}
	return m.Amount.Mul(unitValue), nil
}

// Convert converts the Money to the target currency via the base currency
// pivot. Converting to the Money's own currency returns it unchanged.
func (c *TableConverter) Convert(ctx context.Context, m domain.Money, targetCurrency string, on time.Time) (domain.Money, error) {
	if m.CurrencyCode == targetCurrency {
		return m, nil
	}
	valueInBase, err := c.Value(ctx, m, on)
	if err != nil {
		return domain.Money{}, err
	}
	targetValue, ok := c.values[targetCurrency]
	if !ok {
		return domain.Money{}, fmt.Errorf("%w: %s", ErrUnknownCurrency, targetCurrency)
	}
	return domain.NewMoney(valueInBase.Div(targetValue), targetCurrency), nil
}
