package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/treeledger/treeledger/internal/core/domain"
	"github.com/treeledger/treeledger/internal/dto"
)

// CurrencyConverter converts Money between currencies at a given date.
// The conversion strategy is pluggable: report queries and transaction
// validation receive it as a dependency, never through global state.
type CurrencyConverter interface {
	// Convert returns the Money expressed in the target currency at the given
	// date. Converting to the Money's own currency returns it unchanged.
	Convert(ctx context.Context, m domain.Money, targetCurrency string, on time.Time) (domain.Money, error)

	// Value returns the Money's value in the base currency at the given date.
	Value(ctx context.Context, m domain.Money, on time.Time) (decimal.Decimal, error)
}

// PriceSvcFacade defines price history management. The price service also
// implements CurrencyConverter by forward-filling the stored price history.
type PriceSvcFacade interface {
	CurrencyConverter

	// CreatePrice records the unit value of a currency in the base currency
	// on a date.
	CreatePrice(ctx context.Context, req dto.CreatePriceRequest) (*domain.Price, error)

	// ListPrices retrieves the price history of a currency ordered by date.
	ListPrices(ctx context.Context, currencyCode string) ([]domain.Price, error)
}
