package repositories

import (
	"context"
	"time"

	"github.com/treeledger/treeledger/internal/core/domain"
)

// PriceReader defines read operations for price history data.
type PriceReader interface {
	// FindPriceOnOrBefore retrieves the latest price for a currency at or
	// before the given date (forward-fill lookup). Returns ErrNotFound when
	// no such price exists.
	FindPriceOnOrBefore(ctx context.Context, currencyCode string, date time.Time) (*domain.Price, error)

	// ListPricesByCurrency retrieves all prices for a currency ordered by date.
	ListPricesByCurrency(ctx context.Context, currencyCode string) ([]domain.Price, error)
}

// PriceWriter defines write operations for price history data.
type PriceWriter interface {
	// SavePrice persists a new price point.
	SavePrice(ctx context.Context, price domain.Price) error
}

// PriceRepositoryFacade combines all price-related repository interfaces.
type PriceRepositoryFacade interface {
	PriceReader
	PriceWriter
}
