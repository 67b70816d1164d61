package services

import (
	"context"

	"github.com/treeledger/treeledger/internal/core/domain"
	"github.com/treeledger/treeledger/internal/dto"
)

// CurrencySvcFacade defines currency management operations.
type CurrencySvcFacade interface {
	// CreateCurrency registers a new currency with a 3-letter code.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a currency by its code.
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// UpdateCurrency renames a currency. Currencies marked immutable reject updates.
	UpdateCurrency(ctx context.Context, code string, req dto.UpdateCurrencyRequest) (*domain.Currency, error)
}
