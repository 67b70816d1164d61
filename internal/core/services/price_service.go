package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/treeledger/treeledger/internal/apperrors"
	"github.com/treeledger/treeledger/internal/core/domain"
	portsrepo "github.com/treeledger/treeledger/internal/core/ports/repositories"
	portssvc "github.com/treeledger/treeledger/internal/core/ports/services"
	"github.com/treeledger/treeledger/internal/dto"
)

// priceService manages the price history and converts Money through it.
// A price is the unit value of a currency in the base currency on a date;
// lookups forward-fill, taking the latest price at or before the requested
// date. The base currency is pinned to a unit value of 1.
type priceService struct {
	BaseService
	priceRepo    portsrepo.PriceRepositoryFacade
	currencySvc  portssvc.CurrencySvcFacade
	baseCurrency string
}

// NewPriceService creates a new PriceService.
func NewPriceService(priceRepo portsrepo.PriceRepositoryFacade, currencySvc portssvc.CurrencySvcFacade, baseCurrency string) portssvc.PriceSvcFacade {
	return &priceService{
		priceRepo:    priceRepo,
		currencySvc:  currencySvc,
		baseCurrency: baseCurrency,
	}
}

var _ portssvc.PriceSvcFacade = (*priceService)(nil)

// CreatePrice records a price point for a currency.
func (s *priceService) CreatePrice(ctx context.Context, req dto.CreatePriceRequest) (*domain.Price, error) {
	if req.Value.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: price value must be positive", apperrors.ErrValidation)
	}
	code, err := normalizeCurrencyCode(req.CurrencyCode)
	if err != nil {
		return nil, err
	}
	if code == s.baseCurrency && !req.Value.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: base currency %s is pinned to unit value 1", apperrors.ErrValidation, s.baseCurrency)
	}

	// The currency must be registered before it can carry prices.
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency %s not found", apperrors.ErrValidation, code)
		}
		return nil, fmt.Errorf("failed to validate currency %s: %w", code, err)
	}

	now := time.Now().UTC()
	price := domain.Price{
		PriceID:      uuid.NewString(),
		CurrencyCode: code,
		Date:         req.Date,
		Value:        req.Value,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.priceRepo.SavePrice(ctx, price); err != nil {
		s.LogError(ctx, err, "Failed to save price", "currency", code)
		return nil, fmt.Errorf("failed to save price for %s: %w", code, err)
	}

	s.LogInfo(ctx, "Price recorded", "currency", code, "date", price.Date.Format("2006-01-02"))
	return &price, nil
}

// ListPrices retrieves the price history of a currency ordered by date.
func (s *priceService) ListPrices(ctx context.Context, currencyCode string) ([]domain.Price, error) {
	code, err := normalizeCurrencyCode(currencyCode)
	if err != nil {
		return nil, err
	}
	prices, err := s.priceRepo.ListPricesByCurrency(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to list prices", "currency", code)
		return nil, fmt.Errorf("failed to list prices for %s: %w", code, err)
	}
	return prices, nil
}

// unitValueAt resolves the forward-filled unit value of a currency on a date.
func (s *priceService) unitValueAt(ctx context.Context, currencyCode string, on time.Time) (decimal.Decimal, error) {
	if currencyCode == s.baseCurrency {
		return decimal.NewFromInt(1), nil
	}
	price, err := s.priceRepo.FindPriceOnOrBefore(ctx, currencyCode, on)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: %s at %s", ErrNotEnoughData, currencyCode, on.Format("2006-01-02"))
		}
		return decimal.Zero, fmt.Errorf("failed to resolve price for %s: %w", currencyCode, err)
	}
	return price.Value, nil
}

// Value returns the Money's value in the base currency at the given date.
func (s *priceService) Value(ctx context.Context, m domain.Money, on time.Time) (decimal.Decimal, error) {
	unitValue, err := s.unitValueAt(ctx, m.CurrencyCode, on)
	if err != nil {
		return decimal.Zero, err
	}
	return m.Amount.Mul(unitValue), nil
}

// Convert converts the Money to the target currency at the given date,
// pivoting through the base currency.
func (s *priceService) Convert(ctx context.Context, m domain.Money, targetCurrency string, on time.Time) (domain.Money, error) {
	if m.CurrencyCode == targetCurrency {
		return m, nil
	}
	valueInBase, err := s.Value(ctx, m, on)
	if err != nil {
		return domain.Money{}, err
	}
	targetValue, err := s.unitValueAt(ctx, targetCurrency, on)
	if err != nil {
		return domain.Money{}, err
	}
	return domain.NewMoney(valueInBase.Div(targetValue), targetCurrency), nil
}
