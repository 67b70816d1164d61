package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/treeledger/treeledger/internal/apperrors"
	"github.com/treeledger/treeledger/internal/core/domain"
	portsrepo "github.com/treeledger/treeledger/internal/core/ports/repositories"
	portssvc "github.com/treeledger/treeledger/internal/core/ports/services"
	"github.com/treeledger/treeledger/internal/dto"
)

// currencyService provides currency management operations.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// normalizeCurrencyCode validates and uppercases a 3-letter currency code.
func normalizeCurrencyCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency code must be exactly 3 letters", apperrors.ErrValidation)
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return "", fmt.Errorf("%w: currency code must contain only letters", apperrors.ErrValidation)
		}
	}
	return code, nil
}

// CreateCurrency registers a new currency.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.Currency, error) {
	code, err := normalizeCurrencyCode(req.Code)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		Code:      code,
		Name:      req.Name,
		Immutable: req.Immutable,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency", "code", code)
		return nil, fmt.Errorf("failed to save currency %s: %w", code, err)
	}

	s.LogInfo(ctx, "Currency created successfully", "code", code)
	return &currency, nil
}

// GetCurrencyByCode retrieves a currency by its code.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	code, err := normalizeCurrencyCode(code)
	if err != nil {
		return nil, err
	}
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find currency %s: %w", code, err)
	}
	return currency, nil
}

// ListCurrencies retrieves all currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}

// UpdateCurrency renames a currency. Currencies marked immutable reject updates.
func (s *currencyService) UpdateCurrency(ctx context.Context, code string, req dto.UpdateCurrencyRequest) (*domain.Currency, error) {
	currency, err := s.GetCurrencyByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if currency.Immutable {
		return nil, fmt.Errorf("%w: currency %s is immutable", apperrors.ErrConflict, currency.Code)
	}

	if req.Name == nil {
		return currency, nil
	}
	currency.Name = *req.Name
	currency.LastUpdatedAt = time.Now().UTC()

	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		s.LogError(ctx, err, "Failed to update currency", "code", currency.Code)
		return nil, fmt.Errorf("failed to update currency %s: %w", currency.Code, err)
	}

	s.LogInfo(ctx, "Currency updated successfully", "code", currency.Code)
	return currency, nil
}
