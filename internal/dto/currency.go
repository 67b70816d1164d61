package dto

import (
	"time"

	"github.com/treeledger/treeledger/internal/core/domain"
)

// CreateCurrencyRequest is the request body for creating a currency.
type CreateCurrencyRequest struct {
	Code      string `json:"code" binding:"required,currencycode"`
	Name      string `json:"name" binding:"required"`
	Immutable bool   `json:"immutable"`
}

// UpdateCurrencyRequest is the request body for renaming a currency.
type UpdateCurrencyRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1"`
}

// CurrencyResponse is the serialized form of a currency.
type CurrencyResponse struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Immutable bool      `json:"immutable"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToCurrencyResponse converts a domain currency to its response DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:      c.Code,
		Name:      c.Name,
		Immutable: c.Immutable,
		CreatedAt: c.CreatedAt,
	}
}

// ToCurrencyResponses converts a slice of domain currencies.
func ToCurrencyResponses(currencies []domain.Currency) []CurrencyResponse {
	resp := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		resp[i] = ToCurrencyResponse(&currencies[i])
	}
	return resp
}
