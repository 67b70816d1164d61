package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/treeledger/treeledger/internal/core/domain"
)

// CreatePriceRequest records the unit value of a currency in the base
// currency on a date.
type CreatePriceRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,currencycode"`
	Date         time.Time       `json:"date" binding:"required"`
	Value        decimal.Decimal `json:"value" binding:"required"`
}

// PriceResponse is the serialized form of a price point.
type PriceResponse struct {
	PriceID      string          `json:"priceID"`
	CurrencyCode string          `json:"currencyCode"`
	Date         time.Time       `json:"date"`
	Value        decimal.Decimal `json:"value"`
}

// ToPriceResponse converts a domain price to its response DTO.
func ToPriceResponse(p *domain.Price) PriceResponse {
	return PriceResponse{
		PriceID:      p.PriceID,
		CurrencyCode: p.CurrencyCode,
		Date:         p.Date,
		Value:        p.Value,
	}
}

// ToPriceResponses converts a slice of domain prices.
func ToPriceResponses(prices []domain.Price) []PriceResponse {
	resp := make([]PriceResponse, len(prices))
	for i := range prices {
		resp[i] = ToPriceResponse(&prices[i])
	}
	return resp
}
