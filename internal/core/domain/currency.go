package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a supported currency.
type Currency struct {
	Code      string `json:"code"` // Primary Key, exactly 3 letters (e.g., "USD")
	Name      string `json:"name"` // e.g., "US Dollar"
	Immutable bool   `json:"immutable"`
	AuditFields
}

// Price is the unit value of a currency in the base currency on a given date.
// The base currency itself is pinned to 1 and never stored.
type Price struct {
	PriceID      string          `json:"priceID"` // Primary Key (UUID)
	CurrencyCode string          `json:"currencyCode"`
	Date         time.Time       `json:"date"`
	Value        decimal.Decimal `json:"value"`
	AuditFields
}
