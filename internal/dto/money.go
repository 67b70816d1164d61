package dto

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/treeledger/treeledger/internal/core/domain"
)

// MoneyResponse is the serialized form of a single-currency amount.
type MoneyResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"`
}

// ToBalanceResponse serializes a Balance as a list of per-currency amounts.
// Balance iteration order is unspecified, so the boundary imposes a
// deterministic order by currency code.
func ToBalanceResponse(b domain.Balance) []MoneyResponse {
	moneys := b.Moneys()
	sort.Slice(moneys, func(i, j int) bool { return moneys[i].CurrencyCode < moneys[j].CurrencyCode })

	resp := make([]MoneyResponse, len(moneys))
	for i, m := range moneys {
		resp[i] = MoneyResponse{CurrencyCode: m.CurrencyCode, Amount: m.Amount}
	}
	return resp
}
