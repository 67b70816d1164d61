package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementAggregate is a movement sum grouped by (currency, transaction date),
// as returned by the movement store for a subtree of accounts.
type MovementAggregate struct {
	CurrencyCode string          `json:"currencyCode"`
	Quantity     decimal.Decimal `json:"quantity"`
	Date         time.Time       `json:"date"`
}

// BalanceEvolutionRow is one (date, account, balance) row of a balance
// evolution report. Balances are cumulative up to and including Date.
type BalanceEvolutionRow struct {
	Date      time.Time `json:"date"`
	AccountID string    `json:"accountID"`
	Balance   Balance   `json:"balance"`
}

// Flow is the net money moved through an account's subtree during one period.
// Unlike balance evolution, flows are not cumulative across periods.
type Flow struct {
	Period  Period  `json:"period"`
	Balance Balance `json:"balance"`
}

// AccountFlows groups the flows of one queried account, periods in the order
// they were requested.
type AccountFlows struct {
	AccountID string `json:"accountID"`
	Flows     []Flow `json:"flows"`
}
