package services

import (
	"context"
	"time"

	"github.com/treeledger/treeledger/internal/core/domain"
)

// ReportingSvcFacade defines the time-series report queries. Both aggregate
// movements over each queried account's full subtree. When targetCurrency is
// non-nil, amounts are converted through the injected CurrencyConverter.
type ReportingSvcFacade interface {
	// BalanceEvolution returns cumulative balances at each of the given
	// dates, one row per (account, date) pair, account-major then
	// date-ascending. Conversion happens at each bucket's date.
	BalanceEvolution(ctx context.Context, accountIDs []string, dates []time.Time, targetCurrency *string) ([]domain.BalanceEvolutionRow, error)

	// FlowEvolution returns the independent, non-cumulative net flow per
	// account and period. Conversion happens at each movement's own date.
	FlowEvolution(ctx context.Context, accountIDs []string, periods []domain.Period, targetCurrency *string) ([]domain.AccountFlows, error)
}
