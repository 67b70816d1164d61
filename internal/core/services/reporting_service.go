package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/treeledger/treeledger/internal/apperrors"
	"github.com/treeledger/treeledger/internal/core/domain"
	portsrepo "github.com/treeledger/treeledger/internal/core/ports/repositories"
	portssvc "github.com/treeledger/treeledger/internal/core/ports/services"
)

// reportingService generates the balance evolution and flow evolution
// reports. Both aggregate movements over each queried account's full subtree
// (nested-set containment); balance evolution accumulates across date
// buckets, flow evolution keeps periods independent.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountSvc    portssvc.AccountReaderSvc
	converter     portssvc.CurrencyConverter
}

// ReportingServiceOption is a functional option for configuring the reporting service.
type ReportingServiceOption func(*reportingService)

// WithReportingConverter sets the currency conversion strategy used when a
// report requests a target currency.
func WithReportingConverter(converter portssvc.CurrencyConverter) ReportingServiceOption {
	return func(s *reportingService) {
		s.converter = converter
	}
}

// NewReportingService creates a new reporting service with the provided options.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountSvc portssvc.AccountReaderSvc, options ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		reportingRepo: reportingRepo,
		accountSvc:    accountSvc,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// bucketIndex returns the index of the first date the value does not exceed.
// Dates must be sorted ascending; -1 means the value falls after all of them.
func bucketIndex(date time.Time, dates []time.Time) int {
	for i, d := range dates {
		if !date.After(d) {
			return i
		}
	}
	return -1
}

func (s *reportingService) requireConverter(targetCurrency *string) error {
	if targetCurrency != nil && s.converter == nil {
		return fmt.Errorf("%w: no conversion strategy configured", apperrors.ErrValidation)
	}
	return nil
}

// BalanceEvolution returns cumulative balances for each account at each of
// the given dates. Bucket 0 covers everything at or before the first date;
// bucket i covers (dates[i-1], dates[i]]. Each bucket's own sum is optionally
// converted at that bucket's date, then merged into the running total.
func (s *reportingService) BalanceEvolution(ctx context.Context, accountIDs []string, dates []time.Time, targetCurrency *string) ([]domain.BalanceEvolutionRow, error) {
	if len(accountIDs) == 0 || len(dates) == 0 {
		return nil, fmt.Errorf("%w: at least one account and one date required", apperrors.ErrValidation)
	}
	if err := s.requireConverter(targetCurrency); err != nil {
		return nil, err
	}

	sortedDates := make([]time.Time, len(dates))
	copy(sortedDates, dates)
	sort.Slice(sortedDates, func(i, j int) bool { return sortedDates[i].Before(sortedDates[j]) })
	lastDate := sortedDates[len(sortedDates)-1]

	tree, err := s.accountSvc.GetAccountTree(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.BalanceEvolutionRow, 0, len(accountIDs)*len(sortedDates))
	for _, accountID := range accountIDs {
		subtreeIDs, err := tree.DescendantIDs(accountID, true)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}

		aggregates, err := s.reportingRepo.AggregateMovements(ctx, subtreeIDs, nil, &lastDate)
		if err != nil {
			s.LogError(ctx, err, "Failed to aggregate movements", "account_id", accountID)
			return nil, fmt.Errorf("failed to aggregate movements for account %s: %w", accountID, err)
		}

		bucketSums := make([]domain.Balance, len(sortedDates))
		for i := range bucketSums {
			bucketSums[i] = domain.NewBalance()
		}
		for _, agg := range aggregates {
			idx := bucketIndex(agg.Date, sortedDates)
			if idx < 0 {
				continue
			}
			bucketSums[idx] = bucketSums[idx].AddMoney(domain.NewMoney(agg.Quantity, agg.CurrencyCode))
		}

		running := domain.NewBalance()
		for i, date := range sortedDates {
			bucket := bucketSums[i]
			if targetCurrency != nil {
				bucket, err = s.convertBalance(ctx, bucket, *targetCurrency, date)
				if err != nil {
					return nil, err
				}
			}
			running = running.Add(bucket)
			rows = append(rows, domain.BalanceEvolutionRow{
				Date:      date,
				AccountID: accountID,
				Balance:   running,
			})
		}
	}

	s.LogInfo(ctx, "Balance evolution report generated", "accounts", len(accountIDs), "dates", len(sortedDates))
	return rows, nil
}

// FlowEvolution returns the net flow per account and period. Periods are
// independent: a movement outside every period contributes to no flow.
// Conversion happens at each movement's own date.
func (s *reportingService) FlowEvolution(ctx context.Context, accountIDs []string, periods []domain.Period, targetCurrency *string) ([]domain.AccountFlows, error) {
	if len(accountIDs) == 0 || len(periods) == 0 {
		return nil, fmt.Errorf("%w: at least one account and one period required", apperrors.ErrValidation)
	}
	if err := s.requireConverter(targetCurrency); err != nil {
		return nil, err
	}

	tree, err := s.accountSvc.GetAccountTree(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.AccountFlows, 0, len(accountIDs))
	for _, accountID := range accountIDs {
		subtreeIDs, err := tree.DescendantIDs(accountID, true)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}

		flows := make([]domain.Flow, 0, len(periods))
		for _, period := range periods {
			aggregates, err := s.reportingRepo.AggregateMovements(ctx, subtreeIDs, &period.Start, &period.End)
			if err != nil {
				s.LogError(ctx, err, "Failed to aggregate movements", "account_id", accountID)
				return nil, fmt.Errorf("failed to aggregate movements for account %s: %w", accountID, err)
			}

			balance := domain.NewBalance()
			for _, agg := range aggregates {
				money := domain.NewMoney(agg.Quantity, agg.CurrencyCode)
				if targetCurrency != nil {
					money, err = s.converter.Convert(ctx, money, *targetCurrency, agg.Date)
					if err != nil {
						return nil, err
					}
				}
				balance = balance.AddMoney(money)
			}
			flows = append(flows, domain.Flow{Period: period, Balance: balance})
		}
		result = append(result, domain.AccountFlows{AccountID: accountID, Flows: flows})
	}

	s.LogInfo(ctx, "Flow evolution report generated", "accounts", len(accountIDs), "periods", len(periods))
	return result, nil
}

// convertBalance converts every Money of a balance to the target currency at
// the given date and merges the results.
func (s *reportingService) convertBalance(ctx context.Context, b domain.Balance, targetCurrency string, on time.Time) (domain.Balance, error) {
	converted := domain.NewBalance()
	for _, m := range b.Moneys() {
		money, err := s.converter.Convert(ctx, m, targetCurrency, on)
		if err != nil {
			return domain.Balance{}, err
		}
		converted = converted.AddMoney(money)
	}
	return converted, nil
}
