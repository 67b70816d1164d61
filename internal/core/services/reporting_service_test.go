package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/treeledger/treeledger/internal/apperrors"
	"github.com/treeledger/treeledger/internal/core/domain"
	portssvc "github.com/treeledger/treeledger/internal/core/ports/services"
	"github.com/treeledger/treeledger/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockReportingRepository
	mockAccountSvc *MockAccountReaderSvc
	mockConverter  *MockConverter
	service        portssvc.ReportingSvcFacade

	jan5, jan10, jan15, jan20 time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockAccountSvc = new(MockAccountReaderSvc)
	suite.mockConverter = new(MockConverter)
	suite.service = services.NewReportingService(
		suite.mockRepo,
		suite.mockAccountSvc,
		services.WithReportingConverter(suite.mockConverter),
	)

	suite.jan5 = time.Date(2020, 1, 5, 0, 0, 0, 0, time.UTC)
	suite.jan10 = time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC)
	suite.jan15 = time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	suite.jan20 = time.Date(2020, 1, 20, 0, 0, 0, 0, time.UTC)
}

// expectTree serves a tree holding root (1,4) and its leaf child cash (2,3).
func (suite *ReportingServiceTestSuite) expectTree() {
	rootID := "root"
	tree := domain.NewAccountTree([]domain.Account{
		{AccountID: "root", Name: "Root", Type: domain.TypeRoot, Left: 1, Right: 4},
		{AccountID: "cash", Name: "Cash", Type: domain.TypeLeaf, ParentAccountID: &rootID, Left: 2, Right: 3, Depth: 1},
	})
	suite.mockAccountSvc.On("GetAccountTree", mock.Anything).Return(tree, nil).Once()
}

func aggregate(amount int64, currency string, date time.Time) domain.MovementAggregate {
	return domain.MovementAggregate{
		CurrencyCode: currency,
		Quantity:     decimal.NewFromInt(amount),
		Date:         date,
	}
}

func (suite *ReportingServiceTestSuite) TestBalanceEvolution_CumulativeAcrossBuckets() {
	ctx := context.Background()
	suite.expectTree()

	// +100 lands in the first bucket, -50 in the second.
	suite.mockRepo.On("AggregateMovements", ctx, []string{"cash"}, (*time.Time)(nil), mock.MatchedBy(func(to *time.Time) bool {
		return to != nil && to.Equal(suite.jan20)
	})).Return([]domain.MovementAggregate{
		aggregate(100, "EUR", suite.jan5),
		aggregate(-50, "EUR", suite.jan15),
	}, nil).Once()

	rows, err := suite.service.BalanceEvolution(ctx, []string{"cash"}, []time.Time{suite.jan10, suite.jan20}, nil)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal("cash", rows[0].AccountID)
	suite.True(rows[0].Date.Equal(suite.jan10))
	suite.True(rows[0].Balance.GetForCurrency("EUR").Amount.Equal(decimal.NewFromInt(100)))
	suite.True(rows[1].Date.Equal(suite.jan20))
	suite.True(rows[1].Balance.GetForCurrency("EUR").Amount.Equal(decimal.NewFromInt(50)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceEvolution_SortsDates() {
	ctx := context.Background()
	suite.expectTree()

	suite.mockRepo.On("AggregateMovements", ctx, []string{"cash"}, (*time.Time)(nil), mock.AnythingOfType("*time.Time")).
		Return([]domain.MovementAggregate{aggregate(100, "EUR", suite.jan5)}, nil).Once()

	rows, err := suite.service.BalanceEvolution(ctx, []string{"cash"}, []time.Time{suite.jan20, suite.jan10}, nil)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.True(rows[0].Date.Equal(suite.jan10))
	suite.True(rows[1].Date.Equal(suite.jan20))
}

func (suite *ReportingServiceTestSuite) TestBalanceEvolution_SubtreeAggregation() {
	ctx := context.Background()
	suite.expectTree()

	// Querying the root account aggregates over the whole subtree.
	suite.mockRepo.On("AggregateMovements", ctx, []string{"root", "cash"}, (*time.Time)(nil), mock.AnythingOfType("*time.Time")).
		Return([]domain.MovementAggregate{aggregate(100, "EUR", suite.jan5)}, nil).Once()

	rows, err := suite.service.BalanceEvolution(ctx, []string{"root"}, []time.Time{suite.jan10}, nil)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.True(rows[0].Balance.GetForCurrency("EUR").Amount.Equal(decimal.NewFromInt(100)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceEvolution_ConvertsAtBucketDate() {
	ctx := context.Background()
	suite.expectTree()
	target := "USD"

	suite.mockRepo.On("AggregateMovements", ctx, []string{"cash"}, (*time.Time)(nil), mock.AnythingOfType("*time.Time")).
		Return([]domain.MovementAggregate{
			aggregate(100, "EUR", suite.jan5),
			aggregate(-50, "EUR", suite.jan15),
		}, nil).Once()

	// Each bucket's own sum converts at that bucket's date.
	suite.mockConverter.On("Convert", ctx, mock.MatchedBy(func(m domain.Money) bool {
		return m.CurrencyCode == "EUR" && m.Amount.Equal(decimal.NewFromInt(100))
	}), "USD", suite.jan10).Return(domain.NewMoney(decimal.NewFromInt(200), "USD"), nil).Once()
	suite.mockConverter.On("Convert", ctx, mock.MatchedBy(func(m domain.Money) bool {
		return m.CurrencyCode == "EUR" && m.Amount.Equal(decimal.NewFromInt(-50))
	}), "USD", suite.jan20).Return(domain.NewMoney(decimal.NewFromInt(-100), "USD"), nil).Once()

	rows, err := suite.service.BalanceEvolution(ctx, []string{"cash"}, []time.Time{suite.jan10, suite.jan20}, &target)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.True(rows[0].Balance.GetForCurrency("USD").Amount.Equal(decimal.NewFromInt(200)))
	suite.True(rows[1].Balance.GetForCurrency("USD").Amount.Equal(decimal.NewFromInt(100)))
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceEvolution_UnknownAccount() {
	ctx := context.Background()
	suite.expectTree()

	rows, err := suite.service.BalanceEvolution(ctx, []string{"missing"}, []time.Time{suite.jan10}, nil)

	suite.Require().Error(err)
	suite.Nil(rows)
	suite.ErrorIs(err, services.ErrAccountNotFound)
}

func (suite *ReportingServiceTestSuite) TestBalanceEvolution_EmptyInputs() {
	ctx := context.Background()

	_, err := suite.service.BalanceEvolution(ctx, nil, []time.Time{suite.jan10}, nil)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.BalanceEvolution(ctx, []string{"cash"}, nil, nil)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestFlowEvolution_PeriodsAreIndependent() {
	ctx := context.Background()
	suite.expectTree()

	p1, _ := domain.NewPeriod(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), suite.jan10)
	p2, _ := domain.NewPeriod(time.Date(2020, 1, 11, 0, 0, 0, 0, time.UTC), suite.jan20)

	suite.mockRepo.On("AggregateMovements", ctx, []string{"cash"}, mock.MatchedBy(func(from *time.Time) bool {
		return from != nil && from.Equal(p1.Start)
	}), mock.MatchedBy(func(to *time.Time) bool {
		return to != nil && to.Equal(p1.End)
	})).Return([]domain.MovementAggregate{aggregate(100, "EUR", suite.jan5)}, nil).Once()
	suite.mockRepo.On("AggregateMovements", ctx, []string{"cash"}, mock.MatchedBy(func(from *time.Time) bool {
		return from != nil && from.Equal(p2.Start)
	}), mock.MatchedBy(func(to *time.Time) bool {
		return to != nil && to.Equal(p2.End)
	})).Return([]domain.MovementAggregate{aggregate(-50, "EUR", suite.jan15)}, nil).Once()

	flows, err := suite.service.FlowEvolution(ctx, []string{"cash"}, []domain.Period{p1, p2}, nil)

	suite.Require().NoError(err)
	suite.Require().Len(flows, 1)
	suite.Equal("cash", flows[0].AccountID)
	suite.Require().Len(flows[0].Flows, 2)
	// Flows are not cumulative: the second period stands on its own.
	suite.True(flows[0].Flows[0].Balance.GetForCurrency("EUR").Amount.Equal(decimal.NewFromInt(100)))
	suite.True(flows[0].Flows[1].Balance.GetForCurrency("EUR").Amount.Equal(decimal.NewFromInt(-50)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestFlowEvolution_ConvertsAtMovementDate() {
	ctx := context.Background()
	suite.expectTree()
	target := "USD"

	p1, _ := domain.NewPeriod(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), suite.jan20)

	suite.mockRepo.On("AggregateMovements", ctx, []string{"cash"}, mock.AnythingOfType("*time.Time"), mock.AnythingOfType("*time.Time")).
		Return([]domain.MovementAggregate{
			aggregate(100, "EUR", suite.jan5),
			aggregate(-50, "EUR", suite.jan15),
		}, nil).Once()

	suite.mockConverter.On("Convert", ctx, mock.MatchedBy(func(m domain.Money) bool {
		return m.Amount.Equal(decimal.NewFromInt(100))
	}), "USD", suite.jan5).Return(domain.NewMoney(decimal.NewFromInt(120), "USD"), nil).Once()
	suite.mockConverter.On("Convert", ctx, mock.MatchedBy(func(m domain.Money) bool {
		return m.Amount.Equal(decimal.NewFromInt(-50))
	}), "USD", suite.jan15).Return(domain.NewMoney(decimal.NewFromInt(-55), "USD"), nil).Once()

	flows, err := suite.service.FlowEvolution(ctx, []string{"cash"}, []domain.Period{p1}, &target)

	suite.Require().NoError(err)
	suite.Require().Len(flows, 1)
	suite.True(flows[0].Flows[0].Balance.GetForCurrency("USD").Amount.Equal(decimal.NewFromInt(65)))
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestReports_TargetCurrencyWithoutConverter() {
	ctx := context.Background()
	target := "USD"
	bare := services.NewReportingService(suite.mockRepo, suite.mockAccountSvc)

	_, err := bare.BalanceEvolution(ctx, []string{"cash"}, []time.Time{suite.jan10}, &target)
	suite.ErrorIs(err, apperrors.ErrValidation)

	p, _ := domain.NewPeriod(suite.jan10, suite.jan20)
	_, err = bare.FlowEvolution(ctx, []string{"cash"}, []domain.Period{p}, &target)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
