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

type JournalServiceTestSuite struct {
	suite.Suite
	mockTxnRepo    *MockTransactionRepository
	mockAccountSvc *MockAccountReaderSvc
	service        portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountSvc = new(MockAccountReaderSvc)
	suite.service = services.NewJournalService(suite.mockTxnRepo, suite.mockAccountSvc)
}

func (suite *JournalServiceTestSuite) TestGetJournal_BalanceHistory() {
	ctx := context.Background()
	cash := &domain.Account{AccountID: "cash", Name: "Cash", Type: domain.TypeLeaf, Left: 3, Right: 4}
	jan1 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	jan10 := time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC)

	transactions := []domain.Transaction{
		{
			TransactionID: "t2", Date: jan10,
			Movements: []domain.Movement{
				{TransactionID: "t2", AccountID: "groceries", Money: domain.NewMoney(decimal.NewFromInt(30), "EUR")},
				{TransactionID: "t2", AccountID: "cash", Money: domain.NewMoney(decimal.NewFromInt(-30), "EUR")},
			},
		},
		{
			TransactionID: "t1", Date: jan1,
			Movements: []domain.Movement{
				{TransactionID: "t1", AccountID: "cash", Money: domain.NewMoney(decimal.NewFromInt(100), "EUR")},
				{TransactionID: "t1", AccountID: "salary", Money: domain.NewMoney(decimal.NewFromInt(-100), "EUR")},
			},
		},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, "cash").Return(cash, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByAccountID", ctx, "cash").Return(transactions, nil).Once()

	journal, err := suite.service.GetJournal(ctx, "cash")

	suite.Require().NoError(err)
	suite.Require().Len(journal.Transactions, 2)
	suite.Equal("t1", journal.Transactions[0].TransactionID)
	suite.Equal("t2", journal.Transactions[1].TransactionID)

	balances := journal.Balances()
	suite.Require().Len(balances, 2)
	suite.True(balances[0].GetForCurrency("EUR").Amount.Equal(decimal.NewFromInt(100)))
	suite.True(balances[1].GetForCurrency("EUR").Amount.Equal(decimal.NewFromInt(70)))
}

func (suite *JournalServiceTestSuite) TestGetJournal_EmptyAccount() {
	ctx := context.Background()
	cash := &domain.Account{AccountID: "cash", Name: "Cash", Type: domain.TypeLeaf}

	suite.mockAccountSvc.On("GetAccountByID", ctx, "cash").Return(cash, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByAccountID", ctx, "cash").Return([]domain.Transaction{}, nil).Once()

	journal, err := suite.service.GetJournal(ctx, "cash")

	suite.Require().NoError(err)
	suite.Empty(journal.Transactions)
	suite.Empty(journal.Balances())
}

func (suite *JournalServiceTestSuite) TestGetJournal_AccountNotFound() {
	ctx := context.Background()

	suite.mockAccountSvc.On("GetAccountByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	journal, err := suite.service.GetJournal(ctx, "missing")

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionsByAccountID", mock.Anything, mock.Anything)
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
