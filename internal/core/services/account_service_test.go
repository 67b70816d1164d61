package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/treeledger/treeledger/internal/apperrors"
	"github.com/treeledger/treeledger/internal/core/domain"
	portssvc "github.com/treeledger/treeledger/internal/core/ports/services"
	"github.com/treeledger/treeledger/internal/core/services"
	"github.com/treeledger/treeledger/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockAccountRepository
	mockTxnRepo *MockTransactionRepository
	service     portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewAccountService(suite.mockRepo, suite.mockTxnRepo)
}

func strPtr(s string) *string { return &s }

func (suite *AccountServiceTestSuite) TestCreateAccount_RootBounds() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Root", Type: "ROOT"}

	suite.mockRepo.On("ListAccounts", ctx).Return([]domain.Account{}, nil).Once()
	suite.mockRepo.On("InsertAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Left == 1 && a.Right == 2 && a.Depth == 0 && a.ParentAccountID == nil
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("ROOT", account.Type.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SecondRootRejected() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Another Root", Type: "ROOT"}
	existingRoot := domain.Account{AccountID: "root", Name: "Root", Type: domain.TypeRoot, Left: 1, Right: 2}

	suite.mockRepo.On("ListAccounts", ctx).Return([]domain.Account{existingRoot}, nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "InsertAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NonRootWithoutParentRejected() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Orphan", Type: "LEAF"}

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, services.ErrNullParent)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ChildTakesParentRightBound() {
	ctx := context.Background()
	parent := &domain.Account{
		AccountID: "assets", Name: "Assets", Type: domain.TypeBranch,
		Left: 2, Right: 7, Depth: 1,
	}
	req := dto.CreateAccountRequest{Name: "Savings", Type: "LEAF", ParentAccountID: strPtr("assets")}

	suite.mockRepo.On("FindAccountByID", ctx, "assets").Return(parent, nil).Once()
	suite.mockRepo.On("InsertAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Left == 7 && a.Right == 8 && a.Depth == 2 && *a.ParentAccountID == "assets"
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(7, account.Left)
	suite.Equal(8, account.Right)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_LeafParentRejected() {
	ctx := context.Background()
	parent := &domain.Account{AccountID: "cash", Name: "Cash", Type: domain.TypeLeaf, Left: 3, Right: 4, Depth: 2}
	req := dto.CreateAccountRequest{Name: "Nested", Type: "LEAF", ParentAccountID: strPtr("cash")}

	suite.mockRepo.On("FindAccountByID", ctx, "cash").Return(parent, nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, services.ErrParentChildNotAllowed)
	suite.mockRepo.AssertNotCalled(suite.T(), "InsertAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RootWithParentRejected() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Bad Root", Type: "ROOT", ParentAccountID: strPtr("assets")}

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "cash", Name: "Cash", Type: domain.TypeLeaf, Left: 3, Right: 4}

	suite.mockRepo.On("FindAccountByID", ctx, "cash").Return(account, nil).Once()
	suite.mockTxnRepo.On("HasMovementsForAccount", ctx, "cash").Return(false, nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, *account).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, "cash")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_BlockedByChildren() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "assets", Name: "Assets", Type: domain.TypeBranch, Left: 2, Right: 7}

	suite.mockRepo.On("FindAccountByID", ctx, "assets").Return(account, nil).Once()

	err := suite.service.DeleteAccount(ctx, "assets")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountHasChildren)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_BlockedByMovements() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "cash", Name: "Cash", Type: domain.TypeLeaf, Left: 3, Right: 4}

	suite.mockRepo.On("FindAccountByID", ctx, "cash").Return(account, nil).Once()
	suite.mockTxnRepo.On("HasMovementsForAccount", ctx, "cash").Return(true, nil).Once()

	err := suite.service.DeleteAccount(ctx, "cash")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountHasMovements)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NameAndDescription() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "cash", Name: "Cash", Type: domain.TypeLeaf, Left: 3, Right: 4}
	newName := "Wallet"

	suite.mockRepo.On("FindAccountByID", ctx, "cash").Return(account, nil).Once()
	suite.mockRepo.On("UpdateAccountDetails", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == "cash" && a.Name == "Wallet"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, "cash", dto.UpdateAccountRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal("Wallet", updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetDescendantIDs_UsesCachedTree() {
	ctx := context.Background()
	rootID := "root"
	accounts := []domain.Account{
		{AccountID: "root", Name: "Root", Type: domain.TypeRoot, Left: 1, Right: 6},
		{AccountID: "assets", Name: "Assets", Type: domain.TypeBranch, ParentAccountID: &rootID, Left: 2, Right: 5, Depth: 1},
		{AccountID: "cash", Name: "Cash", Type: domain.TypeLeaf, ParentAccountID: strPtr("assets"), Left: 3, Right: 4, Depth: 2},
	}

	// One load backs both queries; the snapshot is cached in between.
	suite.mockRepo.On("ListAccounts", ctx).Return(accounts, nil).Once()

	ids, err := suite.service.GetDescendantIDs(ctx, "assets", true, true)
	suite.Require().NoError(err)
	suite.Equal([]string{"assets", "cash"}, ids)

	ids, err = suite.service.GetDescendantIDs(ctx, "root", false, true)
	suite.Require().NoError(err)
	suite.Equal([]string{"assets", "cash"}, ids)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetDescendantIDs_UncachedHitsRepository() {
	ctx := context.Background()

	suite.mockRepo.On("FindDescendantIDs", ctx, "assets", false).Return([]string{"cash"}, nil).Once()

	ids, err := suite.service.GetDescendantIDs(ctx, "assets", false, false)

	suite.Require().NoError(err)
	suite.Equal([]string{"cash"}, ids)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
