package services

import (
	"context"

	"github.com/treeledger/treeledger/internal/core/domain"
	"github.com/treeledger/treeledger/internal/dto"
)

// AccountReaderSvc defines read operations over the account tree.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts ordered by left bound.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// GetDescendantIDs returns the subtree account IDs of an account.
	// With useCache, a previously built tree snapshot may answer the query;
	// the cache is invalidated on every structural mutation.
	GetDescendantIDs(ctx context.Context, accountID string, includeSelf bool, useCache bool) ([]string, error)

	// GetAccountTree returns a tree index over a snapshot of all accounts.
	GetAccountTree(ctx context.Context) (*domain.AccountTree, error)
}

// AccountWriterSvc defines structural mutations of the account tree.
// Mutations are not safe under concurrency; callers serialize them.
type AccountWriterSvc interface {
	// CreateAccount validates placement capabilities and inserts the account
	// into the nested-set tree.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates name and description. The account type is
	// immutable after creation.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account that has neither children nor movements.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
