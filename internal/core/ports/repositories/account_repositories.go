package repositories

import (
	"context"

	"github.com/treeledger/treeledger/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves every account, ordered by left bound.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// FindDescendantIDs returns the IDs of all accounts whose nested-set
	// bounds are contained in the given account's bounds.
	FindDescendantIDs(ctx context.Context, accountID string, includeSelf bool) ([]string, error)
}

// AccountWriter defines write operations for account data. Structural writes
// perform the nested-set range shifts atomically: either the shift and the
// row change both land, or neither does.
type AccountWriter interface {
	// InsertAccount persists a new account whose bounds are already computed,
	// shifting the bounds of all accounts at or after account.Left by +2
	// within the same database transaction.
	InsertAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountDetails updates name and description of an existing account.
	UpdateAccountDetails(ctx context.Context, account domain.Account) error

	// DeleteAccount removes a leaf node and shifts all bounds after its right
	// bound by -2 within the same database transaction.
	DeleteAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
