package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/treeledger/treeledger/internal/apperrors"
	"github.com/treeledger/treeledger/internal/core/domain"
	portsrepo "github.com/treeledger/treeledger/internal/core/ports/repositories"
	portssvc "github.com/treeledger/treeledger/internal/core/ports/services"
	"github.com/treeledger/treeledger/internal/dto"
)

// accountService manages the nested-set account tree. Structural mutations
// (insert, delete) shift many bounds at once and must be serialized by the
// caller; the repository performs each shift atomically. The cached tree
// snapshot is dropped on every mutation.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	txnReader   portsrepo.TransactionReader

	mu         sync.Mutex
	cachedTree *domain.AccountTree
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, txnReader portsrepo.TransactionReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		txnReader:   txnReader,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// invalidateTree drops the cached tree snapshot after a structural mutation.
func (s *accountService) invalidateTree() {
	s.mu.Lock()
	s.cachedTree = nil
	s.mu.Unlock()
}

// CreateAccount validates placement and inserts the account into the tree.
// A new node becomes the last child of its parent: its left bound takes the
// parent's right bound, and every bound at or after the insertion point
// shifts by +2 (done atomically by the repository).
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	accountType, ok := domain.AccountTypeByName(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: unknown account type %s", apperrors.ErrValidation, req.Type)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Name:            req.Name,
		Type:            accountType,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if req.ParentAccountID == nil {
		if accountType.Name != domain.TypeRoot.Name {
			return nil, fmt.Errorf("%w: account %s of type %s", ErrNullParent, req.Name, accountType.Name)
		}
		existing, err := s.accountRepo.ListAccounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}
		for _, a := range existing {
			if a.IsRoot() {
				return nil, fmt.Errorf("%w: tree already has a root account %s", apperrors.ErrConflict, a.Name)
			}
		}
		account.Left, account.Right, account.Depth = 1, 2, 0
	} else {
		if accountType.Name == domain.TypeRoot.Name {
			return nil, fmt.Errorf("%w: root account cannot have a parent", apperrors.ErrValidation)
		}
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to find parent account %s: %w", *req.ParentAccountID, err)
		}
		if !parent.Type.ChildrenAllowed || !parent.Type.NewAccountsAllowed {
			return nil, fmt.Errorf("%w: parent %s has type %s", ErrParentChildNotAllowed, parent.Name, parent.Type.Name)
		}
		account.Left = parent.Right
		account.Right = parent.Right + 1
		account.Depth = parent.Depth + 1
	}

	if err := s.accountRepo.InsertAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to insert account", "name", account.Name)
		return nil, fmt.Errorf("failed to insert account %s: %w", account.Name, err)
	}
	s.invalidateTree()

	s.LogInfo(ctx, "Account created successfully", "account_id", account.AccountID, "name", account.Name)
	return &account, nil
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves all accounts ordered by left bound.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// GetAccountTree returns a tree index over a snapshot of all accounts,
// reusing the cached snapshot until the next structural mutation.
func (s *accountService) GetAccountTree(ctx context.Context) (*domain.AccountTree, error) {
	s.mu.Lock()
	if s.cachedTree != nil {
		tree := s.cachedTree
		s.mu.Unlock()
		return tree, nil
	}
	s.mu.Unlock()

	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for tree: %w", err)
	}
	tree := domain.NewAccountTree(accounts)

	s.mu.Lock()
	s.cachedTree = tree
	s.mu.Unlock()
	return tree, nil
}

// GetDescendantIDs returns the subtree account IDs of an account.
func (s *accountService) GetDescendantIDs(ctx context.Context, accountID string, includeSelf bool, useCache bool) ([]string, error) {
	if !useCache {
		ids, err := s.accountRepo.FindDescendantIDs(ctx, accountID, includeSelf)
		if err != nil {
			return nil, fmt.Errorf("failed to find descendants of %s: %w", accountID, err)
		}
		return ids, nil
	}

	tree, err := s.GetAccountTree(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := tree.DescendantIDs(accountID, includeSelf)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	return ids, nil
}

// UpdateAccount updates name and description; the type is immutable.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	if err := s.accountRepo.UpdateAccountDetails(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", "account_id", accountID)
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}
	s.invalidateTree()

	s.LogInfo(ctx, "Account updated successfully", "account_id", accountID)
	return account, nil
}

// DeleteAccount removes an account, refusing while it still has children or
// referencing movements. Removal shifts all later bounds by -2.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	// A nested-set node without children spans exactly (left, left+1).
	if account.Right-account.Left > 1 {
		return fmt.Errorf("%w: %s", ErrAccountHasChildren, account.Name)
	}

	hasMovements, err := s.txnReader.HasMovementsForAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check movements for account %s: %w", accountID, err)
	}
	if hasMovements {
		return fmt.Errorf("%w: %s", ErrAccountHasMovements, account.Name)
	}

	if err := s.accountRepo.DeleteAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to delete account", "account_id", accountID)
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	s.invalidateTree()

	s.LogInfo(ctx, "Account deleted successfully", "account_id", accountID, "name", account.Name)
	return nil
}
