package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/treeledger/treeledger/internal/core/domain"
	portsrepo "github.com/treeledger/treeledger/internal/core/ports/repositories"
	portssvc "github.com/treeledger/treeledger/internal/core/ports/services"
	"github.com/treeledger/treeledger/internal/dto"
)

// transactionService enforces the double-entry invariant: every transaction's
// movements, valued at the transaction date, sum to exactly zero across at
// least two distinct accounts. Writes are atomic through the repository's
// unit of work.
type transactionService struct {
	BaseService
	txnRepo    portsrepo.TransactionRepositoryFacade
	accountSvc portssvc.AccountReaderSvc
	converter  portssvc.CurrencyConverter
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, accountSvc portssvc.AccountReaderSvc, converter portssvc.CurrencyConverter) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:    txnRepo,
		accountSvc: accountSvc,
		converter:  converter,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// validateMovementSpecs runs the double-entry checks on a candidate movement
// set at the given date:
//  1. the movement values at the date cancel to zero (value-equivalent, not
//     per-currency zero),
//  2. at least two distinct accounts are involved,
//  3. every account allows movements.
func (s *transactionService) validateMovementSpecs(ctx context.Context, specs []domain.MovementSpec, date time.Time) error {
	accountSet := make(map[string]struct{})
	perCurrency := make(map[string]decimal.Decimal)
	for _, spec := range specs {
		accountSet[spec.AccountID] = struct{}{}
		perCurrency[spec.Money.CurrencyCode] = perCurrency[spec.Money.CurrencyCode].Add(spec.Money.Amount)
	}
	if len(accountSet) < 2 {
		return ErrSingleAccountTransaction
	}

	// A single-currency set balances iff the raw quantities cancel; the
	// price factors out. Mixed currencies are valued at the date.
	sum := decimal.Zero
	if len(perCurrency) == 1 {
		for _, quantity := range perCurrency {
			sum = quantity
		}
	} else {
		for code, quantity := range perCurrency {
			value, err := s.converter.Value(ctx, domain.NewMoney(quantity, code), date)
			if err != nil {
				return err
			}
			sum = sum.Add(value)
		}
	}
	if !sum.Round(domain.MoneyPrecision).IsZero() {
		return fmt.Errorf("%w: values sum to %s at %s", ErrUnbalancedMovements, sum.String(), date.Format("2006-01-02"))
	}

	accountIDs := make([]string, 0, len(accountSet))
	for id := range accountSet {
		accountIDs = append(accountIDs, id)
	}
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		account, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		if !account.Type.MovementsAllowed {
			return fmt.Errorf("%w: account %s has type %s", ErrAccountMovementsNotAllowed, account.Name, account.Type.Name)
		}
	}
	return nil
}

// buildMovements materializes persisted movements from validated specs.
func buildMovements(transactionID string, specs []domain.MovementSpec, now time.Time) []domain.Movement {
	movements := make([]domain.Movement, len(specs))
	for i, spec := range specs {
		movements[i] = domain.Movement{
			MovementID:    uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     spec.AccountID,
			Money:         spec.Money,
			Comment:       spec.Comment,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
	}
	return movements
}

func toDomainTags(tags []dto.TagRequest) []domain.TransactionTag {
	if len(tags) == 0 {
		return nil
	}
	result := make([]domain.TransactionTag, len(tags))
	for i, t := range tags {
		result[i] = domain.TransactionTag{Name: t.Name, Value: t.Value}
	}
	return result
}

func toMovementSpecs(reqs []dto.MovementSpecRequest) []domain.MovementSpec {
	specs := make([]domain.MovementSpec, len(reqs))
	for i, r := range reqs {
		specs[i] = r.ToMovementSpec()
	}
	return specs
}

// CreateTransaction validates the movement specs and persists the transaction
// atomically: either the transaction row and all movements land, or none do.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	specs := toMovementSpecs(req.Movements)
	if err := s.validateMovementSpecs(ctx, specs, req.Date); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Description:   req.Description,
		Date:          req.Date,
		Reference:     req.Reference,
		Tags:          toDomainTags(req.Tags),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	txn.Movements = buildMovements(txn.TransactionID, specs, now)

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", "transaction_id", txn.TransactionID)
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created successfully", "transaction_id", txn.TransactionID, "movements", len(txn.Movements))
	return &txn, nil
}

// GetTransactionByID retrieves a transaction with its movements and tags.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// UpdateTransaction replaces the transaction's fields and its entire movement
// set, re-running validation against the new set and date.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	specs := toMovementSpecs(req.Movements)
	if err := s.validateMovementSpecs(ctx, specs, req.Date); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: existing.TransactionID,
		Description:   req.Description,
		Date:          req.Date,
		Reference:     req.Reference,
		Tags:          toDomainTags(req.Tags),
		AuditFields: domain.AuditFields{
			CreatedAt:     existing.CreatedAt,
			LastUpdatedAt: now,
		},
	}
	txn.Movements = buildMovements(txn.TransactionID, specs, now)

	if err := s.txnRepo.UpdateTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}

	s.LogInfo(ctx, "Transaction updated successfully", "transaction_id", transactionID)
	return &txn, nil
}

// DeleteTransaction removes a transaction and all its movements.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", "transaction_id", transactionID)
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	s.LogInfo(ctx, "Transaction deleted successfully", "transaction_id", transactionID)
	return nil
}
