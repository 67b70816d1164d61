package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/treeledger/treeledger/internal/apperrors"
	"github.com/treeledger/treeledger/internal/core/domain"
	portsrepo "github.com/treeledger/treeledger/internal/core/ports/repositories"
)

// PgxAccountRepository stores the account tree with nested-set bounds.
// Structural writes shift the bounds of other rows inside the same database
// transaction, so a reader never observes a half-shifted tree.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, name, account_type, parent_account_id, description, lft, rgt, depth, created_at, last_updated_at`

// scanAccount scans one account row, resolving the stored type name to its
// capability record.
func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	var typeName string
	err := row.Scan(
		&account.AccountID,
		&account.Name,
		&typeName,
		&account.ParentAccountID,
		&account.Description,
		&account.Left,
		&account.Right,
		&account.Depth,
		&account.CreatedAt,
		&account.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan account", err)
	}
	accountType, ok := domain.AccountTypeByName(typeName)
	if !ok {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("unknown account type %s in storage", typeName), nil)
	}
	account.Type = accountType
	return &account, nil
}

// FindAccountByID retrieves a specific account by its unique identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, accountID))
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts[account.AccountID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate accounts", err)
	}
	return accounts, nil
}

// ListAccounts retrieves every account ordered by left bound.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY lft;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate accounts", err)
	}
	return accounts, nil
}

// FindDescendantIDs returns the IDs of all accounts contained in the given
// account's nested-set bounds.
func (r *PgxAccountRepository) FindDescendantIDs(ctx context.Context, accountID string, includeSelf bool) ([]string, error) {
	comparison := `d.lft >= a.lft AND d.rgt <= a.rgt`
	if !includeSelf {
		comparison = `d.lft > a.lft AND d.rgt < a.rgt`
	}
	query := `
		SELECT d.account_id
		FROM accounts d, accounts a
		WHERE a.account_id = $1 AND ` + comparison + `
		ORDER BY d.lft;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query descendants", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan descendant id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate descendants", err)
	}
	return ids, nil
}

// InsertAccount persists a new account, shifting the bounds of all rows at or
// after the insertion point by +2 within one database transaction.
func (r *PgxAccountRepository) InsertAccount(ctx context.Context, account domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Classic nested-set insert: make room at account.Left.
	if _, err := tx.Exec(ctx, `UPDATE accounts SET rgt = rgt + 2 WHERE rgt >= $1;`, account.Left); err != nil {
		return apperrors.NewAppError(500, "failed to shift right bounds", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE accounts SET lft = lft + 2 WHERE lft >= $1;`, account.Left); err != nil {
		return apperrors.NewAppError(500, "failed to shift left bounds", err)
	}

	insertQuery := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insertQuery,
		account.AccountID,
		account.Name,
		account.Type.Name,
		account.ParentAccountID,
		account.Description,
		account.Left,
		account.Right,
		account.Depth,
		account.CreatedAt,
		account.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account name %s", apperrors.ErrDuplicate, account.Name)
		}
		return apperrors.NewAppError(500, "failed to insert account "+account.AccountID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateAccountDetails updates name and description of an existing account.
func (r *PgxAccountRepository) UpdateAccountDetails(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, description = $3, last_updated_at = $4
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, account.AccountID, account.Name, account.Description, account.LastUpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account name %s", apperrors.ErrDuplicate, account.Name)
		}
		return apperrors.NewAppError(500, "failed to update account "+account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes a childless node and closes the gap with the
// symmetric -2 shift, all in one database transaction.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, account domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, account.AccountID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete account "+account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `UPDATE accounts SET rgt = rgt - 2 WHERE rgt > $1;`, account.Right); err != nil {
		return apperrors.NewAppError(500, "failed to shift right bounds", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE accounts SET lft = lft - 2 WHERE lft > $1;`, account.Right); err != nil {
		return apperrors.NewAppError(500, "failed to shift left bounds", err)
	}

	return r.Commit(ctx, tx)
}
