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

// PgxTransactionRepository persists transactions together with their movement
// and tag sets. Every write touches all three tables inside one database
// transaction.
type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, description, txn_date, reference, created_at, last_updated_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.Description,
		&txn.Date,
		&txn.Reference,
		&txn.CreatedAt,
		&txn.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan transaction", err)
	}
	return &txn, nil
}

// loadMovements fetches the movements of the given transactions, keyed by
// transaction ID and ordered by movement_id for deterministic output.
func (r *PgxTransactionRepository) loadMovements(ctx context.Context, transactionIDs []string) (map[string][]domain.Movement, error) {
	query := `
		SELECT movement_id, transaction_id, account_id, amount, currency_code, comment, created_at, last_updated_at
		FROM movements
		WHERE transaction_id = ANY($1)
		ORDER BY movement_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query movements", err)
	}
	defer rows.Close()

	movements := make(map[string][]domain.Movement, len(transactionIDs))
	for rows.Next() {
		var m domain.Movement
		err := rows.Scan(
			&m.MovementID,
			&m.TransactionID,
			&m.AccountID,
			&m.Money.Amount,
			&m.Money.CurrencyCode,
			&m.Comment,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan movement", err)
		}
		movements[m.TransactionID] = append(movements[m.TransactionID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate movements", err)
	}
	return movements, nil
}

func (r *PgxTransactionRepository) loadTags(ctx context.Context, transactionIDs []string) (map[string][]domain.TransactionTag, error) {
	query := `
		SELECT transaction_id, tag_name, tag_value
		FROM transaction_tags
		WHERE transaction_id = ANY($1)
		ORDER BY tag_name;
	`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transaction tags", err)
	}
	defer rows.Close()

	tags := make(map[string][]domain.TransactionTag, len(transactionIDs))
	for rows.Next() {
		var txnID string
		var tag domain.TransactionTag
		if err := rows.Scan(&txnID, &tag.Name, &tag.Value); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction tag", err)
		}
		tags[txnID] = append(tags[txnID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate transaction tags", err)
	}
	return tags, nil
}

// FindTransactionByID retrieves a transaction with its movements and tags.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, err
	}

	movements, err := r.loadMovements(ctx, []string{transactionID})
	if err != nil {
		return nil, err
	}
	tags, err := r.loadTags(ctx, []string{transactionID})
	if err != nil {
		return nil, err
	}
	txn.Movements = movements[transactionID]
	txn.Tags = tags[transactionID]
	return txn, nil
}

// FindTransactionsByAccountID retrieves all transactions touching the account,
// each with its full movement set, ordered by (date, transaction id).
func (r *PgxTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id IN (SELECT transaction_id FROM movements WHERE account_id = $1)
		ORDER BY txn_date, transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	var ids []string
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
		ids = append(ids, txn.TransactionID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate transactions", err)
	}
	if len(transactions) == 0 {
		return transactions, nil
	}

	movements, err := r.loadMovements(ctx, ids)
	if err != nil {
		return nil, err
	}
	tags, err := r.loadTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range transactions {
		transactions[i].Movements = movements[transactions[i].TransactionID]
		transactions[i].Tags = tags[transactions[i].TransactionID]
	}
	return transactions, nil
}

// HasMovementsForAccount reports whether any movement references the account.
func (r *PgxTransactionRepository) HasMovementsForAccount(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM movements WHERE account_id = $1);`
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check account movements", err)
	}
	return exists, nil
}

// insertMovementsAndTags batches the child rows of a transaction.
func insertMovementsAndTags(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	batch := &pgx.Batch{}
	movementQuery := `
		INSERT INTO movements (movement_id, transaction_id, account_id, amount, currency_code, comment, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, m := range txn.Movements {
		batch.Queue(movementQuery,
			m.MovementID, m.TransactionID, m.AccountID,
			m.Money.Amount, m.Money.CurrencyCode, m.Comment,
			m.CreatedAt, m.LastUpdatedAt,
		)
	}
	tagQuery := `INSERT INTO transaction_tags (transaction_id, tag_name, tag_value) VALUES ($1, $2, $3);`
	for _, tag := range txn.Tags {
		batch.Queue(tagQuery, txn.TransactionID, tag.Name, tag.Value)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction details", err)
	}
	return nil
}

// SaveTransaction persists the transaction, its movements and its tags in one
// unit of work.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, insertQuery,
		txn.TransactionID, txn.Description, txn.Date, txn.Reference,
		txn.CreatedAt, txn.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+txn.TransactionID, err)
	}

	if err := insertMovementsAndTags(ctx, tx, txn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateTransaction updates the transaction row and replaces its entire
// movement and tag sets in one unit of work.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE transactions
		SET description = $2, txn_date = $3, reference = $4, last_updated_at = $5
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		txn.TransactionID, txn.Description, txn.Date, txn.Reference, txn.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM movements WHERE transaction_id = $1;`, txn.TransactionID); err != nil {
		return apperrors.NewAppError(500, "failed to clear movements", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM transaction_tags WHERE transaction_id = $1;`, txn.TransactionID); err != nil {
		return apperrors.NewAppError(500, "failed to clear transaction tags", err)
	}

	if err := insertMovementsAndTags(ctx, tx, txn); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteTransaction removes the transaction, its movements and its tags.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM movements WHERE transaction_id = $1;`, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete movements", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM transaction_tags WHERE transaction_id = $1;`, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction tags", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
