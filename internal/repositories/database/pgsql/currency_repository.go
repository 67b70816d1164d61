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

// PgxCurrencyRepository implements currency data access using pgx.
type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

const currencyColumns = `currency_code, name, immutable, created_at, last_updated_at`

func scanCurrency(row pgx.Row) (*domain.Currency, error) {
	var currency domain.Currency
	err := row.Scan(
		&currency.Code,
		&currency.Name,
		&currency.Immutable,
		&currency.CreatedAt,
		&currency.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan currency", err)
	}
	return &currency, nil
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_code = $1;`
	return scanCurrency(r.Pool.QueryRow(ctx, query, code))
}

// ListCurrencies retrieves all currencies ordered by code.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY currency_code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query currencies", err)
	}
	defer rows.Close()

	var currencies []domain.Currency
	for rows.Next() {
		currency, err := scanCurrency(rows)
		if err != nil {
			return nil, err
		}
		currencies = append(currencies, *currency)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate currencies", err)
	}
	return currencies, nil
}

// SaveCurrency persists a new currency.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	query := `INSERT INTO currencies (` + currencyColumns + `) VALUES ($1, $2, $3, $4, $5);`
	_, err := r.Pool.Exec(ctx, query,
		currency.Code, currency.Name, currency.Immutable,
		currency.CreatedAt, currency.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, currency.Code)
		}
		return apperrors.NewAppError(500, "failed to insert currency "+currency.Code, err)
	}
	return nil
}

// UpdateCurrency updates an existing currency's name.
func (r *PgxCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	query := `UPDATE currencies SET name = $2, last_updated_at = $3 WHERE currency_code = $1;`
	tag, err := r.Pool.Exec(ctx, query, currency.Code, currency.Name, currency.LastUpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update currency "+currency.Code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
