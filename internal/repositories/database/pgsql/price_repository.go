package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/treeledger/treeledger/internal/apperrors"
	"github.com/treeledger/treeledger/internal/core/domain"
	portsrepo "github.com/treeledger/treeledger/internal/core/ports/repositories"
)

// PgxPriceRepository implements price history data access using pgx.
type PgxPriceRepository struct {
	BaseRepository
}

// newPgxPriceRepository creates a new repository for price data.
func newPgxPriceRepository(pool *pgxpool.Pool) portsrepo.PriceRepositoryFacade {
	return &PgxPriceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PriceRepositoryFacade = (*PgxPriceRepository)(nil)

const priceColumns = `price_id, currency_code, price_date, value, created_at, last_updated_at`

func scanPrice(row pgx.Row) (*domain.Price, error) {
	var price domain.Price
	err := row.Scan(
		&price.PriceID,
		&price.CurrencyCode,
		&price.Date,
		&price.Value,
		&price.CreatedAt,
		&price.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan price", err)
	}
	return &price, nil
}

// FindPriceOnOrBefore retrieves the latest price for a currency at or before
// the given date.
func (r *PgxPriceRepository) FindPriceOnOrBefore(ctx context.Context, currencyCode string, date time.Time) (*domain.Price, error) {
	query := `
		SELECT ` + priceColumns + `
		FROM prices
		WHERE currency_code = $1 AND price_date <= $2
		ORDER BY price_date DESC
		LIMIT 1;
	`
	return scanPrice(r.Pool.QueryRow(ctx, query, currencyCode, date))
}

// ListPricesByCurrency retrieves all prices for a currency ordered by date.
func (r *PgxPriceRepository) ListPricesByCurrency(ctx context.Context, currencyCode string) ([]domain.Price, error) {
	query := `SELECT ` + priceColumns + ` FROM prices WHERE currency_code = $1 ORDER BY price_date;`
	rows, err := r.Pool.Query(ctx, query, currencyCode)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query prices", err)
	}
	defer rows.Close()

	var prices []domain.Price
	for rows.Next() {
		price, err := scanPrice(rows)
		if err != nil {
			return nil, err
		}
		prices = append(prices, *price)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate prices", err)
	}
	return prices, nil
}

// SavePrice persists a new price point. One price per currency per date.
func (r *PgxPriceRepository) SavePrice(ctx context.Context, price domain.Price) error {
	query := `INSERT INTO prices (` + priceColumns + `) VALUES ($1, $2, $3, $4, $5, $6);`
	_, err := r.Pool.Exec(ctx, query,
		price.PriceID, price.CurrencyCode, price.Date, price.Value,
		price.CreatedAt, price.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: price for %s on %s", apperrors.ErrDuplicate, price.CurrencyCode, price.Date.Format("2006-01-02"))
		}
		return apperrors.NewAppError(500, "failed to insert price for "+price.CurrencyCode, err)
	}
	return nil
}
