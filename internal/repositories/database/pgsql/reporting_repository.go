package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/treeledger/treeledger/internal/apperrors"
	"github.com/treeledger/treeledger/internal/core/domain"
	portsrepo "github.com/treeledger/treeledger/internal/core/ports/repositories"
)

// PgxReportingRepository implements the movement aggregation queries backing
// report generation.
type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for reporting queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// AggregateMovements sums movement quantities over the given accounts grouped
// by (currency, transaction date). from and to are optional inclusive bounds.
func (r *PgxReportingRepository) AggregateMovements(ctx context.Context, accountIDs []string, from, to *time.Time) ([]domain.MovementAggregate, error) {
	query := `
		SELECT m.currency_code, SUM(m.amount), t.txn_date
		FROM movements m
		JOIN transactions t ON t.transaction_id = m.transaction_id
		WHERE m.account_id = ANY($1)
		  AND ($2::timestamptz IS NULL OR t.txn_date >= $2)
		  AND ($3::timestamptz IS NULL OR t.txn_date <= $3)
		GROUP BY m.currency_code, t.txn_date
		ORDER BY t.txn_date, m.currency_code;
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate movements", err)
	}
	defer rows.Close()

	var aggregates []domain.MovementAggregate
	for rows.Next() {
		var agg domain.MovementAggregate
		if err := rows.Scan(&agg.CurrencyCode, &agg.Quantity, &agg.Date); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan movement aggregate", err)
		}
		aggregates = append(aggregates, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate movement aggregates", err)
	}
	return aggregates, nil
}
