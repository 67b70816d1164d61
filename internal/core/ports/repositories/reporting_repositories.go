package repositories

import (
	"context"
	"time"

	"github.com/treeledger/treeledger/internal/core/domain"
)

// ReportingRepository defines the movement aggregation queries used by report
// generation. Queries are read-only and must observe a consistent snapshot of
// the tree (read committed or stronger).
type ReportingRepository interface {
	// AggregateMovements sums movement quantities over the given account IDs
	// grouped by (currency, transaction date), ordered by date. from and to
	// are optional inclusive bounds on the transaction date.
	AggregateMovements(ctx context.Context, accountIDs []string, from, to *time.Time) ([]domain.MovementAggregate, error)
}
