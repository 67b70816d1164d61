package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/treeledger/treeledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(pool),
		CurrencyRepo:    newPgxCurrencyRepository(pool),
		PriceRepo:       newPgxPriceRepository(pool),
		TransactionRepo: newPgxTransactionRepository(pool),
		ReportingRepo:   newPgxReportingRepository(pool),
	}
}
