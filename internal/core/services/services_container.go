package services

import (
	portsrepo "github.com/treeledger/treeledger/internal/core/ports/repositories"
	portssvc "github.com/treeledger/treeledger/internal/core/ports/services"
	"github.com/treeledger/treeledger/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Price = NewPriceService(repos.PriceRepo, container.Currency, cfg.BaseCurrency)
	container.Account = NewAccountService(repos.AccountRepo, repos.TransactionRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Account, container.Price)
	container.Journal = NewJournalService(repos.TransactionRepo, container.Account)
	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		container.Account,
		WithReportingConverter(container.Price),
	)

	return container
}
