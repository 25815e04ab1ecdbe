package services

import (
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithCurrencyRepository(repos.CurrencyRepo),
	)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.AccountRepo,
	)

	container.Budget = NewBudgetService(
		repos.BudgetRepo,
		WithBudgetCurrencyRepository(repos.CurrencyRepo),
	)

	container.Reporting = NewReportingService(
		repos.AccountRepo,
		repos.TransactionRepo,
		repos.BudgetRepo,
		WithReportingCurrencyRepository(repos.CurrencyRepo),
	)

	return container
}
