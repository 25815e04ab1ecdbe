package services

// ServiceContainer bundles all application services for handler wiring.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Transaction TransactionSvcFacade
	Budget      BudgetSvcFacade
	Currency    CurrencySvc
	Reporting   ReportingSvc
}
