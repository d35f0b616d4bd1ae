package services

// ServiceContainer aggregates the service facades handed to the delivery
// layer.
type ServiceContainer struct {
	Account    AccountSvcFacade
	Withdrawal WithdrawalSvcFacade
	Statement  StatementSvcFacade
}
