package services

import (
	"github.com/termvault/fd_account_app/internal/core/ports"
	portssvc "github.com/termvault/fd_account_app/internal/core/ports/services"
	"github.com/termvault/fd_account_app/internal/platform/clock"
)

// Dependencies carries everything the service layer is wired from. All
// collaborators are explicit; there is no framework container.
type Dependencies struct {
	AccountRepo      ports.AccountRepository
	TransactionRepo  ports.TransactionRepository
	BalanceRepo      ports.BalanceRepository
	CalcProvider     ports.CalculationProvider
	ProductProvider  ports.ProductProvider
	CustomerProvider ports.CustomerProvider
	Publisher        ports.EventPublisher
	Clock            clock.Clock
}

// NewContainer creates the service container with properly initialized
// dependencies.
func NewContainer(deps Dependencies) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account: NewAccountService(
			deps.AccountRepo,
			deps.BalanceRepo,
			deps.CalcProvider,
			deps.ProductProvider,
			deps.Clock,
			WithAccountEventPublisher(deps.Publisher),
		),
		Withdrawal: NewWithdrawalService(
			deps.AccountRepo,
			deps.ProductProvider,
			deps.Clock,
			WithWithdrawalEventPublisher(deps.Publisher),
		),
		Statement: NewStatementService(
			deps.AccountRepo,
			deps.TransactionRepo,
			deps.BalanceRepo,
			deps.ProductProvider,
			deps.CustomerProvider,
			deps.Clock,
			WithStatementEventPublisher(deps.Publisher),
		),
	}
}
