package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/termvault/fd_account_app/internal/core/ports"
)

// RepositoryProvider bundles the pgx-backed repositories.
type RepositoryProvider struct {
	AccountRepo     ports.AccountRepository
	TransactionRepo ports.TransactionRepository
	BalanceRepo     ports.BalanceRepository
	ProductRepo     ports.ProductProvider
}

// NewRepositoryProvider wires every repository onto the shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *RepositoryProvider {
	return &RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(pool),
		TransactionRepo: newPgxTransactionRepository(pool),
		BalanceRepo:     newPgxBalanceRepository(pool),
		ProductRepo:     newPgxProductRepository(pool),
	}
}
