package ports

import (
	"context"
	"time"

	"github.com/termvault/fd_account_app/internal/core/domain"
)

// AccountRepository defines persistence for the account aggregate. Saving the
// aggregate writes the account, its holders and its transactions atomically:
// a crash mid-save must leave the store unchanged.
type AccountRepository interface {
	// SaveNewAccount persists a freshly created aggregate (account + holders
	// + initial transactions) in one transactional boundary.
	SaveNewAccount(ctx context.Context, account domain.Account) error

	// FindAccountByNumber loads the full aggregate for an account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountsByCustomerID lists accounts joined through holders.
	FindAccountsByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error)

	// FindAccountsByNameContains lists accounts whose display name contains
	// the fragment, case-insensitively.
	FindAccountsByNameContains(ctx context.Context, fragment string) ([]domain.Account, error)

	// ListActiveAccounts lists every account in ACTIVE status.
	ListActiveAccounts(ctx context.Context) ([]domain.Account, error)

	// AccountNumberExists reports whether an account number is already taken.
	AccountNumberExists(ctx context.Context, accountNumber string) (bool, error)

	// AddHolder appends a holder to an existing account. A duplicate
	// (account, customer, role) triple yields apperrors.ErrDuplicate.
	AddHolder(ctx context.Context, holder domain.AccountHolder) error

	// CloseAccount transitions an ACTIVE account to the given terminal status
	// and appends the closing transactions in one transactional boundary. The
	// status update is guarded on the current status being ACTIVE; losing
	// that race yields apperrors.ErrInvalidState and writes nothing.
	CloseAccount(ctx context.Context, accountID string, status domain.AccountStatus, closedAt time.Time, transactions []domain.Transaction) error
}

// TransactionRepository defines read access to the append-only ledger.
// Postings are written through the AccountRepository's transactional saves.
type TransactionRepository interface {
	// FindByAccountInRange lists postings with transactionDate in [from, to),
	// ordered by transactionDate descending.
	FindByAccountInRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error)

	// FindByAccount lists every posting for an account, newest first.
	FindByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// BalanceRepository defines persistence for balance buckets.
type BalanceRepository interface {
	// SaveBalances inserts the given entries in one transactional boundary.
	SaveBalances(ctx context.Context, entries []domain.BalanceEntry) error

	// FindActiveByAccount lists the active balance entries for an account.
	FindActiveByAccount(ctx context.Context, accountID string) ([]domain.BalanceEntry, error)
}
