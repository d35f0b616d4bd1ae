package services

import (
	"context"

	"github.com/termvault/fd_account_app/internal/core/domain"
	"github.com/termvault/fd_account_app/internal/dto"
)

// AccountSvcFacade is the account lifecycle engine's caller-facing surface.
type AccountSvcFacade interface {
	// CreateAccount opens a fixed deposit from a calculation result: derives
	// term and principal, assigns a unique account number, attaches the OWNER
	// holder, posts the initial PRINCIPAL_DEPOSIT and seeds balance buckets.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// AddRoleToAccount attaches a holder, enforcing product role policy and
	// (customer, role) uniqueness.
	AddRoleToAccount(ctx context.Context, accountNumber string, req dto.AddRoleRequest) (*domain.Account, error)

	// FindAccounts dispatches on the search kind. Unknown kinds are a
	// validation error; no match is an empty list.
	FindAccounts(ctx context.Context, kind dto.AccountSearchKind, value string) ([]domain.Account, error)
}
