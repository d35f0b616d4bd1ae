package services

import (
	"context"

	"github.com/termvault/fd_account_app/internal/core/domain"
)

// WithdrawalSvcFacade is the premature withdrawal engine's caller-facing
// surface.
type WithdrawalSvcFacade interface {
	// Inquiry computes a non-mutating early-termination quote for an ACTIVE
	// account. Deterministic for fixed account, product and logical date.
	Inquiry(ctx context.Context, accountNumber string) (*domain.WithdrawalInquiry, error)

	// Execute runs the inquiry, posts the penalty and payout transactions,
	// and transitions the account to PREMATURELY_CLOSED atomically. A second
	// call on a closed account fails with ErrInvalidState and posts nothing.
	Execute(ctx context.Context, accountNumber string, reason string) (*domain.Account, error)
}
