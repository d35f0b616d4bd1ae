package ports

import (
	"context"

	"github.com/termvault/fd_account_app/internal/core/domain"
)

// CalculationProvider resolves a calculation identifier to the calculation
// service's typed result. Failures surface as apperrors.ErrUpstreamUnavailable.
type CalculationProvider interface {
	GetCalculationResult(ctx context.Context, calculationID string) (*domain.CalculationResult, error)
}

// ProductProvider resolves a product code to its configuration. Failures
// surface as apperrors.ErrUpstreamUnavailable; an unknown product code is
// apperrors.ErrNotFound.
type ProductProvider interface {
	GetProductConfig(ctx context.Context, productCode string) (*domain.ProductConfig, error)
}

// CustomerProvider resolves a customer id to the customer projection used in
// statement rendering.
type CustomerProvider interface {
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
}

// EventPublisher is the fire-and-forget event sink. The core constructs the
// payload and hands it off; publish failures are logged by callers, never
// propagated, and never roll back the operation that produced the event.
type EventPublisher interface {
	PublishAccountCreated(ctx context.Context, event domain.AccountCreatedEvent) error
	PublishAccountClosed(ctx context.Context, event domain.AccountClosedEvent) error
	PublishCommunicationRequested(ctx context.Context, event domain.CommunicationRequestedEvent) error
}
