package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/termvault/fd_account_app/internal/core/domain"
)

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveNewAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByNameContains(ctx context.Context, fragment string) ([]domain.Account, error) {
	args := m.Called(ctx, fragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	args := m.Called(ctx, accountNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) AddHolder(ctx context.Context, holder domain.AccountHolder) error {
	args := m.Called(ctx, holder)
	return args.Error(0)
}

func (m *MockAccountRepository) CloseAccount(ctx context.Context, accountID string, status domain.AccountStatus, closedAt time.Time, transactions []domain.Transaction) error {
	args := m.Called(ctx, accountID, status, closedAt, transactions)
	return args.Error(0)
}

// MockTransactionRepository is a mock type for the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByAccountInRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockBalanceRepository is a mock type for the BalanceRepository interface
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) SaveBalances(ctx context.Context, entries []domain.BalanceEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockBalanceRepository) FindActiveByAccount(ctx context.Context, accountID string) ([]domain.BalanceEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceEntry), args.Error(1)
}

// MockCalculationProvider is a mock type for the CalculationProvider interface
type MockCalculationProvider struct {
	mock.Mock
}

func (m *MockCalculationProvider) GetCalculationResult(ctx context.Context, calculationID string) (*domain.CalculationResult, error) {
	args := m.Called(ctx, calculationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalculationResult), args.Error(1)
}

// MockProductProvider is a mock type for the ProductProvider interface
type MockProductProvider struct {
	mock.Mock
}

func (m *MockProductProvider) GetProductConfig(ctx context.Context, productCode string) (*domain.ProductConfig, error) {
	args := m.Called(ctx, productCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductConfig), args.Error(1)
}

// MockCustomerProvider is a mock type for the CustomerProvider interface
type MockCustomerProvider struct {
	mock.Mock
}

func (m *MockCustomerProvider) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// MockEventPublisher is a mock type for the EventPublisher interface
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishAccountCreated(ctx context.Context, event domain.AccountCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishAccountClosed(ctx context.Context, event domain.AccountClosedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishCommunicationRequested(ctx context.Context, event domain.CommunicationRequestedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
