package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/termvault/fd_account_app/internal/apperrors"
	"github.com/termvault/fd_account_app/internal/core/domain"
	portssvc "github.com/termvault/fd_account_app/internal/core/ports/services"
	"github.com/termvault/fd_account_app/internal/core/services"
	"github.com/termvault/fd_account_app/internal/platform/clock"
)

// --- Test Suite Setup ---

type StatementServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	mockBalanceRepo *MockBalanceRepository
	mockProducts    *MockProductProvider
	mockCustomers   *MockCustomerProvider
	mockPublisher   *MockEventPublisher
	clock           *clock.Adjustable
	service         portssvc.StatementSvcFacade
}

func (suite *StatementServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockBalanceRepo = new(MockBalanceRepository)
	suite.mockProducts = new(MockProductProvider)
	suite.mockCustomers = new(MockCustomerProvider)
	suite.mockPublisher = new(MockEventPublisher)
	suite.clock = clock.NewAdjustable(time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC))
	suite.service = services.NewStatementService(
		suite.mockAccountRepo,
		suite.mockTxnRepo,
		suite.mockBalanceRepo,
		suite.mockProducts,
		suite.mockCustomers,
		suite.clock,
		services.WithStatementEventPublisher(suite.mockPublisher),
	)
}

func (suite *StatementServiceTestSuite) statementAccount() *domain.Account {
	ownership := decimal.NewFromInt(100)
	return &domain.Account{
		AccountID:     "acct-id-1",
		AccountNumber: "111122223333",
		Name:          "Year FD",
		ProductCode:   "FD_STANDARD",
		Status:        domain.StatusActive,
		EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		MaturityDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Holders: []domain.AccountHolder{
			{HolderID: "h-1", AccountID: "acct-id-1", CustomerID: "cust-1", RoleType: domain.RoleOwner, OwnershipPercent: &ownership},
		},
	}
}

// periodLedger is the newest-first slice the transaction repository returns:
// a penalty debit, an interest credit with no description, and the opening
// principal deposit.
func (suite *StatementServiceTestSuite) periodLedger() []domain.Transaction {
	return []domain.Transaction{
		{
			TransactionID:   "t-3",
			AccountID:       "acct-id-1",
			TransactionType: domain.TxnPenaltyDebit,
			Amount:          decimal.NewFromInt(-200),
			TransactionDate: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
			Description:     "Penalty adjustment",
		},
		{
			TransactionID:   "t-2",
			AccountID:       "acct-id-1",
			TransactionType: domain.TxnInterestCredit,
			Amount:          decimal.NewFromInt(500),
			TransactionDate: time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			TransactionID:   "t-1",
			AccountID:       "acct-id-1",
			TransactionType: domain.TxnPrincipalDeposit,
			Amount:          decimal.NewFromInt(100000),
			TransactionDate: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
			Description:     "Initial fixed deposit principal",
		},
	}
}

func (suite *StatementServiceTestSuite) activeBalances() []domain.BalanceEntry {
	return []domain.BalanceEntry{
		{BalanceID: "b-1", AccountID: "acct-id-1", BalanceType: domain.BalanceInterest, BalanceAmount: decimal.NewFromInt(500), IsActive: true},
		{BalanceID: "b-2", AccountID: "acct-id-1", BalanceType: domain.BalancePrincipal, BalanceAmount: decimal.NewFromInt(100000), IsActive: true},
		{BalanceID: "b-3", AccountID: "acct-id-1", BalanceType: domain.BalancePenalty, BalanceAmount: decimal.NewFromInt(200), IsActive: true},
	}
}

func (suite *StatementServiceTestSuite) statementProduct(statementTemplate string) *domain.ProductConfig {
	templates := map[string]string{}
	if statementTemplate != "" {
		templates[domain.CommStatement] = statementTemplate
	}
	return &domain.ProductConfig{
		ProductCode:            "FD_STANDARD",
		CommunicationTemplates: templates,
	}
}

// --- Test Cases ---

func (suite *StatementServiceTestSuite) TestBuildStatement_FullPeriodFromEffectiveDate() {
	ctx := context.Background()
	periodStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "111122223333").Return(suite.statementAccount(), nil).Once()
	// periodEnd is inclusive, so the fetch window extends one day past it.
	suite.mockTxnRepo.On("FindByAccountInRange", ctx, "acct-id-1", periodStart, periodEnd.AddDate(0, 0, 1)).
		Return(suite.periodLedger(), nil).Once()
	suite.mockBalanceRepo.On("FindActiveByAccount", ctx, "acct-id-1").Return(suite.activeBalances(), nil).Once()
	suite.mockProducts.On("GetProductConfig", ctx, "FD_STANDARD").Return(suite.statementProduct(""), nil).Once()
	suite.mockCustomers.On("GetCustomer", ctx, "cust-1").Return(&domain.Customer{CustomerID: "cust-1", FirstName: "Asha"}, nil).Once()

	statement, err := suite.service.BuildStatement(ctx, "111122223333", periodStart, periodEnd)

	suite.Require().NoError(err)
	// A period starting on the effective date opens at zero and never touches
	// the pre-period window.
	suite.True(statement.OpeningBalance.IsZero())
	suite.mockTxnRepo.AssertNumberOfCalls(suite.T(), "FindByAccountInRange", 1)

	// Closing reconciles from the balance buckets: 100000 + 500 - 200.
	suite.True(statement.ClosingBalance.Equal(decimal.NewFromInt(100300)),
		"closing balance was %s", statement.ClosingBalance)

	// Lines stay newest-first; the running balance accumulates oldest-first.
	suite.Require().Len(statement.Lines, 3)
	suite.True(statement.Lines[2].Credit.Equal(decimal.NewFromInt(100000)))
	suite.True(statement.Lines[2].RunningBalance.Equal(decimal.NewFromInt(100000)))
	suite.True(statement.Lines[1].Credit.Equal(decimal.NewFromInt(500)))
	suite.True(statement.Lines[1].RunningBalance.Equal(decimal.NewFromInt(100500)))
	suite.True(statement.Lines[0].Debit.Equal(decimal.NewFromInt(200)))
	suite.True(statement.Lines[0].Credit.IsZero())
	suite.True(statement.Lines[0].RunningBalance.Equal(decimal.NewFromInt(100300)))

	// Dates are truncated to day precision.
	suite.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), statement.Lines[0].Date)

	// A posting without a description falls back to the type's display name.
	suite.Equal("Interest Credit", statement.Lines[1].Description)
	suite.Equal("Penalty adjustment", statement.Lines[0].Description)

	// No STATEMENT template configured, so the default renders.
	suite.Contains(statement.Message, "Dear Asha")
	suite.Contains(statement.Message, "…3333")
	suite.Contains(statement.Message, "Opening balance: 0.00")
	suite.Contains(statement.Message, "Closing balance: 100300.00")
}

func (suite *StatementServiceTestSuite) TestBuildStatement_OpeningBalanceFromPrePeriodPostings() {
	ctx := context.Background()
	effectiveDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	periodStart := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	ledger := suite.periodLedger()
	prePeriod := ledger[2:] // just the principal deposit
	inPeriod := ledger[:2]  // interest credit and penalty debit

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "111122223333").Return(suite.statementAccount(), nil).Once()
	suite.mockTxnRepo.On("FindByAccountInRange", ctx, "acct-id-1", periodStart, periodEnd.AddDate(0, 0, 1)).
		Return(inPeriod, nil).Once()
	suite.mockTxnRepo.On("FindByAccountInRange", ctx, "acct-id-1", effectiveDate, periodStart).
		Return(prePeriod, nil).Once()
	suite.mockBalanceRepo.On("FindActiveByAccount", ctx, "acct-id-1").Return(suite.activeBalances(), nil).Once()
	suite.mockProducts.On("GetProductConfig", ctx, "FD_STANDARD").Return(suite.statementProduct(""), nil).Once()
	suite.mockCustomers.On("GetCustomer", ctx, "cust-1").Return(&domain.Customer{FirstName: "Asha"}, nil).Once()

	statement, err := suite.service.BuildStatement(ctx, "111122223333", periodStart, periodEnd)

	suite.Require().NoError(err)
	suite.True(statement.OpeningBalance.Equal(decimal.NewFromInt(100000)),
		"opening balance was %s", statement.OpeningBalance)
	suite.Len(statement.Lines, 2)
}

func (suite *StatementServiceTestSuite) TestBuildStatement_TemplateSubstitution() {
	ctx := context.Background()
	periodStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	template := "Hi {{customerFirstName}}, {{accountName}} (…{{accountNumberLast4}}) moved from " +
		"{{openingBalance}} to {{closingBalance}}. {{promoCode}}"

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "111122223333").Return(suite.statementAccount(), nil).Once()
	suite.mockTxnRepo.On("FindByAccountInRange", ctx, "acct-id-1", periodStart, periodEnd.AddDate(0, 0, 1)).
		Return(suite.periodLedger(), nil).Once()
	suite.mockBalanceRepo.On("FindActiveByAccount", ctx, "acct-id-1").Return(suite.activeBalances(), nil).Once()
	suite.mockProducts.On("GetProductConfig", ctx, "FD_STANDARD").Return(suite.statementProduct(template), nil).Once()
	suite.mockCustomers.On("GetCustomer", ctx, "cust-1").Return(&domain.Customer{FirstName: "Asha"}, nil).Once()

	statement, err := suite.service.BuildStatement(ctx, "111122223333", periodStart, periodEnd)

	suite.Require().NoError(err)
	suite.Equal("Hi Asha, Year FD (…3333) moved from 0.00 to 100300.00. {{promoCode}}", statement.Message)
}

func (suite *StatementServiceTestSuite) TestBuildStatement_PeriodEndBeforeStart() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "111122223333").Return(suite.statementAccount(), nil).Once()

	statement, err := suite.service.BuildStatement(ctx, "111122223333",
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))

	suite.Require().Error(err)
	suite.Nil(statement)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *StatementServiceTestSuite) TestBuildStatement_AccountNotFound() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "000000000000").Return(nil, apperrors.ErrNotFound).Once()

	statement, err := suite.service.BuildStatement(ctx, "000000000000",
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))

	suite.Require().Error(err)
	suite.Nil(statement)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StatementServiceTestSuite) TestRunBatch_OneFailureDoesNotAbortTheRest() {
	ctx := context.Background()
	periodStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	batchAccount := func(n int, customerID string) domain.Account {
		account := *suite.statementAccount()
		account.AccountID = "acct-id-" + customerID
		account.AccountNumber = "00000000000" + string(rune('0'+n))
		account.Holders = []domain.AccountHolder{
			{HolderID: "h-" + customerID, AccountID: account.AccountID, CustomerID: customerID, RoleType: domain.RoleOwner},
		}
		return account
	}
	accounts := []domain.Account{
		batchAccount(1, "cust-1"),
		batchAccount(2, "cust-2"),
		batchAccount(3, "cust-3"),
	}

	suite.mockAccountRepo.On("ListActiveAccounts", ctx).Return(accounts, nil).Once()
	suite.mockTxnRepo.On("FindByAccountInRange", ctx, mock.AnythingOfType("string"), periodStart, periodEnd.AddDate(0, 0, 1)).
		Return([]domain.Transaction{}, nil).Times(3)
	suite.mockBalanceRepo.On("FindActiveByAccount", ctx, mock.AnythingOfType("string")).
		Return([]domain.BalanceEntry{}, nil).Times(3)
	suite.mockProducts.On("GetProductConfig", ctx, "FD_STANDARD").Return(suite.statementProduct(""), nil).Times(3)

	suite.mockCustomers.On("GetCustomer", ctx, "cust-1").Return(&domain.Customer{FirstName: "Asha"}, nil).Once()
	suite.mockCustomers.On("GetCustomer", ctx, "cust-2").Return(nil, apperrors.ErrUpstreamUnavailable).Once()
	suite.mockCustomers.On("GetCustomer", ctx, "cust-3").Return(&domain.Customer{FirstName: "Ravi"}, nil).Once()

	// Only the two successful statements are handed off.
	suite.mockPublisher.On("PublishCommunicationRequested", ctx, mock.AnythingOfType("domain.CommunicationRequestedEvent")).
		Return(nil).Twice()

	result, err := suite.service.RunBatch(ctx, periodStart, periodEnd)

	suite.Require().NoError(err)
	suite.Equal(3, result.Processed)
	suite.Equal(2, result.Succeeded)
	suite.Equal(1, result.Failed)
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestRunBatch_PublishFailureStillCountsAsSuccess() {
	ctx := context.Background()
	periodStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("ListActiveAccounts", ctx).Return([]domain.Account{*suite.statementAccount()}, nil).Once()
	suite.mockTxnRepo.On("FindByAccountInRange", ctx, "acct-id-1", periodStart, periodEnd.AddDate(0, 0, 1)).
		Return([]domain.Transaction{}, nil).Once()
	suite.mockBalanceRepo.On("FindActiveByAccount", ctx, "acct-id-1").Return([]domain.BalanceEntry{}, nil).Once()
	suite.mockProducts.On("GetProductConfig", ctx, "FD_STANDARD").Return(suite.statementProduct(""), nil).Once()
	suite.mockCustomers.On("GetCustomer", ctx, "cust-1").Return(&domain.Customer{FirstName: "Asha"}, nil).Once()
	suite.mockPublisher.On("PublishCommunicationRequested", ctx, mock.Anything).Return(apperrors.ErrUpstreamUnavailable).Once()

	result, err := suite.service.RunBatch(ctx, periodStart, periodEnd)

	suite.Require().NoError(err)
	suite.Equal(1, result.Succeeded)
	suite.Equal(0, result.Failed)
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}
