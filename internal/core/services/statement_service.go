package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/termvault/fd_account_app/internal/apperrors"
	"github.com/termvault/fd_account_app/internal/core/domain"
	"github.com/termvault/fd_account_app/internal/core/ports"
	portssvc "github.com/termvault/fd_account_app/internal/core/ports/services"
	"github.com/termvault/fd_account_app/internal/dto"
	"github.com/termvault/fd_account_app/internal/platform/clock"
)

// defaultStatementTemplate renders when a product has no STATEMENT template
// configured. Placeholders are substituted literally; anything unresolved is
// left verbatim as a data-quality signal.
const defaultStatementTemplate = "Dear {{customerFirstName}}, here is the statement for {{accountName}} " +
	"(…{{accountNumberLast4}}). Opening balance: {{openingBalance}}. Closing balance: {{closingBalance}}."

// statementServiceImpl implements the StatementSvcFacade interface.
type statementServiceImpl struct {
	BaseService
	accountRepo      ports.AccountRepository
	transactionRepo  ports.TransactionRepository
	balanceRepo      ports.BalanceRepository
	productProvider  ports.ProductProvider
	customerProvider ports.CustomerProvider
	publisher        ports.EventPublisher
	clock            clock.Clock
}

// StatementServiceOption is a functional option for configuring the
// statement service.
type StatementServiceOption func(*statementServiceImpl)

// WithStatementEventPublisher adds the event sink dependency; rendered
// statements are handed off as communication requests.
func WithStatementEventPublisher(publisher ports.EventPublisher) StatementServiceOption {
	return func(s *statementServiceImpl) {
		s.publisher = publisher
	}
}

// NewStatementService creates a new statement aggregation service.
func NewStatementService(
	accountRepo ports.AccountRepository,
	transactionRepo ports.TransactionRepository,
	balanceRepo ports.BalanceRepository,
	productProvider ports.ProductProvider,
	customerProvider ports.CustomerProvider,
	clk clock.Clock,
	options ...StatementServiceOption,
) portssvc.StatementSvcFacade {
	svc := &statementServiceImpl{
		accountRepo:      accountRepo,
		transactionRepo:  transactionRepo,
		balanceRepo:      balanceRepo,
		productProvider:  productProvider,
		customerProvider: customerProvider,
		clock:            clk,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.StatementSvcFacade = (*statementServiceImpl)(nil)

func (s *statementServiceImpl) BuildStatement(ctx context.Context, accountNumber string, periodStart, periodEnd time.Time) (*domain.StatementData, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account for statement",
				slog.String("account_number", accountNumber))
		}
		return nil, err
	}
	return s.buildForAccount(ctx, account, periodStart, periodEnd)
}

func (s *statementServiceImpl) buildForAccount(ctx context.Context, account *domain.Account, periodStart, periodEnd time.Time) (*domain.StatementData, error) {
	if periodEnd.Before(periodStart) {
		return nil, fmt.Errorf("%w: statement period end %s precedes start %s",
			apperrors.ErrValidation, periodEnd.Format("2006-01-02"), periodStart.Format("2006-01-02"))
	}

	// periodEnd is inclusive at day precision.
	rangeEnd := periodEnd.AddDate(0, 0, 1)
	transactions, err := s.transactionRepo.FindByAccountInRange(ctx, account.AccountID, periodStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load period transactions for %s: %w", account.AccountNumber, err)
	}

	opening, err := s.openingBalance(ctx, account, periodStart)
	if err != nil {
		return nil, err
	}

	balances, err := s.activeBalances(ctx, account.AccountID)
	if err != nil {
		return nil, err
	}
	closing := balances[domain.BalancePrincipal].
		Add(balances[domain.BalanceInterest]).
		Sub(balances[domain.BalancePenalty])

	lines := buildStatementLines(transactions)

	message, err := s.renderMessage(ctx, account, opening, closing)
	if err != nil {
		return nil, err
	}

	return &domain.StatementData{
		AccountNumber:  account.AccountNumber,
		AccountName:    account.Name,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		OpeningBalance: opening,
		ClosingBalance: closing,
		Balances:       balances,
		Lines:          lines,
		Message:        message,
		GeneratedAt:    s.clock.Now(),
	}, nil
}

// openingBalance sums all signed posting amounts dated in
// [effectiveDate, periodStart). A period starting at the effective date has a
// zero-length pre-period window and opens at zero.
func (s *statementServiceImpl) openingBalance(ctx context.Context, account *domain.Account, periodStart time.Time) (decimal.Decimal, error) {
	if !periodStart.After(account.EffectiveDate) {
		return decimal.Zero, nil
	}
	preTxns, err := s.transactionRepo.FindByAccountInRange(ctx, account.AccountID, account.EffectiveDate, periodStart)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load pre-period transactions for %s: %w", account.AccountNumber, err)
	}
	opening := decimal.Zero
	for _, txn := range preTxns {
		opening = opening.Add(txn.Amount)
	}
	return opening, nil
}

func (s *statementServiceImpl) activeBalances(ctx context.Context, accountID string) (map[string]decimal.Decimal, error) {
	entries, err := s.balanceRepo.FindActiveByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance entries: %w", err)
	}
	balances := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		balances[e.BalanceType] = e.BalanceAmount
	}
	return balances, nil
}

// buildStatementLines turns the newest-first ledger slice into display lines.
// The running balance starts at zero for the period and accumulates
// oldest-first (credit added, then debit subtracted), so the slice is walked
// from its tail; the returned lines stay newest-first.
func buildStatementLines(newestFirst []domain.Transaction) []domain.StatementLine {
	lines := make([]domain.StatementLine, len(newestFirst))
	running := decimal.Zero
	for i := len(newestFirst) - 1; i >= 0; i-- {
		txn := newestFirst[i]

		debit := decimal.Zero
		credit := decimal.Zero
		if txn.Amount.IsNegative() {
			debit = txn.Amount.Abs()
		} else if txn.Amount.IsPositive() {
			credit = txn.Amount
		}
		running = running.Add(credit).Sub(debit)

		description := txn.Description
		if description == "" {
			description = txn.TransactionType.DisplayName()
		}

		lines[i] = domain.StatementLine{
			Date:           dayPrecision(txn.TransactionDate),
			Description:    description,
			Debit:          debit,
			Credit:         credit,
			RunningBalance: running,
		}
	}
	return lines
}

func dayPrecision(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// renderMessage substitutes the placeholder tokens literally. Tokens the
// template carries but this list does not cover stay verbatim.
func (s *statementServiceImpl) renderMessage(ctx context.Context, account *domain.Account, opening, closing decimal.Decimal) (string, error) {
	product, err := s.productProvider.GetProductConfig(ctx, account.ProductCode)
	if err != nil {
		return "", fmt.Errorf("product lookup for %s failed: %w", account.ProductCode, err)
	}
	template := product.Template(domain.CommStatement, defaultStatementTemplate)

	customer, err := s.customerProvider.GetCustomer(ctx, account.OwnerCustomerID())
	if err != nil {
		return "", fmt.Errorf("customer lookup for %s failed: %w", account.OwnerCustomerID(), err)
	}

	last4 := account.AccountNumber
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}

	replacer := strings.NewReplacer(
		"{{customerFirstName}}", customer.FirstName,
		"{{accountName}}", account.Name,
		"{{accountNumberLast4}}", last4,
		"{{openingBalance}}", opening.StringFixed(2),
		"{{closingBalance}}", closing.StringFixed(2),
	)
	return replacer.Replace(template), nil
}

func (s *statementServiceImpl) RunBatch(ctx context.Context, periodStart, periodEnd time.Time) (*dto.StatementBatchResult, error) {
	accounts, err := s.accountRepo.ListActiveAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active accounts for statement run")
		return nil, err
	}

	result := &dto.StatementBatchResult{Processed: len(accounts)}
	for i := range accounts {
		account := &accounts[i]
		statement, err := s.buildForAccount(ctx, account, periodStart, periodEnd)
		if err != nil {
			// One account's failure must not abort the rest of the batch.
			result.Failed++
			s.LogError(ctx, err, "Statement generation failed for account",
				slog.String("account_number", account.AccountNumber))
			continue
		}
		result.Succeeded++
		s.handOffStatement(ctx, account, statement)
	}

	s.LogInfo(ctx, "Statement batch completed",
		slog.Int("processed", result.Processed),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed))
	return result, nil
}

// handOffStatement publishes the rendered statement as a communication
// request. Fire-and-forget: a publish failure does not fail the account.
func (s *statementServiceImpl) handOffStatement(ctx context.Context, account *domain.Account, statement *domain.StatementData) {
	if s.publisher == nil {
		return
	}
	event := domain.CommunicationRequestedEvent{
		EventType:     "communication.requested",
		AccountNumber: account.AccountNumber,
		CustomerID:    account.OwnerCustomerID(),
		EventName:     domain.CommStatement,
		Body:          statement.Message,
		OccurredAt:    s.clock.Now(),
	}
	if err := s.publisher.PublishCommunicationRequested(ctx, event); err != nil {
		s.LogWarn(ctx, "Failed to publish statement communication",
			slog.String("account_number", account.AccountNumber),
			slog.String("error", err.Error()))
	}
}
