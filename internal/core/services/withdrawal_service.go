package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/termvault/fd_account_app/internal/apperrors"
	"github.com/termvault/fd_account_app/internal/core/domain"
	"github.com/termvault/fd_account_app/internal/core/ports"
	portssvc "github.com/termvault/fd_account_app/internal/core/ports/services"
	"github.com/termvault/fd_account_app/internal/platform/clock"
	"github.com/termvault/fd_account_app/internal/utils/fdmath"
)

// defaultPenaltyRate applies when a product has no penalty tier covering the
// completion percentage: 1.00 percentage point off the nominal rate.
var defaultPenaltyRate = decimal.NewFromInt(1)

// withdrawalServiceImpl implements the WithdrawalSvcFacade interface.
type withdrawalServiceImpl struct {
	BaseService
	accountRepo     ports.AccountRepository
	productProvider ports.ProductProvider
	publisher       ports.EventPublisher
	clock           clock.Clock
}

// WithdrawalServiceOption is a functional option for configuring the
// withdrawal service.
type WithdrawalServiceOption func(*withdrawalServiceImpl)

// WithWithdrawalEventPublisher adds the event sink dependency.
func WithWithdrawalEventPublisher(publisher ports.EventPublisher) WithdrawalServiceOption {
	return func(s *withdrawalServiceImpl) {
		s.publisher = publisher
	}
}

// NewWithdrawalService creates a new premature withdrawal service.
func NewWithdrawalService(
	repo ports.AccountRepository,
	productProvider ports.ProductProvider,
	clk clock.Clock,
	options ...WithdrawalServiceOption,
) portssvc.WithdrawalSvcFacade {
	svc := &withdrawalServiceImpl{
		accountRepo:     repo,
		productProvider: productProvider,
		clock:           clk,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.WithdrawalSvcFacade = (*withdrawalServiceImpl)(nil)

func (s *withdrawalServiceImpl) Inquiry(ctx context.Context, accountNumber string) (*domain.WithdrawalInquiry, error) {
	account, err := s.loadActiveAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	return s.computeInquiry(ctx, account)
}

// computeInquiry is the deterministic quote: a pure function of the account,
// the product penalty table and the logical date.
func (s *withdrawalServiceImpl) computeInquiry(ctx context.Context, account *domain.Account) (*domain.WithdrawalInquiry, error) {
	today := s.clock.Today()
	totalTermDays := fdmath.DaysBetween(account.EffectiveDate, account.MaturityDate)
	daysActive := fdmath.DaysBetween(account.EffectiveDate, today)

	// On or before the effective date the quote needs no product lookup:
	// no interest, no penalty, principal back in full.
	if daysActive <= 0 {
		zero := decimal.Zero.Round(2)
		return &domain.WithdrawalInquiry{
			AccountNumber:      account.AccountNumber,
			PrincipalAmount:    account.PrincipalAmount,
			AccruedInterest:    zero,
			PenaltyAmount:      zero,
			FinalPayoutAmount:  account.PrincipalAmount,
			CompletionPercent:  decimal.Zero,
			AppliedPenaltyRate: decimal.Zero,
			InquiryDate:        today,
		}, nil
	}

	completion := fdmath.CompletionPercent(daysActive, totalTermDays)

	product, err := s.productProvider.GetProductConfig(ctx, account.ProductCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch product configuration for inquiry",
			slog.String("product_code", account.ProductCode))
		return nil, fmt.Errorf("product lookup for %s failed: %w", account.ProductCode, err)
	}

	penaltyRate := defaultPenaltyRate
	var calculationType domain.PenaltyCalculationType
	if charge := product.MatchPenaltyCharge(completion); charge != nil {
		penaltyRate = charge.PenaltyRate
		calculationType = charge.CalculationType
	}

	// Penalty-adjusted rate floors at zero.
	penalizedRate := account.InterestRate.Sub(penaltyRate)
	if penalizedRate.IsNegative() {
		penalizedRate = decimal.Zero
	}

	originalInterest := fdmath.AccruedInterest(account.PrincipalAmount, account.InterestRate, daysActive)
	penalizedInterest := fdmath.AccruedInterest(account.PrincipalAmount, penalizedRate, daysActive)

	var penaltyAmount decimal.Decimal
	if calculationType == domain.PenaltyPercentage {
		penaltyAmount = account.PrincipalAmount.Mul(penaltyRate).DivRound(decimal.NewFromInt(100), 2)
	} else {
		penaltyAmount = originalInterest.Sub(penalizedInterest)
	}

	finalPayout := account.PrincipalAmount.Add(penalizedInterest).Sub(penaltyAmount)

	return &domain.WithdrawalInquiry{
		AccountNumber:      account.AccountNumber,
		PrincipalAmount:    account.PrincipalAmount,
		AccruedInterest:    penalizedInterest,
		PenaltyAmount:      penaltyAmount,
		FinalPayoutAmount:  finalPayout,
		CompletionPercent:  completion,
		AppliedPenaltyRate: penaltyRate,
		InquiryDate:        today,
	}, nil
}

func (s *withdrawalServiceImpl) Execute(ctx context.Context, accountNumber string, reason string) (*domain.Account, error) {
	account, err := s.loadActiveAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	product, err := s.productProvider.GetProductConfig(ctx, account.ProductCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch product configuration for withdrawal",
			slog.String("product_code", account.ProductCode))
		return nil, fmt.Errorf("product lookup for %s failed: %w", account.ProductCode, err)
	}
	if !product.AllowsTransactionType(domain.TxnPrematureWithdrawal) {
		return nil, fmt.Errorf("%w: product %s does not permit premature withdrawal",
			apperrors.ErrPolicyViolation, account.ProductCode)
	}

	inquiry, err := s.computeInquiry(ctx, account)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	description := reason
	if description == "" {
		description = "Premature withdrawal"
	}

	// Outflows post negative.
	closing := []domain.Transaction{
		{
			TransactionID:        uuid.NewString(),
			AccountID:            account.AccountID,
			TransactionReference: uuid.NewString(),
			TransactionType:      domain.TxnPenaltyDebit,
			Amount:               inquiry.PenaltyAmount.Neg(),
			TransactionDate:      now,
			Description:          "Premature withdrawal penalty",
			AuditFields:          domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		},
		{
			TransactionID:        uuid.NewString(),
			AccountID:            account.AccountID,
			TransactionReference: uuid.NewString(),
			TransactionType:      domain.TxnPrematureWithdrawal,
			Amount:               inquiry.FinalPayoutAmount.Neg(),
			TransactionDate:      now,
			Description:          description,
			AuditFields:          domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		},
	}

	// Status transition and both postings commit atomically; the store's
	// ACTIVE guard ensures at most one concurrent execute succeeds.
	if err := s.accountRepo.CloseAccount(ctx, account.AccountID, domain.StatusPrematurelyClosed, now, closing); err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			s.LogWarn(ctx, "Concurrent withdrawal lost the close race",
				slog.String("account_number", accountNumber))
		} else {
			s.LogError(ctx, err, "Failed to close account",
				slog.String("account_number", accountNumber))
		}
		return nil, err
	}

	account.Status = domain.StatusPrematurelyClosed
	account.ClosedAt = &now
	account.LastUpdatedAt = now
	account.Transactions = append(account.Transactions, closing...)

	s.publishClosureEvents(ctx, account, product, inquiry, reason, now)

	s.LogInfo(ctx, "Account prematurely closed",
		slog.String("account_number", accountNumber),
		slog.String("penalty", inquiry.PenaltyAmount.String()),
		slog.String("final_payout", inquiry.FinalPayoutAmount.String()))
	return account, nil
}

func (s *withdrawalServiceImpl) loadActiveAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account",
				slog.String("account_number", accountNumber))
		}
		return nil, err
	}
	if account.Status != domain.StatusActive {
		return nil, fmt.Errorf("%w: account %s is %s",
			apperrors.ErrInvalidState, accountNumber, account.Status)
	}
	return account, nil
}

// publishClosureEvents is fire-and-forget: failures are logged and never
// block or roll back the closure.
func (s *withdrawalServiceImpl) publishClosureEvents(
	ctx context.Context,
	account *domain.Account,
	product *domain.ProductConfig,
	inquiry *domain.WithdrawalInquiry,
	reason string,
	closedAt time.Time,
) {
	if s.publisher == nil {
		return
	}
	closed := domain.AccountClosedEvent{
		EventType:         "account.closed",
		AccountNumber:     account.AccountNumber,
		Reason:            reason,
		PenaltyAmount:     inquiry.PenaltyAmount,
		FinalPayoutAmount: inquiry.FinalPayoutAmount,
		CustomerIDs:       account.HolderCustomerIDs(),
		ClosedAt:          closedAt,
	}
	if err := s.publisher.PublishAccountClosed(ctx, closed); err != nil {
		s.LogWarn(ctx, "Failed to publish account closed event",
			slog.String("account_number", account.AccountNumber),
			slog.String("error", err.Error()))
	}

	tpl, ok := product.CommunicationTemplates[domain.CommPrematureClosure]
	if !ok || tpl == "" {
		return
	}
	for _, customerID := range account.HolderCustomerIDs() {
		comm := domain.CommunicationRequestedEvent{
			EventType:     "communication.requested",
			AccountNumber: account.AccountNumber,
			CustomerID:    customerID,
			EventName:     domain.CommPrematureClosure,
			Body:          tpl,
			OccurredAt:    closedAt,
		}
		if err := s.publisher.PublishCommunicationRequested(ctx, comm); err != nil {
			s.LogWarn(ctx, "Failed to publish closure communication",
				slog.String("account_number", account.AccountNumber),
				slog.String("customer_id", customerID),
				slog.String("error", err.Error()))
		}
	}
}
