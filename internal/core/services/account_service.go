package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/termvault/fd_account_app/internal/apperrors"
	"github.com/termvault/fd_account_app/internal/core/domain"
	"github.com/termvault/fd_account_app/internal/core/ports"
	portssvc "github.com/termvault/fd_account_app/internal/core/ports/services"
	"github.com/termvault/fd_account_app/internal/dto"
	"github.com/termvault/fd_account_app/internal/platform/clock"
	"github.com/termvault/fd_account_app/internal/utils"
	"github.com/termvault/fd_account_app/internal/utils/fdmath"
)

const (
	accountNumberLength      = 12
	accountNumberMaxAttempts = 5
	fullOwnershipPercent     = 100
)

// accountServiceImpl implements the AccountSvcFacade interface.
type accountServiceImpl struct {
	BaseService
	accountRepo     ports.AccountRepository
	balanceRepo     ports.BalanceRepository
	calcProvider    ports.CalculationProvider
	productProvider ports.ProductProvider
	publisher       ports.EventPublisher
	clock           clock.Clock
}

// AccountServiceOption is a functional option for configuring the account service.
type AccountServiceOption func(*accountServiceImpl)

// WithAccountEventPublisher adds the event sink dependency.
func WithAccountEventPublisher(publisher ports.EventPublisher) AccountServiceOption {
	return func(s *accountServiceImpl) {
		s.publisher = publisher
	}
}

// NewAccountService creates a new account lifecycle service.
func NewAccountService(
	repo ports.AccountRepository,
	balanceRepo ports.BalanceRepository,
	calcProvider ports.CalculationProvider,
	productProvider ports.ProductProvider,
	clk clock.Clock,
	options ...AccountServiceOption,
) portssvc.AccountSvcFacade {
	svc := &accountServiceImpl{
		accountRepo:     repo,
		balanceRepo:     balanceRepo,
		calcProvider:    calcProvider,
		productProvider: productProvider,
		clock:           clk,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountServiceImpl)(nil)

func (s *accountServiceImpl) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	calc, err := s.calcProvider.GetCalculationResult(ctx, req.CalculationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch calculation result",
			slog.String("calculation_id", req.CalculationID))
		return nil, fmt.Errorf("calculation lookup for %s failed: %w", req.CalculationID, err)
	}

	product, err := s.productProvider.GetProductConfig(ctx, calc.ProductCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch product configuration",
			slog.String("product_code", calc.ProductCode))
		return nil, fmt.Errorf("product lookup for %s failed: %w", calc.ProductCode, err)
	}

	effectiveDate := s.clock.Today()
	if calc.MaturityDate.Before(effectiveDate) {
		return nil, fmt.Errorf("%w: maturity date %s precedes effective date %s",
			apperrors.ErrValidation, calc.MaturityDate.Format("2006-01-02"), effectiveDate.Format("2006-01-02"))
	}

	termInMonths := fdmath.WholeMonthsBetween(effectiveDate, calc.MaturityDate)

	principal := calc.PrincipalAmount
	if principal.IsZero() {
		principal = fdmath.PrincipalFromMaturity(calc.MaturityValue, calc.EffectiveRate, termInMonths)
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: derived principal %s is not positive", apperrors.ErrValidation, principal)
	}

	accountNumber, err := s.generateAccountNumber(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate account number")
		return nil, err
	}

	now := s.clock.Now()
	accountID := uuid.NewString()
	ownership := decimal.NewFromInt(fullOwnershipPercent)

	account := domain.Account{
		AccountID:            accountID,
		AccountNumber:        accountNumber,
		Name:                 req.AccountName,
		ProductCode:          calc.ProductCode,
		Status:               domain.StatusActive,
		TermInMonths:         termInMonths,
		InterestRate:         calc.EffectiveRate,
		PrincipalAmount:      principal,
		MaturityAmount:       calc.MaturityValue,
		EffectiveDate:        effectiveDate,
		MaturityDate:         calc.MaturityDate,
		APY:                  calc.APY,
		EffectiveRate:        calc.EffectiveRate,
		PayoutFrequency:      calc.PayoutFrequency,
		PayoutAmount:         calc.PayoutAmount,
		CategoryTags:         calc.CategoryTags,
		TenureValue:          calc.TenureValue,
		TenureUnit:           calc.TenureUnit,
		CurrencyCode:         calc.CurrencyCode,
		InterestType:         calc.InterestType,
		CompoundingFrequency: calc.CompoundingFrequency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
		Holders: []domain.AccountHolder{
			{
				HolderID:         uuid.NewString(),
				AccountID:        accountID,
				CustomerID:       req.OwnerCustomerID,
				RoleType:         domain.RoleOwner,
				OwnershipPercent: &ownership,
				AuditFields:      domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			},
		},
		Transactions: []domain.Transaction{
			{
				TransactionID:        uuid.NewString(),
				AccountID:            accountID,
				TransactionReference: uuid.NewString(),
				TransactionType:      domain.TxnPrincipalDeposit,
				Amount:               principal,
				TransactionDate:      now,
				Description:          "Initial fixed deposit principal",
				AuditFields:          domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			},
		},
	}

	// Account, owner holder and the initial deposit commit in one unit.
	if err := s.accountRepo.SaveNewAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account aggregate",
			slog.String("account_number", accountNumber))
		return nil, err
	}

	if err := s.seedBalances(ctx, &account, product); err != nil {
		s.LogError(ctx, err, "Failed to seed balance entries",
			slog.String("account_number", accountNumber))
		return nil, err
	}

	s.publishCreationEvents(ctx, &account, product)

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_number", accountNumber),
		slog.String("product_code", account.ProductCode),
		slog.String("principal", principal.String()))
	return &account, nil
}

// seedBalances creates one entry per active configured balance type. The
// principal bucket seeds to the principal amount, everything else to zero.
func (s *accountServiceImpl) seedBalances(ctx context.Context, account *domain.Account, product *domain.ProductConfig) error {
	now := s.clock.Now()
	entries := make([]domain.BalanceEntry, 0, len(product.BalanceTypes))
	for _, bt := range product.BalanceTypes {
		if !bt.IsActive {
			continue
		}
		entries = append(entries, domain.BalanceEntry{
			BalanceID:     uuid.NewString(),
			AccountID:     account.AccountID,
			BalanceType:   bt.BalanceType,
			BalanceAmount: domain.SeedAmountFor(bt.BalanceType, account.PrincipalAmount),
			IsActive:      true,
			AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		})
	}
	if len(entries) == 0 {
		return nil
	}
	return s.balanceRepo.SaveBalances(ctx, entries)
}

// publishCreationEvents is fire-and-forget: failures are logged and never
// roll back account creation.
func (s *accountServiceImpl) publishCreationEvents(ctx context.Context, account *domain.Account, product *domain.ProductConfig) {
	if s.publisher == nil {
		return
	}
	now := s.clock.Now()
	created := domain.AccountCreatedEvent{
		EventType:       "account.created",
		AccountNumber:   account.AccountNumber,
		AccountName:     account.Name,
		ProductCode:     account.ProductCode,
		OwnerCustomerID: account.OwnerCustomerID(),
		PrincipalAmount: account.PrincipalAmount,
		CurrencyCode:    account.CurrencyCode,
		EffectiveDate:   account.EffectiveDate,
		MaturityDate:    account.MaturityDate,
		OccurredAt:      now,
	}
	if err := s.publisher.PublishAccountCreated(ctx, created); err != nil {
		s.LogWarn(ctx, "Failed to publish account created event",
			slog.String("account_number", account.AccountNumber),
			slog.String("error", err.Error()))
	}

	if tpl, ok := product.CommunicationTemplates[domain.CommAccountOpened]; ok && tpl != "" {
		comm := domain.CommunicationRequestedEvent{
			EventType:     "communication.requested",
			AccountNumber: account.AccountNumber,
			CustomerID:    account.OwnerCustomerID(),
			EventName:     domain.CommAccountOpened,
			Body:          tpl,
			OccurredAt:    now,
		}
		if err := s.publisher.PublishCommunicationRequested(ctx, comm); err != nil {
			s.LogWarn(ctx, "Failed to publish opening communication",
				slog.String("account_number", account.AccountNumber),
				slog.String("error", err.Error()))
		}
	}
}

// generateAccountNumber produces a fixed-width numeric account number and
// collision-checks it against the account store with bounded retries.
func (s *accountServiceImpl) generateAccountNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < accountNumberMaxAttempts; attempt++ {
		candidate, err := utils.GenerateNumericCode(accountNumberLength)
		if err != nil {
			return "", fmt.Errorf("account number generation failed: %w", err)
		}
		exists, err := s.accountRepo.AccountNumberExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("account number collision check failed: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not find a free account number in %d attempts", accountNumberMaxAttempts)
}

func (s *accountServiceImpl) AddRoleToAccount(ctx context.Context, accountNumber string, req dto.AddRoleRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load account for role addition",
				slog.String("account_number", accountNumber))
		}
		return nil, err
	}

	if req.OwnershipPercent != nil {
		pct := *req.OwnershipPercent
		if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(fullOwnershipPercent)) {
			return nil, fmt.Errorf("%w: ownership percentage %s outside [0,100]", apperrors.ErrValidation, pct)
		}
	}

	product, err := s.productProvider.GetProductConfig(ctx, account.ProductCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch product configuration",
			slog.String("product_code", account.ProductCode))
		return nil, fmt.Errorf("product lookup for %s failed: %w", account.ProductCode, err)
	}

	if !product.AllowsRole(req.RoleType) {
		return nil, fmt.Errorf("%w: role %s not allowed for product %s",
			apperrors.ErrPolicyViolation, req.RoleType, account.ProductCode)
	}

	if account.HasHolder(req.CustomerID, req.RoleType) {
		return nil, fmt.Errorf("%w: customer %s already holds role %s on account %s",
			apperrors.ErrDuplicate, req.CustomerID, req.RoleType, accountNumber)
	}

	now := s.clock.Now()
	holder := domain.AccountHolder{
		HolderID:         uuid.NewString(),
		AccountID:        account.AccountID,
		CustomerID:       req.CustomerID,
		RoleType:         req.RoleType,
		OwnershipPercent: req.OwnershipPercent,
		AuditFields:      domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.accountRepo.AddHolder(ctx, holder); err != nil {
		s.LogError(ctx, err, "Failed to persist account holder",
			slog.String("account_number", accountNumber),
			slog.String("customer_id", req.CustomerID),
			slog.String("role_type", string(req.RoleType)))
		return nil, err
	}

	account.Holders = append(account.Holders, holder)

	s.LogInfo(ctx, "Role added to account",
		slog.String("account_number", accountNumber),
		slog.String("customer_id", req.CustomerID),
		slog.String("role_type", string(req.RoleType)))
	return account, nil
}

func (s *accountServiceImpl) FindAccounts(ctx context.Context, kind dto.AccountSearchKind, value string) ([]domain.Account, error) {
	switch kind {
	case dto.SearchByAccountNumber:
		account, err := s.accountRepo.FindAccountByNumber(ctx, value)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return []domain.Account{}, nil
			}
			return nil, err
		}
		return []domain.Account{*account}, nil
	case dto.SearchByCustomerID:
		accounts, err := s.accountRepo.FindAccountsByCustomerID(ctx, value)
		if err != nil {
			return nil, err
		}
		if accounts == nil {
			return []domain.Account{}, nil
		}
		return accounts, nil
	case dto.SearchByAccountName:
		accounts, err := s.accountRepo.FindAccountsByNameContains(ctx, value)
		if err != nil {
			return nil, err
		}
		if accounts == nil {
			return []domain.Account{}, nil
		}
		return accounts, nil
	default:
		return nil, fmt.Errorf("%w: unsupported search kind %q", apperrors.ErrValidation, kind)
	}
}
