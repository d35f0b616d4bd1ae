package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/termvault/fd_account_app/internal/apperrors"
	"github.com/termvault/fd_account_app/internal/core/domain"
	"github.com/termvault/fd_account_app/internal/core/ports"
)

const pgUniqueViolation = "23505"

const accountColumns = `account_id, account_number, name, product_code, status, term_in_months,
	interest_rate, principal_amount, maturity_amount, effective_date, maturity_date,
	maturity_instruction, payout_account_number, apy, effective_rate, payout_frequency,
	payout_amount, category_tags, tenure_value, tenure_unit, currency_code, interest_type,
	compounding_frequency, closed_at, created_at, last_updated_at`

const accountColumnsPrefixed = `a.account_id, a.account_number, a.name, a.product_code, a.status, a.term_in_months,
	a.interest_rate, a.principal_amount, a.maturity_amount, a.effective_date, a.maturity_date,
	a.maturity_instruction, a.payout_account_number, a.apy, a.effective_rate, a.payout_frequency,
	a.payout_amount, a.category_tags, a.tenure_value, a.tenure_unit, a.currency_code, a.interest_type,
	a.compounding_frequency, a.closed_at, a.created_at, a.last_updated_at`

// PgxAccountRepository persists the account aggregate.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) ports.AccountRepository {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ ports.AccountRepository = (*PgxAccountRepository)(nil)

// SaveNewAccount inserts the account, its holders and its initial
// transactions within one DB transaction.
func (r *PgxAccountRepository) SaveNewAccount(ctx context.Context, account domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	accountQuery := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26);
	`
	_, err = tx.Exec(ctx, accountQuery,
		account.AccountID,
		account.AccountNumber,
		account.Name,
		account.ProductCode,
		account.Status,
		account.TermInMonths,
		account.InterestRate,
		account.PrincipalAmount,
		account.MaturityAmount,
		account.EffectiveDate,
		account.MaturityDate,
		account.MaturityInstruction,
		account.PayoutAccountNumber,
		account.APY,
		account.EffectiveRate,
		account.PayoutFrequency,
		account.PayoutAmount,
		account.CategoryTags,
		account.TenureValue,
		account.TenureUnit,
		account.CurrencyCode,
		account.InterestType,
		account.CompoundingFrequency,
		account.ClosedAt,
		account.CreatedAt,
		account.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account number %s already taken", apperrors.ErrDuplicate, account.AccountNumber)
		}
		return fmt.Errorf("failed to insert account %s: %w", account.AccountNumber, err)
	}

	batch := &pgx.Batch{}
	holderQuery := `
		INSERT INTO account_holders (holder_id, account_id, customer_id, role_type, ownership_percent, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, h := range account.Holders {
		batch.Queue(holderQuery, h.HolderID, h.AccountID, h.CustomerID, h.RoleType, h.OwnershipPercent, h.CreatedAt, h.LastUpdatedAt)
	}
	for _, t := range account.Transactions {
		batch.Queue(insertTransactionQuery, t.TransactionID, t.AccountID, t.TransactionReference, t.TransactionType, t.Amount, t.TransactionDate, t.Description, t.CreatedAt, t.LastUpdatedAt)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert children for account %s: %w", account.AccountNumber, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit account %s: %w", account.AccountNumber, err)
	}
	return nil
}

// FindAccountByNumber loads the aggregate: account row plus holders and
// transactions (newest first).
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`
	row := r.Pool.QueryRow(ctx, query, accountNumber)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountNumber, err)
	}
	if err := r.loadChildren(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// FindAccountsByCustomerID lists aggregates joined through holders.
func (r *PgxAccountRepository) FindAccountsByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumnsPrefixed + `
		FROM accounts a
		JOIN account_holders h ON h.account_id = a.account_id
		WHERE h.customer_id = $1
		GROUP BY a.account_id
		ORDER BY a.created_at DESC;
	`
	return r.queryAccounts(ctx, query, customerID)
}

// FindAccountsByNameContains lists aggregates whose name contains the
// fragment, case-insensitively.
func (r *PgxAccountRepository) FindAccountsByNameContains(ctx context.Context, fragment string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE name ILIKE '%' || $1 || '%' ORDER BY created_at DESC;`
	return r.queryAccounts(ctx, query, fragment)
}

// ListActiveAccounts lists every aggregate in ACTIVE status.
func (r *PgxAccountRepository) ListActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE status = $1 ORDER BY created_at;`
	return r.queryAccounts(ctx, query, domain.StatusActive)
}

// AccountNumberExists reports whether an account number is already taken.
func (r *PgxAccountRepository) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1);`, accountNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account number %s: %w", accountNumber, err)
	}
	return exists, nil
}

// AddHolder appends a holder row; the (account, customer, role) unique
// constraint maps to ErrDuplicate.
func (r *PgxAccountRepository) AddHolder(ctx context.Context, holder domain.AccountHolder) error {
	query := `
		INSERT INTO account_holders (holder_id, account_id, customer_id, role_type, ownership_percent, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		holder.HolderID, holder.AccountID, holder.CustomerID, holder.RoleType,
		holder.OwnershipPercent, holder.CreatedAt, holder.LastUpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: customer %s already holds role %s", apperrors.ErrDuplicate, holder.CustomerID, holder.RoleType)
		}
		return fmt.Errorf("failed to insert account holder: %w", err)
	}
	return nil
}

// CloseAccount transitions an ACTIVE account to a terminal status and appends
// the closing transactions atomically. The UPDATE is guarded on the current
// status; zero rows affected means a concurrent close won and the caller gets
// ErrInvalidState with nothing written.
func (r *PgxAccountRepository) CloseAccount(ctx context.Context, accountID string, status domain.AccountStatus, closedAt time.Time, transactions []domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE accounts
		SET status = $2, closed_at = $3, last_updated_at = $3
		WHERE account_id = $1 AND status = $4;
	`, accountID, status, closedAt, domain.StatusActive)
	if err != nil {
		return fmt.Errorf("failed to update account %s status: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s is no longer ACTIVE", apperrors.ErrInvalidState, accountID)
	}

	batch := &pgx.Batch{}
	for _, t := range transactions {
		batch.Queue(insertTransactionQuery, t.TransactionID, t.AccountID, t.TransactionReference, t.TransactionType, t.Amount, t.TransactionDate, t.Description, t.CreatedAt, t.LastUpdatedAt)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert closing transactions for account %s: %w", accountID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit close of account %s: %w", accountID, err)
	}
	return nil
}

func (r *PgxAccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("account rows error: %w", err)
	}

	for i := range accounts {
		if err := r.loadChildren(ctx, &accounts[i]); err != nil {
			return nil, err
		}
	}
	return accounts, nil
}

func (r *PgxAccountRepository) loadChildren(ctx context.Context, account *domain.Account) error {
	holderRows, err := r.Pool.Query(ctx, `
		SELECT holder_id, account_id, customer_id, role_type, ownership_percent, created_at, last_updated_at
		FROM account_holders WHERE account_id = $1 ORDER BY created_at;
	`, account.AccountID)
	if err != nil {
		return fmt.Errorf("failed to query holders for account %s: %w", account.AccountID, err)
	}
	defer holderRows.Close()
	account.Holders = nil
	for holderRows.Next() {
		var h domain.AccountHolder
		if err := holderRows.Scan(&h.HolderID, &h.AccountID, &h.CustomerID, &h.RoleType, &h.OwnershipPercent, &h.CreatedAt, &h.LastUpdatedAt); err != nil {
			return fmt.Errorf("failed to scan holder row: %w", err)
		}
		account.Holders = append(account.Holders, h)
	}
	if err := holderRows.Err(); err != nil {
		return fmt.Errorf("holder rows error: %w", err)
	}

	txnRows, err := r.Pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions WHERE account_id = $1 ORDER BY transaction_date DESC;
	`, account.AccountID)
	if err != nil {
		return fmt.Errorf("failed to query transactions for account %s: %w", account.AccountID, err)
	}
	defer txnRows.Close()
	account.Transactions = nil
	for txnRows.Next() {
		txn, err := scanTransaction(txnRows)
		if err != nil {
			return fmt.Errorf("failed to scan transaction row: %w", err)
		}
		account.Transactions = append(account.Transactions, *txn)
	}
	return txnRows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID,
		&a.AccountNumber,
		&a.Name,
		&a.ProductCode,
		&a.Status,
		&a.TermInMonths,
		&a.InterestRate,
		&a.PrincipalAmount,
		&a.MaturityAmount,
		&a.EffectiveDate,
		&a.MaturityDate,
		&a.MaturityInstruction,
		&a.PayoutAccountNumber,
		&a.APY,
		&a.EffectiveRate,
		&a.PayoutFrequency,
		&a.PayoutAmount,
		&a.CategoryTags,
		&a.TenureValue,
		&a.TenureUnit,
		&a.CurrencyCode,
		&a.InterestType,
		&a.CompoundingFrequency,
		&a.ClosedAt,
		&a.CreatedAt,
		&a.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

