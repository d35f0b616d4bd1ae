package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/termvault/fd_account_app/internal/core/domain"
	"github.com/termvault/fd_account_app/internal/core/ports"
)

const transactionColumns = `transaction_id, account_id, transaction_reference, transaction_type,
	amount, transaction_date, description, created_at, last_updated_at`

const insertTransactionQuery = `
	INSERT INTO transactions (transaction_id, account_id, transaction_reference, transaction_type, amount, transaction_date, description, created_at, last_updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

// PgxTransactionRepository reads the append-only ledger. Writes go through
// the account repository's transactional saves.
type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger reads.
func newPgxTransactionRepository(pool *pgxpool.Pool) ports.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ ports.TransactionRepository = (*PgxTransactionRepository)(nil)

// FindByAccountInRange lists postings with transaction_date in [from, to),
// newest first.
func (r *PgxTransactionRepository) FindByAccountInRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1 AND transaction_date >= $2 AND transaction_date < $3
		ORDER BY transaction_date DESC;
	`
	return r.queryTransactions(ctx, query, accountID, from, to)
}

// FindByAccount lists every posting for an account, newest first.
func (r *PgxTransactionRepository) FindByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
		ORDER BY transaction_date DESC;
	`
	return r.queryTransactions(ctx, query, accountID)
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("transaction rows error: %w", err)
	}
	return transactions, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.AccountID,
		&t.TransactionReference,
		&t.TransactionType,
		&t.Amount,
		&t.TransactionDate,
		&t.Description,
		&t.CreatedAt,
		&t.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
