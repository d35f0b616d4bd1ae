package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/termvault/fd_account_app/internal/core/domain"
	"github.com/termvault/fd_account_app/internal/core/ports"
)

// PgxBalanceRepository persists balance buckets.
type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a new repository for balance entries.
func newPgxBalanceRepository(pool *pgxpool.Pool) ports.BalanceRepository {
	return &PgxBalanceRepository{BaseRepository{Pool: pool}}
}

var _ ports.BalanceRepository = (*PgxBalanceRepository)(nil)

// SaveBalances inserts the entries in one DB transaction.
func (r *PgxBalanceRepository) SaveBalances(ctx context.Context, entries []domain.BalanceEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO balances (balance_id, account_id, balance_type, balance_amount, is_active, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, e := range entries {
		batch.Queue(query, e.BalanceID, e.AccountID, e.BalanceType, e.BalanceAmount, e.IsActive, e.CreatedAt, e.LastUpdatedAt)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert balance entries: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit balance entries: %w", err)
	}
	return nil
}

// FindActiveByAccount lists the active balance entries for an account.
func (r *PgxBalanceRepository) FindActiveByAccount(ctx context.Context, accountID string) ([]domain.BalanceEntry, error) {
	query := `
		SELECT balance_id, account_id, balance_type, balance_amount, is_active, created_at, last_updated_at
		FROM balances
		WHERE account_id = $1 AND is_active = TRUE
		ORDER BY balance_type;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances for account %s: %w", accountID, err)
	}
	defer rows.Close()

	entries := []domain.BalanceEntry{}
	for rows.Next() {
		var e domain.BalanceEntry
		if err := rows.Scan(&e.BalanceID, &e.AccountID, &e.BalanceType, &e.BalanceAmount, &e.IsActive, &e.CreatedAt, &e.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("balance rows error: %w", err)
	}
	return entries, nil
}
