package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/termvault/fd_account_app/internal/apperrors"
	"github.com/termvault/fd_account_app/internal/core/domain"
	"github.com/termvault/fd_account_app/internal/core/ports"
)

// PgxProductRepository is the DB-backed ProductProvider: product rows plus
// their balance types, penalty tiers and communication templates.
type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product configuration.
func newPgxProductRepository(pool *pgxpool.Pool) ports.ProductProvider {
	return &PgxProductRepository{BaseRepository{Pool: pool}}
}

var _ ports.ProductProvider = (*PgxProductRepository)(nil)

// GetProductConfig assembles the full product configuration for a code.
func (r *PgxProductRepository) GetProductConfig(ctx context.Context, productCode string) (*domain.ProductConfig, error) {
	var (
		roles    []string
		txnTypes []string
	)
	err := r.Pool.QueryRow(ctx, `
		SELECT allowed_roles, allowed_transaction_types
		FROM products WHERE product_code = $1;
	`, productCode).Scan(&roles, &txnTypes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productCode)
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productCode, err)
	}

	config := &domain.ProductConfig{
		ProductCode:            productCode,
		CommunicationTemplates: map[string]string{},
	}
	for _, role := range roles {
		config.AllowedRoles = append(config.AllowedRoles, domain.RoleType(role))
	}
	for _, t := range txnTypes {
		config.AllowedTransactionTypes = append(config.AllowedTransactionTypes, domain.TransactionType(t))
	}

	if err := r.loadBalanceTypes(ctx, config); err != nil {
		return nil, err
	}
	if err := r.loadPenaltyCharges(ctx, config); err != nil {
		return nil, err
	}
	if err := r.loadTemplates(ctx, config); err != nil {
		return nil, err
	}
	return config, nil
}

func (r *PgxProductRepository) loadBalanceTypes(ctx context.Context, config *domain.ProductConfig) error {
	rows, err := r.Pool.Query(ctx, `
		SELECT balance_type, is_active
		FROM product_balance_types WHERE product_code = $1 ORDER BY balance_type;
	`, config.ProductCode)
	if err != nil {
		return fmt.Errorf("failed to query balance types for product %s: %w", config.ProductCode, err)
	}
	defer rows.Close()
	for rows.Next() {
		var bt domain.BalanceTypeConfig
		if err := rows.Scan(&bt.BalanceType, &bt.IsActive); err != nil {
			return fmt.Errorf("failed to scan balance type row: %w", err)
		}
		config.BalanceTypes = append(config.BalanceTypes, bt)
	}
	return rows.Err()
}

func (r *PgxProductRepository) loadPenaltyCharges(ctx context.Context, config *domain.ProductConfig) error {
	rows, err := r.Pool.Query(ctx, `
		SELECT from_completion_percent, to_completion_percent, penalty_rate, calculation_type
		FROM product_penalty_charges WHERE product_code = $1 ORDER BY from_completion_percent;
	`, config.ProductCode)
	if err != nil {
		return fmt.Errorf("failed to query penalty charges for product %s: %w", config.ProductCode, err)
	}
	defer rows.Close()
	for rows.Next() {
		var charge domain.PenaltyCharge
		if err := rows.Scan(&charge.FromCompletionPercent, &charge.ToCompletionPercent, &charge.PenaltyRate, &charge.CalculationType); err != nil {
			return fmt.Errorf("failed to scan penalty charge row: %w", err)
		}
		config.PenaltyCharges = append(config.PenaltyCharges, charge)
	}
	return rows.Err()
}

func (r *PgxProductRepository) loadTemplates(ctx context.Context, config *domain.ProductConfig) error {
	rows, err := r.Pool.Query(ctx, `
		SELECT event_name, template_body
		FROM product_communication_templates WHERE product_code = $1;
	`, config.ProductCode)
	if err != nil {
		return fmt.Errorf("failed to query templates for product %s: %w", config.ProductCode, err)
	}
	defer rows.Close()
	for rows.Next() {
		var eventName, body string
		if err := rows.Scan(&eventName, &body); err != nil {
			return fmt.Errorf("failed to scan template row: %w", err)
		}
		config.CommunicationTemplates[eventName] = body
	}
	return rows.Err()
}
