package services

import (
	"context"
	"time"

	"github.com/termvault/fd_account_app/internal/core/domain"
	"github.com/termvault/fd_account_app/internal/dto"
)

// StatementSvcFacade is the statement aggregator's caller-facing surface.
type StatementSvcFacade interface {
	// BuildStatement assembles opening/closing balances, the newest-first
	// ledger view and the rendered message for one account and period.
	// periodEnd is inclusive at day precision.
	BuildStatement(ctx context.Context, accountNumber string, periodStart, periodEnd time.Time) (*domain.StatementData, error)

	// RunBatch builds statements for every ACTIVE account. One account's
	// failure never aborts the rest; failures are counted and logged.
	RunBatch(ctx context.Context, periodStart, periodEnd time.Time) (*dto.StatementBatchResult, error)
}
