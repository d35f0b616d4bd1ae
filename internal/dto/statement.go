package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/termvault/fd_account_app/internal/core/domain"
)

// StatementLineResponse mirrors domain.StatementLine.
type StatementLineResponse struct {
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// StatementResponse mirrors domain.StatementData.
type StatementResponse struct {
	AccountNumber  string                     `json:"accountNumber"`
	AccountName    string                     `json:"accountName"`
	PeriodStart    time.Time                  `json:"periodStart"`
	PeriodEnd      time.Time                  `json:"periodEnd"`
	OpeningBalance decimal.Decimal            `json:"openingBalance"`
	ClosingBalance decimal.Decimal            `json:"closingBalance"`
	Balances       map[string]decimal.Decimal `json:"balances"`
	Lines          []StatementLineResponse    `json:"lines"`
	Message        string                     `json:"message"`
	GeneratedAt    time.Time                  `json:"generatedAt"`
}

// StatementBatchResult summarizes a batch statement run. Per-account failures
// are counted, not propagated.
type StatementBatchResult struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// ToStatementResponse converts domain statement data to its DTO.
func ToStatementResponse(st *domain.StatementData) StatementResponse {
	lines := make([]StatementLineResponse, 0, len(st.Lines))
	for _, l := range st.Lines {
		lines = append(lines, StatementLineResponse{
			Date:           l.Date,
			Description:    l.Description,
			Debit:          l.Debit,
			Credit:         l.Credit,
			RunningBalance: l.RunningBalance,
		})
	}
	return StatementResponse{
		AccountNumber:  st.AccountNumber,
		AccountName:    st.AccountName,
		PeriodStart:    st.PeriodStart,
		PeriodEnd:      st.PeriodEnd,
		OpeningBalance: st.OpeningBalance,
		ClosingBalance: st.ClosingBalance,
		Balances:       st.Balances,
		Lines:          lines,
		Message:        st.Message,
		GeneratedAt:    st.GeneratedAt,
	}
}
