package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementLine is one ledger row on a rendered statement. Debit carries the
// absolute value of negative postings, Credit the value of positive ones.
// RunningBalance starts at zero for the period and accumulates oldest-first,
// even though lines are presented newest-first.
type StatementLine struct {
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// StatementData is the assembled statement for one account and period.
type StatementData struct {
	AccountNumber  string                     `json:"accountNumber"`
	AccountName    string                     `json:"accountName"`
	PeriodStart    time.Time                  `json:"periodStart"`
	PeriodEnd      time.Time                  `json:"periodEnd"`
	OpeningBalance decimal.Decimal            `json:"openingBalance"`
	ClosingBalance decimal.Decimal            `json:"closingBalance"`
	Balances       map[string]decimal.Decimal `json:"balances"` // active buckets by type
	Lines          []StatementLine            `json:"lines"`    // newest-first
	Message        string                     `json:"message"`  // rendered template
	GeneratedAt    time.Time                  `json:"generatedAt"`
}
