package domain

import (
	"github.com/shopspring/decimal"
)

// Well-known balance bucket types. Products may configure additional types;
// unrecognized ones are seeded to zero and ignored by statement summaries.
const (
	BalancePrincipal = "FD_PRINCIPAL"
	BalanceInterest  = "FD_INTEREST"
	BalancePenalty   = "PENALTY"
)

// BalanceEntry is a named running total tracked separately from the
// transaction ledger. One active entry exists per (account, balanceType).
type BalanceEntry struct {
	BalanceID     string          `json:"balanceID"`
	AccountID     string          `json:"accountID"`
	BalanceType   string          `json:"balanceType"`
	BalanceAmount decimal.Decimal `json:"balanceAmount"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// balanceSeedRules maps a balance type to its opening seed amount. Types
// without a rule (including product-specific unknowns) seed to zero.
var balanceSeedRules = map[string]func(principal decimal.Decimal) decimal.Decimal{
	BalancePrincipal: func(principal decimal.Decimal) decimal.Decimal { return principal },
}

// SeedAmountFor returns the opening amount for a balance bucket at account
// creation time.
func SeedAmountFor(balanceType string, principal decimal.Decimal) decimal.Decimal {
	if rule, ok := balanceSeedRules[balanceType]; ok {
		return rule(principal)
	}
	return decimal.Zero
}
