package domain

import (
	"github.com/shopspring/decimal"
)

// PenaltyCalculationType selects how a matched penalty charge is turned into
// a monetary penalty.
type PenaltyCalculationType string

const (
	// PenaltyPercentage charges a flat percentage of the principal.
	PenaltyPercentage PenaltyCalculationType = "PERCENTAGE"
	// PenaltyFlat reduces the nominal rate by the charge's rate and charges
	// the interest delta between the original and reduced accruals.
	PenaltyFlat PenaltyCalculationType = "FLAT"
)

// PenaltyCharge is one completion-percentage tier of a product's premature
// withdrawal penalty table. Lower bound inclusive, upper bound exclusive,
// except the final 100% bound which is inclusive.
type PenaltyCharge struct {
	FromCompletionPercent decimal.Decimal        `json:"fromCompletionPercent"`
	ToCompletionPercent   decimal.Decimal        `json:"toCompletionPercent"`
	PenaltyRate           decimal.Decimal        `json:"penaltyRate"` // percentage points
	CalculationType       PenaltyCalculationType `json:"calculationType"`
}

// BalanceTypeConfig declares a balance bucket a product maintains.
type BalanceTypeConfig struct {
	BalanceType string `json:"balanceType"`
	IsActive    bool   `json:"isActive"`
}

// Communication event names used to key product templates.
const (
	CommAccountOpened    = "ACCOUNT_OPENED"
	CommPrematureClosure = "PREMATURE_CLOSURE"
	CommStatement        = "STATEMENT"
)

// ProductConfig is the product-provider view of a deposit product: which
// roles and transaction types it permits, which balance buckets it maintains,
// its penalty tiers and its communication templates keyed by event name.
type ProductConfig struct {
	ProductCode             string            `json:"productCode"`
	AllowedRoles            []RoleType        `json:"allowedRoles"`
	AllowedTransactionTypes []TransactionType `json:"allowedTransactionTypes"`
	BalanceTypes            []BalanceTypeConfig `json:"balanceTypes"`
	PenaltyCharges          []PenaltyCharge     `json:"penaltyCharges"`
	CommunicationTemplates  map[string]string   `json:"communicationTemplates"`
}

// AllowsRole reports whether the product permits the given holder role.
func (p *ProductConfig) AllowsRole(role RoleType) bool {
	for _, r := range p.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// AllowsTransactionType reports whether the product permits postings of the
// given type.
func (p *ProductConfig) AllowsTransactionType(t TransactionType) bool {
	for _, allowed := range p.AllowedTransactionTypes {
		if allowed == t {
			return true
		}
	}
	return false
}

// MatchPenaltyCharge returns the tier covering the given completion
// percentage, or nil when no tier matches.
func (p *ProductConfig) MatchPenaltyCharge(completionPercent decimal.Decimal) *PenaltyCharge {
	hundred := decimal.NewFromInt(100)
	for i := range p.PenaltyCharges {
		charge := &p.PenaltyCharges[i]
		if completionPercent.LessThan(charge.FromCompletionPercent) {
			continue
		}
		if completionPercent.LessThan(charge.ToCompletionPercent) {
			return charge
		}
		// The terminal tier is inclusive at its 100% upper bound.
		if charge.ToCompletionPercent.Equal(hundred) && completionPercent.Equal(hundred) {
			return charge
		}
	}
	return nil
}

// Template returns the communication template for an event name, or the
// supplied fallback when the product has none configured.
func (p *ProductConfig) Template(eventName, fallback string) string {
	if tpl, ok := p.CommunicationTemplates[eventName]; ok && tpl != "" {
		return tpl
	}
	return fallback
}
