package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationResult is the calculation service's answer for a quoted deposit:
// the projected maturity figures plus product metadata. PrincipalAmount may be
// zero, in which case the lifecycle engine derives it by inverting the
// simple-interest maturity formula.
type CalculationResult struct {
	CalculationID        string          `json:"calculationID"`
	ProductCode          string          `json:"productCode"`
	PrincipalAmount      decimal.Decimal `json:"principalAmount"`
	MaturityValue        decimal.Decimal `json:"maturityValue"`
	MaturityDate         time.Time       `json:"maturityDate"`
	APY                  decimal.Decimal `json:"apy"`
	EffectiveRate        decimal.Decimal `json:"effectiveRate"` // nominal annual rate, percent
	PayoutFrequency      string          `json:"payoutFrequency"`
	PayoutAmount         decimal.Decimal `json:"payoutAmount"`
	CategoryTags         []string        `json:"categoryTags"`
	TenureValue          int             `json:"tenureValue"`
	TenureUnit           string          `json:"tenureUnit"`
	CurrencyCode         string          `json:"currencyCode"`
	InterestType         string          `json:"interestType"`
	CompoundingFrequency string          `json:"compoundingFrequency"`
}

// Customer is the minimal customer-provider projection the core needs for
// statement rendering.
type Customer struct {
	CustomerID string `json:"customerID"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
}
