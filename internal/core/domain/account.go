package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of a fixed deposit account.
// Only forward transitions from ACTIVE are permitted; terminal states never
// transition back to ACTIVE.
type AccountStatus string

const (
	StatusActive            AccountStatus = "ACTIVE"
	StatusPrematurelyClosed AccountStatus = "PREMATURELY_CLOSED"
	StatusMatured           AccountStatus = "MATURED"
	StatusClosed            AccountStatus = "CLOSED"
)

// IsTerminal reports whether no further status transition is allowed.
func (s AccountStatus) IsTerminal() bool {
	return s == StatusPrematurelyClosed || s == StatusMatured || s == StatusClosed
}

// RoleType classifies an account holder's relationship to the account.
type RoleType string

const (
	RoleOwner    RoleType = "OWNER"
	RoleCoOwner  RoleType = "CO_OWNER"
	RoleNominee  RoleType = "NOMINEE"
	RoleGuardian RoleType = "GUARDIAN"
)

// AccountHolder links a customer to an account under a specific role.
// The triple (account, customerID, roleType) is unique. OwnershipPercent is
// nullable (e.g. nominees carry none) and must be in [0,100] when present.
type AccountHolder struct {
	HolderID         string           `json:"holderID"`
	AccountID        string           `json:"accountID"`
	CustomerID       string           `json:"customerID"`
	RoleType         RoleType         `json:"roleType"`
	OwnershipPercent *decimal.Decimal `json:"ownershipPercent,omitempty"`
	AuditFields
}

// Account is the aggregate root for a fixed deposit. It owns its holders and
// transactions by value; child collections are only mutated through aggregate
// operations with an atomic-save contract.
type Account struct {
	AccountID     string        `json:"accountID"`
	AccountNumber string        `json:"accountNumber"` // externally unique, immutable once assigned
	Name          string        `json:"name"`
	ProductCode   string        `json:"productCode"`
	Status        AccountStatus `json:"status"`

	TermInMonths    int             `json:"termInMonths"`
	InterestRate    decimal.Decimal `json:"interestRate"` // nominal annual rate, percent
	PrincipalAmount decimal.Decimal `json:"principalAmount"`
	MaturityAmount  decimal.Decimal `json:"maturityAmount"`
	EffectiveDate   time.Time       `json:"effectiveDate"`
	MaturityDate    time.Time       `json:"maturityDate"`

	MaturityInstruction string `json:"maturityInstruction"`
	PayoutAccountNumber string `json:"payoutAccountNumber"`

	// Calculation-service-derived metadata.
	APY                  decimal.Decimal `json:"apy"`
	EffectiveRate        decimal.Decimal `json:"effectiveRate"`
	PayoutFrequency      string          `json:"payoutFrequency"`
	PayoutAmount         decimal.Decimal `json:"payoutAmount"`
	CategoryTags         []string        `json:"categoryTags"`
	TenureValue          int             `json:"tenureValue"`
	TenureUnit           string          `json:"tenureUnit"`
	CurrencyCode         string          `json:"currencyCode"`
	InterestType         string          `json:"interestType"`
	CompoundingFrequency string          `json:"compoundingFrequency"`

	ClosedAt *time.Time `json:"closedAt,omitempty"`
	AuditFields

	Holders      []AccountHolder `json:"holders"`
	Transactions []Transaction   `json:"transactions"`
}

// OwnerCustomerID returns the customer id of the first OWNER holder, or ""
// when the aggregate carries no owner (which violates the creation invariant).
func (a *Account) OwnerCustomerID() string {
	for _, h := range a.Holders {
		if h.RoleType == RoleOwner {
			return h.CustomerID
		}
	}
	return ""
}

// HolderCustomerIDs returns the customer ids of every holder, in holder order.
func (a *Account) HolderCustomerIDs() []string {
	ids := make([]string, 0, len(a.Holders))
	for _, h := range a.Holders {
		ids = append(ids, h.CustomerID)
	}
	return ids
}

// HasHolder reports whether a (customerID, roleType) pair is already attached.
func (a *Account) HasHolder(customerID string, roleType RoleType) bool {
	for _, h := range a.Holders {
		if h.CustomerID == customerID && h.RoleType == roleType {
			return true
		}
	}
	return false
}
