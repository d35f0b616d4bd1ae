package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalInquiry is the non-mutating premature withdrawal quote. It is a
// pure function of the account, the product penalty table and the logical
// date: identical inputs must yield identical results.
type WithdrawalInquiry struct {
	AccountNumber     string          `json:"accountNumber"`
	PrincipalAmount   decimal.Decimal `json:"principalAmount"`
	AccruedInterest   decimal.Decimal `json:"accruedInterest"` // at the penalty-adjusted rate
	PenaltyAmount     decimal.Decimal `json:"penaltyAmount"`
	FinalPayoutAmount decimal.Decimal `json:"finalPayoutAmount"`
	CompletionPercent decimal.Decimal `json:"completionPercent"`
	AppliedPenaltyRate decimal.Decimal `json:"appliedPenaltyRate"` // percentage points
	InquiryDate       time.Time       `json:"inquiryDate"`
}
