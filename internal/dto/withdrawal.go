package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/termvault/fd_account_app/internal/core/domain"
)

// ExecuteWithdrawalRequest carries the caller-supplied closure reason.
type ExecuteWithdrawalRequest struct {
	Reason string `json:"reason"`
}

// WithdrawalInquiryResponse mirrors domain.WithdrawalInquiry.
type WithdrawalInquiryResponse struct {
	AccountNumber      string          `json:"accountNumber"`
	PrincipalAmount    decimal.Decimal `json:"principalAmount"`
	AccruedInterest    decimal.Decimal `json:"accruedInterest"`
	PenaltyAmount      decimal.Decimal `json:"penaltyAmount"`
	FinalPayoutAmount  decimal.Decimal `json:"finalPayoutAmount"`
	CompletionPercent  decimal.Decimal `json:"completionPercent"`
	AppliedPenaltyRate decimal.Decimal `json:"appliedPenaltyRate"`
	InquiryDate        time.Time       `json:"inquiryDate"`
}

// ToWithdrawalInquiryResponse converts the domain inquiry to its DTO.
func ToWithdrawalInquiryResponse(inq *domain.WithdrawalInquiry) WithdrawalInquiryResponse {
	return WithdrawalInquiryResponse{
		AccountNumber:      inq.AccountNumber,
		PrincipalAmount:    inq.PrincipalAmount,
		AccruedInterest:    inq.AccruedInterest,
		PenaltyAmount:      inq.PenaltyAmount,
		FinalPayoutAmount:  inq.FinalPayoutAmount,
		CompletionPercent:  inq.CompletionPercent,
		AppliedPenaltyRate: inq.AppliedPenaltyRate,
		InquiryDate:        inq.InquiryDate,
	}
}
