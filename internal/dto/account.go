package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/termvault/fd_account_app/internal/core/domain"
)

// AccountSearchKind enumerates the supported account search dispatches.
type AccountSearchKind string

const (
	SearchByAccountNumber AccountSearchKind = "ACCOUNT_NUMBER"
	SearchByCustomerID    AccountSearchKind = "CUSTOMER_ID"
	SearchByAccountName   AccountSearchKind = "ACCOUNT_NAME"
)

// CreateAccountRequest defines the data needed to open a fixed deposit.
type CreateAccountRequest struct {
	CalculationID   string `json:"calculationID" binding:"required"`
	AccountName     string `json:"accountName" binding:"required"`
	OwnerCustomerID string `json:"ownerCustomerID" binding:"required"`
}

// AddRoleRequest defines the data needed to attach a holder to an account.
type AddRoleRequest struct {
	CustomerID       string           `json:"customerID" binding:"required"`
	RoleType         domain.RoleType  `json:"roleType" binding:"required,oneof=OWNER CO_OWNER NOMINEE GUARDIAN"`
	OwnershipPercent *decimal.Decimal `json:"ownershipPercent"`
}

// AccountHolderResponse mirrors domain.AccountHolder.
type AccountHolderResponse struct {
	CustomerID       string           `json:"customerID"`
	RoleType         domain.RoleType  `json:"roleType"`
	OwnershipPercent *decimal.Decimal `json:"ownershipPercent,omitempty"`
}

// TransactionResponse mirrors domain.Transaction.
type TransactionResponse struct {
	TransactionReference string                 `json:"transactionReference"`
	TransactionType      domain.TransactionType `json:"transactionType"`
	Amount               decimal.Decimal        `json:"amount"`
	TransactionDate      time.Time              `json:"transactionDate"`
	Description          string                 `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountNumber   string                  `json:"accountNumber"`
	Name            string                  `json:"name"`
	ProductCode     string                  `json:"productCode"`
	Status          domain.AccountStatus    `json:"status"`
	TermInMonths    int                     `json:"termInMonths"`
	InterestRate    decimal.Decimal         `json:"interestRate"`
	PrincipalAmount decimal.Decimal         `json:"principalAmount"`
	MaturityAmount  decimal.Decimal         `json:"maturityAmount"`
	EffectiveDate   time.Time               `json:"effectiveDate"`
	MaturityDate    time.Time               `json:"maturityDate"`
	CurrencyCode    string                  `json:"currencyCode"`
	APY             decimal.Decimal         `json:"apy"`
	ClosedAt        *time.Time              `json:"closedAt,omitempty"`
	Holders         []AccountHolderResponse `json:"holders"`
	Transactions    []TransactionResponse   `json:"transactions"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	holders := make([]AccountHolderResponse, 0, len(acc.Holders))
	for _, h := range acc.Holders {
		holders = append(holders, AccountHolderResponse{
			CustomerID:       h.CustomerID,
			RoleType:         h.RoleType,
			OwnershipPercent: h.OwnershipPercent,
		})
	}
	txns := make([]TransactionResponse, 0, len(acc.Transactions))
	for _, t := range acc.Transactions {
		txns = append(txns, TransactionResponse{
			TransactionReference: t.TransactionReference,
			TransactionType:      t.TransactionType,
			Amount:               t.Amount,
			TransactionDate:      t.TransactionDate,
			Description:          t.Description,
		})
	}
	return AccountResponse{
		AccountNumber:   acc.AccountNumber,
		Name:            acc.Name,
		ProductCode:     acc.ProductCode,
		Status:          acc.Status,
		TermInMonths:    acc.TermInMonths,
		InterestRate:    acc.InterestRate,
		PrincipalAmount: acc.PrincipalAmount,
		MaturityAmount:  acc.MaturityAmount,
		EffectiveDate:   acc.EffectiveDate,
		MaturityDate:    acc.MaturityDate,
		CurrencyCode:    acc.CurrencyCode,
		APY:             acc.APY,
		ClosedAt:        acc.ClosedAt,
		Holders:         holders,
		Transactions:    txns,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, ToAccountResponse(&accounts[i]))
	}
	return out
}
