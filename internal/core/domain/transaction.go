package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger posting.
type TransactionType string

const (
	TxnPrincipalDeposit    TransactionType = "PRINCIPAL_DEPOSIT"
	TxnInterestCredit      TransactionType = "INTEREST_CREDIT"
	TxnPenaltyDebit        TransactionType = "PENALTY_DEBIT"
	TxnPrematureWithdrawal TransactionType = "PREMATURE_WITHDRAWAL"
	TxnMaturityPayout      TransactionType = "MATURITY_PAYOUT"
)

var transactionTypeDisplayNames = map[TransactionType]string{
	TxnPrincipalDeposit:    "Principal Deposit",
	TxnInterestCredit:      "Interest Credit",
	TxnPenaltyDebit:        "Penalty Debit",
	TxnPrematureWithdrawal: "Premature Withdrawal",
	TxnMaturityPayout:      "Maturity Payout",
}

// DisplayName returns the human-readable name for the type, falling back to
// the raw enum value for types without a registered display name.
func (t TransactionType) DisplayName() string {
	if name, ok := transactionTypeDisplayNames[t]; ok {
		return name
	}
	return string(t)
}

// Transaction is a single dated, typed, signed posting in an account's ledger.
// Postings are append-only: never mutated or deleted after creation.
// Inflows carry positive amounts, outflows negative.
type Transaction struct {
	TransactionID        string          `json:"transactionID"`
	AccountID            string          `json:"accountID"`
	TransactionReference string          `json:"transactionReference"` // unique per posting
	TransactionType      TransactionType `json:"transactionType"`
	Amount               decimal.Decimal `json:"amount"`
	TransactionDate      time.Time       `json:"transactionDate"`
	Description          string          `json:"description"`
	AuditFields
}
