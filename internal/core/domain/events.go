package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountCreatedEvent is published after an account aggregate is committed.
type AccountCreatedEvent struct {
	EventType       string          `json:"event_type"`
	AccountNumber   string          `json:"account_number"`
	AccountName     string          `json:"account_name"`
	ProductCode     string          `json:"product_code"`
	OwnerCustomerID string          `json:"owner_customer_id"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	CurrencyCode    string          `json:"currency_code"`
	EffectiveDate   time.Time       `json:"effective_date"`
	MaturityDate    time.Time       `json:"maturity_date"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// AccountClosedEvent is published after a premature withdrawal commits. It
// carries every holder customer id so downstream notifiers can fan out.
type AccountClosedEvent struct {
	EventType         string          `json:"event_type"`
	AccountNumber     string          `json:"account_number"`
	Reason            string          `json:"reason"`
	PenaltyAmount     decimal.Decimal `json:"penalty_amount"`
	FinalPayoutAmount decimal.Decimal `json:"final_payout_amount"`
	CustomerIDs       []string        `json:"customer_ids"`
	ClosedAt          time.Time       `json:"closed_at"`
}

// CommunicationRequestedEvent asks the communication subsystem to deliver a
// rendered message. The core only constructs and hands off the payload;
// delivery, retries and the CommunicationLog audit trail live downstream.
type CommunicationRequestedEvent struct {
	EventType     string    `json:"event_type"`
	AccountNumber string    `json:"account_number"`
	CustomerID    string    `json:"customer_id"`
	EventName     string    `json:"event_name"`
	Body          string    `json:"body"`
	OccurredAt    time.Time `json:"occurred_at"`
}
