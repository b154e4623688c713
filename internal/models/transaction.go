package models

import (
	"time"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
)

// TransactionInvoicePayment is the type of the debit that settles an invoice
const TransactionInvoicePayment = "invoice_payment"

// Transaction represents a movement on a payment account
type Transaction struct {
	ID          int64         `json:"id"`
	AccountID   int64         `json:"account_id"`
	InvoiceID   *int64        `json:"invoice_id,omitempty"`
	Amount      billing.Cents `json:"amount"`
	Type        string        `json:"type"`
	Description string        `json:"description"`
	Date        billing.Date  `json:"date"`
	CreatedAt   time.Time     `json:"created_at"`
}
