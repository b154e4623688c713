package models

import (
	"time"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
)

// Invoice statuses
const (
	InvoiceOpen   = "open"
	InvoiceClosed = "closed"
	InvoicePaid   = "paid"
)

// Invoice (fatura) is identified by card and competência.
type Invoice struct {
	ID           int64               `json:"id"`
	CardID       int64               `json:"card_id"`
	Competencia  billing.Competencia `json:"competencia"`
	Status       string              `json:"status"`
	Total        billing.Cents       `json:"total"`
	ClosedAmount billing.Cents       `json:"closed_amount"`
	LateInterest billing.Cents       `json:"late_interest"`
	ClosingDate  billing.Date        `json:"closing_date"`
	DueDate      billing.Date        `json:"due_date"`
	ClosedAt     *time.Time          `json:"closed_at,omitempty"`
	PaidAt       *time.Time          `json:"paid_at,omitempty"`
	Items        []InvoiceItem       `json:"items,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// AmountDue is what paying the invoice costs.
func (i *Invoice) AmountDue() billing.Cents {
	return i.ClosedAmount + i.LateInterest
}

// InvoiceItem is a purchase installment as listed on an invoice.
type InvoiceItem struct {
	InstallmentID    int64         `json:"installment_id"`
	PurchaseID       int64         `json:"purchase_id"`
	Description      string        `json:"description"`
	PurchaseDate     billing.Date  `json:"purchase_date"`
	Index            int           `json:"index"`
	InstallmentCount int           `json:"installment_count"`
	Amount           billing.Cents `json:"amount"`
}
