package models

import (
	"time"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
)

// Purchase is a card purchase, possibly split in installments.
type Purchase struct {
	ID               int64                 `json:"id"`
	CardID           int64                 `json:"card_id"`
	Description      string                `json:"description"`
	TotalAmount      billing.Cents         `json:"total_amount"`
	PurchaseDate     billing.Date          `json:"purchase_date"`
	InstallmentCount int                   `json:"installment_count"`
	Installments     []PurchaseInstallment `json:"installments,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

// PurchaseInstallment binds one installment of a purchase to the invoice of its competência.
type PurchaseInstallment struct {
	ID          int64               `json:"id"`
	PurchaseID  int64               `json:"purchase_id"`
	InvoiceID   int64               `json:"invoice_id"`
	Index       int                 `json:"index"`
	Competencia billing.Competencia `json:"competencia"`
	Amount      billing.Cents       `json:"amount"`
}

// UsageLines converts the installments into the shape usage reports aggregate.
func (p *Purchase) UsageLines() []billing.UsageLine {
	lines := make([]billing.UsageLine, 0, len(p.Installments))
	for _, in := range p.Installments {
		lines = append(lines, billing.UsageLine{
			PurchaseID:   p.ID,
			Description:  p.Description,
			PurchaseDate: p.PurchaseDate,
			Index:        in.Index,
			Competencia:  in.Competencia,
			Amount:       in.Amount,
		})
	}
	return lines
}

// LimitCheck decides whether a purchase fits on a card, given the card
// limit and the installments already booked from the open cycle onwards.
// It runs while the card is locked, so concurrent purchases see each other.
type LimitCheck func(limit billing.Cents, booked []billing.UsageLine) error
