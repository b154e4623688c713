package models

import "github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"

// CardUsage represents the committed and available limit of a card
type CardUsage struct {
	CardID    int64         `json:"card_id"`
	Limit     billing.Cents `json:"limit"`
	Available billing.Cents `json:"available"`
	billing.Usage
}

// InvoiceProjection represents expected invoice totals for the coming months
type InvoiceProjection struct {
	CardID int64                `json:"card_id"`
	Months []billing.MonthTotal `json:"months"`
}

// InstallmentPreview is the schedule a purchase would produce
type InstallmentPreview struct {
	Competencia  billing.Competencia   `json:"competencia"`
	ClosingDate  billing.Date          `json:"closing_date"`
	DueDate      billing.Date          `json:"due_date"`
	Total        billing.Cents         `json:"total"`
	Installments []billing.Installment `json:"installments"`
}
