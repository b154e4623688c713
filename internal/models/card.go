package models

import (
	"time"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
)

// Card represents a credit card and its billing cycle
type Card struct {
	ID               int64         `json:"id"`
	UserID           int64         `json:"user_id"`
	Name             string        `json:"name"`
	ClosingDay       int           `json:"closing_day"`
	DueDay           int           `json:"due_day"`
	Limit            billing.Cents `json:"limit"`
	PaymentAccountID int64         `json:"payment_account_id"`
	NotifyEmail      string        `json:"notify_email,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Cycle returns the billing configuration of the card.
func (c *Card) Cycle() billing.Cycle {
	return billing.Cycle{ClosingDay: c.ClosingDay, DueDay: c.DueDay}
}
