package models

import (
	"time"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
)

// Account is a payment account that settles card invoices.
type Account struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	Name      string        `json:"name"`
	Balance   billing.Cents `json:"balance"`
	Currency  string        `json:"currency"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
