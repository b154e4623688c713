package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/models"
)

// InvoiceNotice pairs an invoice with its card for notifications
type InvoiceNotice struct {
	Card    *models.Card
	Invoice *models.Invoice
}

// cardCache avoids loading the same card once per invoice during a job run
type cardCache struct {
	repo  Repository
	cards map[int64]*models.Card
}

func (c *cardCache) get(ctx context.Context, id int64) (*models.Card, error) {
	if card, ok := c.cards[id]; ok {
		return card, nil
	}
	card, err := c.repo.FindCardByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.cards[id] = card
	return card, nil
}

func (s *Service) newCardCache() *cardCache {
	return &cardCache{repo: s.repo, cards: make(map[int64]*models.Card)}
}

// CloseExpiredInvoices closes every open invoice whose closing date is
// before today. A failure on one invoice does not stop the others; the
// failures are returned joined.
func (s *Service) CloseExpiredInvoices(ctx context.Context, today billing.Date) ([]InvoiceNotice, error) {
	invoices, err := s.repo.ListInvoicesByStatus(ctx, models.InvoiceOpen)
	if err != nil {
		return nil, err
	}

	cards := s.newCardCache()
	var (
		closed []InvoiceNotice
		errs   []error
	)
	for _, inv := range invoices {
		if !inv.ClosingDate.Before(today) {
			continue
		}
		updated, err := s.repo.CloseInvoice(ctx, inv.ID, s.now())
		if err != nil {
			s.log.WithError(err).WithField("invoice_id", inv.ID).Error("Failed to close invoice")
			errs = append(errs, fmt.Errorf("invoice %d: %w", inv.ID, err))
			continue
		}
		card, err := cards.get(ctx, updated.CardID)
		if err != nil {
			errs = append(errs, fmt.Errorf("invoice %d: %w", inv.ID, err))
			continue
		}
		s.log.WithFields(logrus.Fields{
			"card_id":     updated.CardID,
			"invoice_id":  updated.ID,
			"competencia": updated.Competencia.String(),
			"amount":      updated.ClosedAmount.String(),
		}).Info("Invoice closed by schedule")
		closed = append(closed, InvoiceNotice{Card: card, Invoice: updated})
	}
	return closed, errors.Join(errs...)
}

// UpcomingDueInvoices returns the closed invoices due exactly days after today
func (s *Service) UpcomingDueInvoices(ctx context.Context, today billing.Date, days int) ([]InvoiceNotice, error) {
	invoices, err := s.repo.ListInvoicesByStatus(ctx, models.InvoiceClosed)
	if err != nil {
		return nil, err
	}

	target := today.AddDays(days)
	cards := s.newCardCache()
	var notices []InvoiceNotice
	for _, inv := range invoices {
		if inv.DueDate != target {
			continue
		}
		card, err := cards.get(ctx, inv.CardID)
		if err != nil {
			return nil, err
		}
		notices = append(notices, InvoiceNotice{Card: card, Invoice: inv})
	}
	return notices, nil
}

// ChargeLateInterest recomputes the interest of every closed invoice past
// its due date from the annual rate, in percent. Only invoices whose interest
// changed are returned.
func (s *Service) ChargeLateInterest(ctx context.Context, today billing.Date, annualRate decimal.Decimal) ([]InvoiceNotice, error) {
	invoices, err := s.repo.ListInvoicesByStatus(ctx, models.InvoiceClosed)
	if err != nil {
		return nil, err
	}

	cards := s.newCardCache()
	var (
		charged []InvoiceNotice
		errs    []error
	)
	for _, inv := range invoices {
		if !inv.DueDate.Before(today) {
			continue
		}
		interest := billing.LateInterest(inv.ClosedAmount, annualRate, inv.DueDate.DaysUntil(today))
		if interest == inv.LateInterest {
			continue
		}
		if err := s.repo.SetLateInterest(ctx, inv.ID, interest); err != nil {
			s.log.WithError(err).WithField("invoice_id", inv.ID).Error("Failed to set late interest")
			errs = append(errs, fmt.Errorf("invoice %d: %w", inv.ID, err))
			continue
		}
		inv.LateInterest = interest
		card, err := cards.get(ctx, inv.CardID)
		if err != nil {
			errs = append(errs, fmt.Errorf("invoice %d: %w", inv.ID, err))
			continue
		}
		s.log.WithFields(logrus.Fields{
			"invoice_id":   inv.ID,
			"days_overdue": inv.DueDate.DaysUntil(today),
			"interest":     interest.String(),
		}).Info("Late interest charged")
		charged = append(charged, InvoiceNotice{Card: card, Invoice: inv})
	}
	return charged, errors.Join(errs...)
}
