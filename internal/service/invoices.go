package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/models"
)

// ListInvoices returns the invoices of a card owned by the user
func (s *Service) ListInvoices(ctx context.Context, userID, cardID int64) ([]*models.Invoice, error) {
	if _, err := s.GetCard(ctx, userID, cardID); err != nil {
		return nil, err
	}
	return s.repo.ListInvoicesByCard(ctx, cardID)
}

// GetInvoice returns an invoice with its items
func (s *Service) GetInvoice(ctx context.Context, userID, invoiceID int64) (*models.Invoice, error) {
	inv, err := s.repo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetCard(ctx, userID, inv.CardID); err != nil {
		return nil, err
	}
	return inv, nil
}

// CloseInvoice closes an open invoice ahead of its closing date
func (s *Service) CloseInvoice(ctx context.Context, userID, invoiceID int64) (*models.Invoice, error) {
	if _, err := s.GetInvoice(ctx, userID, invoiceID); err != nil {
		return nil, err
	}
	inv, err := s.repo.CloseInvoice(ctx, invoiceID, s.now())
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"card_id":     inv.CardID,
		"invoice_id":  inv.ID,
		"competencia": inv.Competencia.String(),
		"amount":      inv.ClosedAmount.String(),
	}).Info("Invoice closed")
	return inv, nil
}

// PayInvoice settles a closed invoice. A zero accountID pays from the
// card's payment account.
func (s *Service) PayInvoice(ctx context.Context, userID, invoiceID, accountID int64) (*models.Invoice, *models.Transaction, error) {
	inv, err := s.repo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	card, err := s.GetCard(ctx, userID, inv.CardID)
	if err != nil {
		return nil, nil, err
	}
	if accountID == 0 {
		accountID = card.PaymentAccountID
	}
	if _, err := s.GetAccount(ctx, userID, accountID); err != nil {
		return nil, nil, err
	}

	paid, txn, err := s.repo.PayInvoice(ctx, invoiceID, accountID, s.Today(), s.now())
	if err != nil {
		return nil, nil, err
	}

	s.log.WithFields(logrus.Fields{
		"card_id":        paid.CardID,
		"invoice_id":     paid.ID,
		"account_id":     accountID,
		"transaction_id": txn.ID,
		"amount":         txn.Amount.String(),
	}).Info("Invoice paid")
	return paid, txn, nil
}
