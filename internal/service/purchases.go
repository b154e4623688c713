package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/models"
)

// CreatePurchaseParams holds the fields of a new purchase
type CreatePurchaseParams struct {
	Description      string
	PurchaseDate     billing.Date
	TotalAmount      decimal.Decimal
	InstallmentCount int
}

// CreatePurchase splits a purchase into installments, one per competência
// starting at the cycle the purchase date falls in, and books them on the
// card invoices. The purchase is rejected when it would exceed the card limit
// or when any of its invoices is already closed.
func (s *Service) CreatePurchase(ctx context.Context, userID, cardID int64, params CreatePurchaseParams) (*models.Purchase, error) {
	description := strings.TrimSpace(params.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", billing.ErrInvalidInput)
	}
	card, err := s.GetCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	cycle := card.Cycle()

	installments, err := billing.ExpandInstallments(params.PurchaseDate, cycle.ClosingDay, params.TotalAmount, params.InstallmentCount)
	if err != nil {
		return nil, err
	}

	purchase := &models.Purchase{
		CardID:           cardID,
		Description:      description,
		TotalAmount:      billing.Sum(installments),
		PurchaseDate:     params.PurchaseDate,
		InstallmentCount: params.InstallmentCount,
		Installments:     make([]models.PurchaseInstallment, 0, len(installments)),
	}
	for _, in := range installments {
		purchase.Installments = append(purchase.Installments, models.PurchaseInstallment{
			Index:       in.Index,
			Competencia: in.Competencia,
			Amount:      in.Amount,
		})
	}

	open, err := cycle.OpenCompetencia(s.Today())
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreatePurchase(ctx, purchase, cycle, open, limitCheck(card.ID, purchase, open)); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"card_id":      cardID,
		"purchase_id":  purchase.ID,
		"total":        purchase.TotalAmount.String(),
		"installments": purchase.InstallmentCount,
		"first":        installments[0].Competencia.String(),
	}).Info("Purchase created")
	return purchase, nil
}

// limitCheck fails with ErrLimitExceeded when the card usage from the open
// cycle onwards, including the new purchase, is above the card limit.
func limitCheck(cardID int64, purchase *models.Purchase, open billing.Competencia) models.LimitCheck {
	return func(limit billing.Cents, booked []billing.UsageLine) error {
		// The purchase has no id yet, so its lines group by description and date.
		lines := append(booked, purchase.UsageLines()...)
		usage := billing.AggregateUsage(lines, open)
		if usage.Total > limit {
			return fmt.Errorf("usage %s above limit %s of card %d: %w", usage.Total, limit, cardID, models.ErrLimitExceeded)
		}
		return nil
	}
}

// ListPurchases returns the purchases of a card owned by the user
func (s *Service) ListPurchases(ctx context.Context, userID, cardID int64) ([]*models.Purchase, error) {
	if _, err := s.GetCard(ctx, userID, cardID); err != nil {
		return nil, err
	}
	return s.repo.ListPurchasesByCard(ctx, cardID)
}

// DeletePurchase removes a purchase whose invoices are all still open
func (s *Service) DeletePurchase(ctx context.Context, userID, purchaseID int64) error {
	purchase, err := s.repo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if _, err := s.GetCard(ctx, userID, purchase.CardID); err != nil {
		return err
	}
	if err := s.repo.DeletePurchase(ctx, purchaseID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"card_id": purchase.CardID, "purchase_id": purchaseID}).Info("Purchase deleted")
	return nil
}
