package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/models"
)

// CardUsage reports how much of the card limit is committed from the cycle
// open on today onwards.
func (s *Service) CardUsage(ctx context.Context, userID, cardID int64, today billing.Date) (*models.CardUsage, error) {
	card, err := s.GetCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	open, err := card.Cycle().OpenCompetencia(today)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.ListUsageLines(ctx, cardID, open)
	if err != nil {
		return nil, err
	}

	usage := billing.AggregateUsage(lines, open)
	return &models.CardUsage{
		CardID:    cardID,
		Limit:     card.Limit,
		Available: card.Limit - usage.Total,
		Usage:     usage,
	}, nil
}

// ProjectInvoices returns the expected invoice totals for months
// competências starting at the one open on today.
func (s *Service) ProjectInvoices(ctx context.Context, userID, cardID int64, today billing.Date, months int) (*models.InvoiceProjection, error) {
	card, err := s.GetCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	open, err := card.Cycle().OpenCompetencia(today)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.ListUsageLines(ctx, cardID, open)
	if err != nil {
		return nil, err
	}

	totals, err := billing.ProjectInvoices(lines, open, months)
	if err != nil {
		return nil, err
	}
	return &models.InvoiceProjection{CardID: cardID, Months: totals}, nil
}

// PreviewInstallments computes the schedule a purchase would get without
// storing anything.
func (s *Service) PreviewInstallments(cycle billing.Cycle, date billing.Date, total decimal.Decimal, count int) (*models.InstallmentPreview, error) {
	if err := cycle.Validate(); err != nil {
		return nil, err
	}
	installments, err := billing.ExpandInstallments(date, cycle.ClosingDay, total, count)
	if err != nil {
		return nil, err
	}
	first := installments[0].Competencia
	return &models.InstallmentPreview{
		Competencia:  first,
		ClosingDate:  cycle.ClosingDate(first),
		DueDate:      cycle.DueDate(first),
		Total:        billing.Sum(installments),
		Installments: installments,
	}, nil
}
