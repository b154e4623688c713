package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/models"
)

// Service handles business logic
type Service struct {
	repo Repository
	log  *logrus.Logger
	loc  *time.Location
	now  func() time.Time
}

// Option customizes a Service
type Option func(*Service)

// WithLocation sets the time zone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService initializes a new service
func NewService(repo Repository, log *logrus.Logger, opts ...Option) *Service {
	s := &Service{repo: repo, log: log, loc: time.UTC, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the current calendar date in the service location.
func (s *Service) Today() billing.Date {
	return billing.DateOf(s.now().In(s.loc))
}

// CreateAccount creates a new payment account for the user
func (s *Service) CreateAccount(ctx context.Context, userID int64, name, currency string) (*models.Account, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: currency %q must be a 3 letter code", billing.ErrInvalidInput, currency)
	}

	account := &models.Account{
		UserID:   userID,
		Name:     strings.TrimSpace(name),
		Currency: currency,
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "account_id": account.ID}).Info("Account created")
	return account, nil
}

// GetAccount returns an account owned by the user
func (s *Service) GetAccount(ctx context.Context, userID, accountID int64) (*models.Account, error) {
	account, err := s.repo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("account %d: %w", accountID, models.ErrForbidden)
	}
	return account, nil
}

// CreateCardParams holds the fields of a new card
type CreateCardParams struct {
	Name             string
	ClosingDay       int
	DueDay           int
	Limit            decimal.Decimal
	PaymentAccountID int64
	NotifyEmail      string
}

// CreateCard creates a card settled by one of the user's accounts
func (s *Service) CreateCard(ctx context.Context, userID int64, params CreateCardParams) (*models.Card, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: card name is required", billing.ErrInvalidInput)
	}
	cycle := billing.Cycle{ClosingDay: params.ClosingDay, DueDay: params.DueDay}
	if err := cycle.Validate(); err != nil {
		return nil, err
	}
	if !params.Limit.IsPositive() {
		return nil, fmt.Errorf("%w: limit must be positive", billing.ErrInvalidInput)
	}
	limit, err := billing.ToCents(params.Limit)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetAccount(ctx, userID, params.PaymentAccountID); err != nil {
		return nil, err
	}

	card := &models.Card{
		UserID:           userID,
		Name:             name,
		ClosingDay:       cycle.ClosingDay,
		DueDay:           cycle.DueDay,
		Limit:            limit,
		PaymentAccountID: params.PaymentAccountID,
		NotifyEmail:      strings.TrimSpace(params.NotifyEmail),
	}
	if err := s.repo.CreateCard(ctx, card); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":     userID,
		"card_id":     card.ID,
		"closing_day": card.ClosingDay,
		"due_day":     card.DueDay,
	}).Info("Card created")
	return card, nil
}

// GetCard returns a card owned by the user
func (s *Service) GetCard(ctx context.Context, userID, cardID int64) (*models.Card, error) {
	card, err := s.repo.FindCardByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.UserID != userID {
		return nil, fmt.Errorf("card %d: %w", cardID, models.ErrForbidden)
	}
	return card, nil
}

// ListCards returns the user's cards
func (s *Service) ListCards(ctx context.Context, userID int64) ([]*models.Card, error) {
	return s.repo.ListCardsByUser(ctx, userID)
}

// UpdateCardCycle changes the closing and due day used for future purchases
func (s *Service) UpdateCardCycle(ctx context.Context, userID, cardID int64, cycle billing.Cycle) (*models.Card, error) {
	if err := cycle.Validate(); err != nil {
		return nil, err
	}
	card, err := s.GetCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateCardCycle(ctx, cardID, cycle.ClosingDay, cycle.DueDay); err != nil {
		return nil, err
	}
	card.ClosingDay = cycle.ClosingDay
	card.DueDay = cycle.DueDay

	s.log.WithFields(logrus.Fields{
		"card_id":     cardID,
		"closing_day": cycle.ClosingDay,
		"due_day":     cycle.DueDay,
	}).Info("Card cycle updated")
	return card, nil
}
