package service

import (
	"context"
	"time"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/models"
)

// Repository is the persistence the service depends on. The postgres
// implementation lives in internal/repository.
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=interface.go Repository
type Repository interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	FindAccountByID(ctx context.Context, id int64) (*models.Account, error)

	CreateCard(ctx context.Context, card *models.Card) error
	FindCardByID(ctx context.Context, id int64) (*models.Card, error)
	ListCardsByUser(ctx context.Context, userID int64) ([]*models.Card, error)
	UpdateCardCycle(ctx context.Context, id int64, closingDay, dueDay int) error

	CreatePurchase(ctx context.Context, purchase *models.Purchase, cycle billing.Cycle, usageFrom billing.Competencia, check models.LimitCheck) error
	FindPurchaseByID(ctx context.Context, id int64) (*models.Purchase, error)
	ListPurchasesByCard(ctx context.Context, cardID int64) ([]*models.Purchase, error)
	DeletePurchase(ctx context.Context, id int64) error
	ListUsageLines(ctx context.Context, cardID int64, from billing.Competencia) ([]billing.UsageLine, error)

	ListInvoicesByCard(ctx context.Context, cardID int64) ([]*models.Invoice, error)
	ListInvoicesByStatus(ctx context.Context, status string) ([]*models.Invoice, error)
	FindInvoiceByID(ctx context.Context, id int64) (*models.Invoice, error)
	CloseInvoice(ctx context.Context, id int64, closedAt time.Time) (*models.Invoice, error)
	SetLateInterest(ctx context.Context, id int64, amount billing.Cents) error
	PayInvoice(ctx context.Context, invoiceID, accountID int64, date billing.Date, paidAt time.Time) (*models.Invoice, *models.Transaction, error)
}
