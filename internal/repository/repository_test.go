package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/models"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/repository"
)

// newTestRepository connects to TEST_DB_CONN and applies the schema. Each
// test works under its own user id so runs do not interfere.
func newTestRepository(t *testing.T) (*repository.Repository, int64) {
	t.Helper()
	conn := os.Getenv("TEST_DB_CONN")
	if conn == "" {
		t.Skip("TEST_DB_CONN not set")
	}
	db, err := sql.Open("postgres", conn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo, time.Now().UnixNano()
}

func setupCard(t *testing.T, repo *repository.Repository, userID int64) (*models.Account, *models.Card) {
	t.Helper()
	ctx := context.Background()
	account := &models.Account{UserID: userID, Name: "Checking", Balance: 500000, Currency: "BRL"}
	require.NoError(t, repo.CreateAccount(ctx, account))
	card := &models.Card{UserID: userID, Name: "Nubank", ClosingDay: 5, DueDay: 15, Limit: 500000, PaymentAccountID: account.ID}
	require.NoError(t, repo.CreateCard(ctx, card))
	return account, card
}

func newPurchase(cardID int64, description string, date billing.Date, total string, count int) *models.Purchase {
	installments, err := billing.ExpandInstallments(date, 5, decimal.RequireFromString(total), count)
	if err != nil {
		panic(err)
	}
	p := &models.Purchase{
		CardID:           cardID,
		Description:      description,
		TotalAmount:      billing.Sum(installments),
		PurchaseDate:     date,
		InstallmentCount: count,
	}
	for _, in := range installments {
		p.Installments = append(p.Installments, models.PurchaseInstallment{Index: in.Index, Competencia: in.Competencia, Amount: in.Amount})
	}
	return p
}

func TestRepository_Cards(t *testing.T) {
	repo, userID := newTestRepository(t)
	ctx := context.Background()
	_, card := setupCard(t, repo, userID)

	found, err := repo.FindCardByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.Limit, found.Limit)
	assert.Equal(t, 5, found.ClosingDay)

	require.NoError(t, repo.UpdateCardCycle(ctx, card.ID, 28, 5))
	found, err = repo.FindCardByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.Cycle{ClosingDay: 28, DueDay: 5}, found.Cycle())

	cards, err := repo.ListCardsByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, cards, 1)

	_, err = repo.FindCardByID(ctx, -1)
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = repo.CreateCard(ctx, &models.Card{UserID: userID, Name: "Ghost", ClosingDay: 5, DueDay: 15, Limit: 100, PaymentAccountID: -1})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRepository_PurchaseLifecycle(t *testing.T) {
	repo, userID := newTestRepository(t)
	ctx := context.Background()
	account, card := setupCard(t, repo, userID)
	cycle := billing.Cycle{ClosingDay: 5, DueDay: 15}
	open := billing.MustParseCompetencia("2024-12-01")

	purchase := newPurchase(card.ID, "Notebook", billing.MustParseDate("2024-11-10"), "1000.00", 3)
	require.NoError(t, repo.CreatePurchase(ctx, purchase, cycle, open, nil))
	require.NotZero(t, purchase.ID)

	invoices, err := repo.ListInvoicesByCard(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, invoices, 3)
	assert.Equal(t, "2024-12-01", invoices[0].Competencia.String())
	assert.Equal(t, billing.Cents(33334), invoices[0].Total)
	assert.Equal(t, billing.MustParseDate("2024-12-05"), invoices[0].ClosingDate)
	assert.Equal(t, billing.MustParseDate("2024-12-15"), invoices[0].DueDate)

	// A second purchase in the same cycle reuses the invoice.
	second := newPurchase(card.ID, "Book", billing.MustParseDate("2024-11-20"), "50.00", 1)
	require.NoError(t, repo.CreatePurchase(ctx, second, cycle, open, nil))
	assert.Equal(t, invoices[0].ID, second.Installments[0].InvoiceID)

	lines, err := repo.ListUsageLines(ctx, card.ID, billing.MustParseCompetencia("2025-01-01"))
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	inv, err := repo.FindInvoiceByID(ctx, invoices[0].ID)
	require.NoError(t, err)
	assert.Len(t, inv.Items, 2)
	assert.Equal(t, billing.Cents(38334), inv.Total)

	closed, err := repo.CloseInvoice(ctx, inv.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceClosed, closed.Status)
	assert.Equal(t, billing.Cents(38334), closed.ClosedAmount)

	_, err = repo.CloseInvoice(ctx, inv.ID, time.Now())
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	// Purchases landing on a closed invoice are rejected without partial writes.
	late := newPurchase(card.ID, "Phone", billing.MustParseDate("2024-11-30"), "10.00", 1)
	assert.ErrorIs(t, repo.CreatePurchase(ctx, late, cycle, open, nil), models.ErrInvoiceNotOpen)
	purchases, err := repo.ListPurchasesByCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Len(t, purchases, 2)

	assert.ErrorIs(t, repo.DeletePurchase(ctx, purchase.ID), models.ErrInvoiceNotOpen)

	require.NoError(t, repo.SetLateInterest(ctx, inv.ID, 575))
	paid, txn, err := repo.PayInvoice(ctx, inv.ID, account.ID, billing.MustParseDate("2024-12-20"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, paid.Status)
	assert.Equal(t, billing.Cents(38909), txn.Amount)
	assert.Equal(t, models.TransactionInvoicePayment, txn.Type)

	acc, err := repo.FindAccountByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.Cents(500000-38909), acc.Balance)

	_, _, err = repo.PayInvoice(ctx, inv.ID, account.ID, billing.MustParseDate("2024-12-20"), time.Now())
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestRepository_DeletePurchase(t *testing.T) {
	repo, userID := newTestRepository(t)
	ctx := context.Background()
	_, card := setupCard(t, repo, userID)

	purchase := newPurchase(card.ID, "Notebook", billing.MustParseDate("2024-11-10"), "100.00", 2)
	require.NoError(t, repo.CreatePurchase(ctx, purchase, billing.Cycle{ClosingDay: 5, DueDay: 15}, billing.MustParseCompetencia("2024-12-01"), nil))
	require.NoError(t, repo.DeletePurchase(ctx, purchase.ID))

	invoices, err := repo.ListInvoicesByCard(ctx, card.ID)
	require.NoError(t, err)
	for _, inv := range invoices {
		assert.Equal(t, billing.Cents(0), inv.Total)
	}

	_, err = repo.FindPurchaseByID(ctx, purchase.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, repo.DeletePurchase(ctx, purchase.ID), models.ErrNotFound)
}

// fitsLimit rejects a purchase when the booked installments plus its own
// amount go above the card limit.
func fitsLimit(p *models.Purchase) models.LimitCheck {
	return func(limit billing.Cents, booked []billing.UsageLine) error {
		total := p.TotalAmount
		for _, l := range booked {
			total += l.Amount
		}
		if total > limit {
			return fmt.Errorf("usage %s above %s: %w", total, limit, models.ErrLimitExceeded)
		}
		return nil
	}
}

func TestRepository_CreatePurchaseLimitCheck(t *testing.T) {
	repo, userID := newTestRepository(t)
	ctx := context.Background()
	_, card := setupCard(t, repo, userID)
	cycle := billing.Cycle{ClosingDay: 5, DueDay: 15}
	open := billing.MustParseCompetencia("2024-12-01")

	first := newPurchase(card.ID, "TV", billing.MustParseDate("2024-11-10"), "3000.00", 1)
	require.NoError(t, repo.CreatePurchase(ctx, first, cycle, open, func(limit billing.Cents, booked []billing.UsageLine) error {
		assert.Equal(t, card.Limit, limit)
		assert.Empty(t, booked)
		return nil
	}))

	second := newPurchase(card.ID, "Sofa", billing.MustParseDate("2024-11-10"), "2500.00", 1)
	err := repo.CreatePurchase(ctx, second, cycle, open, fitsLimit(second))
	assert.ErrorIs(t, err, models.ErrLimitExceeded)

	purchases, err := repo.ListPurchasesByCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Len(t, purchases, 1)

	assert.ErrorIs(t, repo.CreatePurchase(ctx, newPurchase(-1, "Ghost", billing.MustParseDate("2024-11-10"), "1.00", 1), cycle, open, nil), models.ErrNotFound)
}

func TestRepository_ConcurrentPurchasesShareLimit(t *testing.T) {
	repo, userID := newTestRepository(t)
	ctx := context.Background()
	_, card := setupCard(t, repo, userID)
	cycle := billing.Cycle{ClosingDay: 5, DueDay: 15}
	open := billing.MustParseCompetencia("2024-12-01")

	// each purchase fits the 5000.00 limit alone, both together do not
	const workers = 4
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := newPurchase(card.ID, fmt.Sprintf("TV %d", i), billing.MustParseDate("2024-11-10"), "3000.00", 1)
			errs[i] = repo.CreatePurchase(ctx, p, cycle, open, fitsLimit(p))
		}(i)
	}
	wg.Wait()

	var created, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, models.ErrLimitExceeded):
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, rejected)

	lines, err := repo.ListUsageLines(ctx, card.ID, open)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, billing.Cents(300000), lines[0].Amount)
}
