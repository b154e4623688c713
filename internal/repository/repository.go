package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Ping checks the database connection
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CreateAccount creates a new account in the database
func (r *Repository) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO finance.accounts (user_id, name, balance, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, account.UserID, account.Name, account.Balance, account.Currency).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// FindAccountByID retrieves an account by id
func (r *Repository) FindAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	account := &models.Account{}
	query := `
		SELECT id, user_id, name, balance, currency, created_at, updated_at
		FROM finance.accounts
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&account.ID, &account.UserID, &account.Name, &account.Balance, &account.Currency, &account.CreatedAt, &account.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

// CreateCard creates a new card in the database
func (r *Repository) CreateCard(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO finance.cards (user_id, name, closing_day, due_day, credit_limit, payment_account_id, notify_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		card.UserID, card.Name, card.ClosingDay, card.DueDay, card.Limit, card.PaymentAccountID, card.NotifyEmail,
	).Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", mapPQError(err))
	}
	return nil
}

const cardColumns = `id, user_id, name, closing_day, due_day, credit_limit, payment_account_id, notify_email, created_at, updated_at`

func scanCard(row interface{ Scan(...any) error }) (*models.Card, error) {
	card := &models.Card{}
	err := row.Scan(&card.ID, &card.UserID, &card.Name, &card.ClosingDay, &card.DueDay, &card.Limit,
		&card.PaymentAccountID, &card.NotifyEmail, &card.CreatedAt, &card.UpdatedAt)
	return card, err
}

// FindCardByID retrieves a card by id
func (r *Repository) FindCardByID(ctx context.Context, id int64) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM finance.cards WHERE id = $1`
	card, err := scanCard(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	return card, nil
}

// ListCardsByUser retrieves all cards of a user
func (r *Repository) ListCardsByUser(ctx context.Context, userID int64) ([]*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM finance.cards WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := []*models.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// UpdateCardCycle changes closing and due day. Existing invoices keep their dates.
func (r *Repository) UpdateCardCycle(ctx context.Context, id int64, closingDay, dueDay int) error {
	query := `
		UPDATE finance.cards
		SET closing_day = $2, due_day = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, closingDay, dueDay)
	if err != nil {
		return fmt.Errorf("failed to update card cycle: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update card cycle: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("card %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// mapPQError turns foreign key violations into ErrNotFound
func mapPQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return fmt.Errorf("%s: %w", pqErr.Detail, models.ErrNotFound)
	}
	return err
}
