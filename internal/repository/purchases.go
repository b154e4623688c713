package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/models"
)

// CreatePurchase stores a purchase with its installments and adds each
// installment to the invoice of its competência, creating the invoice when
// needed. The card row stays locked until commit; check sees the card limit
// and the installments booked from usageFrom onwards. Nothing is written when
// check fails or any of the invoices is no longer open.
func (r *Repository) CreatePurchase(ctx context.Context, purchase *models.Purchase, cycle billing.Cycle, usageFrom billing.Competencia, check models.LimitCheck) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var limit billing.Cents
	err = tx.QueryRowContext(ctx, `SELECT credit_limit FROM finance.cards WHERE id = $1 FOR UPDATE`, purchase.CardID).Scan(&limit)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("card %d: %w", purchase.CardID, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock card: %w", err)
	}
	if check != nil {
		booked, err := usageLines(ctx, tx, purchase.CardID, usageFrom)
		if err != nil {
			return err
		}
		if err := check(limit, booked); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO finance.purchases (card_id, description, total_amount, purchase_date, installment_count, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, query,
		purchase.CardID, purchase.Description, purchase.TotalAmount, purchase.PurchaseDate, purchase.InstallmentCount,
	).Scan(&purchase.ID, &purchase.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create purchase: %w", mapPQError(err))
	}

	for i := range purchase.Installments {
		in := &purchase.Installments[i]
		invoiceID, err := openInvoice(ctx, tx, purchase.CardID, in.Competencia, cycle)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE finance.invoices
			SET total = total + $2, updated_at = CURRENT_TIMESTAMP
			WHERE id = $1`, invoiceID, in.Amount)
		if err != nil {
			return fmt.Errorf("failed to update invoice total: %w", err)
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO finance.purchase_installments (purchase_id, invoice_id, idx, competencia, amount)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`, purchase.ID, invoiceID, in.Index, in.Competencia, in.Amount,
		).Scan(&in.ID)
		if err != nil {
			return fmt.Errorf("failed to create installment: %w", err)
		}
		in.PurchaseID = purchase.ID
		in.InvoiceID = invoiceID
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit purchase: %w", err)
	}
	return nil
}

// openInvoice returns the id of the open invoice for (card, competência),
// creating it with dates taken from cycle.
func openInvoice(ctx context.Context, tx *sql.Tx, cardID int64, comp billing.Competencia, cycle billing.Cycle) (int64, error) {
	query := `
		INSERT INTO finance.invoices (card_id, competencia, status, closing_date, due_date, created_at, updated_at)
		VALUES ($1, $2, 'open', $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (card_id, competencia) DO UPDATE SET updated_at = finance.invoices.updated_at
		RETURNING id, status`
	var (
		id     int64
		status string
	)
	err := tx.QueryRowContext(ctx, query, cardID, comp, cycle.ClosingDate(comp), cycle.DueDate(comp)).Scan(&id, &status)
	if err != nil {
		return 0, fmt.Errorf("failed to open invoice %s: %w", comp, err)
	}
	if status != models.InvoiceOpen {
		return 0, fmt.Errorf("invoice %s is %s: %w", comp, status, models.ErrInvoiceNotOpen)
	}
	return id, nil
}

const purchaseColumns = `id, card_id, description, total_amount, purchase_date, installment_count, created_at`

func scanPurchase(row interface{ Scan(...any) error }) (*models.Purchase, error) {
	p := &models.Purchase{}
	err := row.Scan(&p.ID, &p.CardID, &p.Description, &p.TotalAmount, &p.PurchaseDate, &p.InstallmentCount, &p.CreatedAt)
	return p, err
}

// FindPurchaseByID retrieves a purchase with its installments
func (r *Repository) FindPurchaseByID(ctx context.Context, id int64) (*models.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM finance.purchases WHERE id = $1`
	p, err := scanPurchase(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("purchase %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase: %w", err)
	}
	installments, err := r.listInstallments(ctx, `WHERE purchase_id = $1`, id)
	if err != nil {
		return nil, err
	}
	p.Installments = installments[id]
	return p, nil
}

// ListPurchasesByCard retrieves the purchases of a card, newest first
func (r *Repository) ListPurchasesByCard(ctx context.Context, cardID int64) ([]*models.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM finance.purchases WHERE card_id = $1 ORDER BY purchase_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	purchases := []*models.Purchase{}
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	installments, err := r.listInstallments(ctx,
		`WHERE purchase_id IN (SELECT id FROM finance.purchases WHERE card_id = $1)`, cardID)
	if err != nil {
		return nil, err
	}
	for _, p := range purchases {
		p.Installments = installments[p.ID]
	}
	return purchases, nil
}

func (r *Repository) listInstallments(ctx context.Context, where string, arg any) (map[int64][]models.PurchaseInstallment, error) {
	query := `
		SELECT id, purchase_id, invoice_id, idx, competencia, amount
		FROM finance.purchase_installments ` + where + `
		ORDER BY purchase_id, idx`
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]models.PurchaseInstallment)
	for rows.Next() {
		var in models.PurchaseInstallment
		if err := rows.Scan(&in.ID, &in.PurchaseID, &in.InvoiceID, &in.Index, &in.Competencia, &in.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		out[in.PurchaseID] = append(out[in.PurchaseID], in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	return out, nil
}

// DeletePurchase removes a purchase and takes its installments off their
// invoices. It fails with ErrInvoiceNotOpen when any of them was closed.
func (r *Repository) DeletePurchase(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT inv.id, inv.status, inv.competencia, pi.amount
		FROM finance.purchase_installments pi
		JOIN finance.invoices inv ON inv.id = pi.invoice_id
		WHERE pi.purchase_id = $1
		FOR UPDATE OF inv`, id)
	if err != nil {
		return fmt.Errorf("failed to lock invoices: %w", err)
	}
	type change struct {
		invoiceID int64
		amount    billing.Cents
	}
	var changes []change
	for rows.Next() {
		var (
			c      change
			status string
			comp   billing.Competencia
		)
		if err := rows.Scan(&c.invoiceID, &status, &comp, &c.amount); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan invoice: %w", err)
		}
		if status != models.InvoiceOpen {
			rows.Close()
			return fmt.Errorf("invoice %s is %s: %w", comp, status, models.ErrInvoiceNotOpen)
		}
		changes = append(changes, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to lock invoices: %w", err)
	}

	for _, c := range changes {
		_, err := tx.ExecContext(ctx, `
			UPDATE finance.invoices
			SET total = total - $2, updated_at = CURRENT_TIMESTAMP
			WHERE id = $1`, c.invoiceID, c.amount)
		if err != nil {
			return fmt.Errorf("failed to update invoice total: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM finance.purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("purchase %d: %w", id, models.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit purchase deletion: %w", err)
	}
	return nil
}

// ListUsageLines returns the installments of a card billed in from or later
func (r *Repository) ListUsageLines(ctx context.Context, cardID int64, from billing.Competencia) ([]billing.UsageLine, error) {
	return usageLines(ctx, r.db, cardID, from)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func usageLines(ctx context.Context, q querier, cardID int64, from billing.Competencia) ([]billing.UsageLine, error) {
	query := `
		SELECT p.id, p.description, p.purchase_date, pi.idx, pi.competencia, pi.amount
		FROM finance.purchase_installments pi
		JOIN finance.purchases p ON p.id = pi.purchase_id
		WHERE p.card_id = $1 AND pi.competencia >= $2
		ORDER BY pi.competencia, p.id, pi.idx`
	rows, err := q.QueryContext(ctx, query, cardID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage lines: %w", err)
	}
	defer rows.Close()

	lines := []billing.UsageLine{}
	for rows.Next() {
		var l billing.UsageLine
		if err := rows.Scan(&l.PurchaseID, &l.Description, &l.PurchaseDate, &l.Index, &l.Competencia, &l.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan usage line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list usage lines: %w", err)
	}
	return lines, nil
}
