package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/models"
)

const invoiceColumns = `id, card_id, competencia, status, total, closed_amount, late_interest, closing_date, due_date, closed_at, paid_at, created_at, updated_at`

func scanInvoice(row interface{ Scan(...any) error }) (*models.Invoice, error) {
	inv := &models.Invoice{}
	var closedAt, paidAt sql.NullTime
	err := row.Scan(&inv.ID, &inv.CardID, &inv.Competencia, &inv.Status, &inv.Total, &inv.ClosedAmount, &inv.LateInterest,
		&inv.ClosingDate, &inv.DueDate, &closedAt, &paidAt, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if closedAt.Valid {
		inv.ClosedAt = &closedAt.Time
	}
	if paidAt.Valid {
		inv.PaidAt = &paidAt.Time
	}
	return inv, nil
}

func (r *Repository) queryInvoices(ctx context.Context, query string, args ...any) ([]*models.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := []*models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// ListInvoicesByCard retrieves the invoices of a card ordered by competência
func (r *Repository) ListInvoicesByCard(ctx context.Context, cardID int64) ([]*models.Invoice, error) {
	return r.queryInvoices(ctx,
		`SELECT `+invoiceColumns+` FROM finance.invoices WHERE card_id = $1 ORDER BY competencia`, cardID)
}

// ListInvoicesByStatus retrieves every invoice in the given status
func (r *Repository) ListInvoicesByStatus(ctx context.Context, status string) ([]*models.Invoice, error) {
	return r.queryInvoices(ctx,
		`SELECT `+invoiceColumns+` FROM finance.invoices WHERE status = $1 ORDER BY due_date, id`, status)
}

// FindInvoiceByID retrieves an invoice with its items
func (r *Repository) FindInvoiceByID(ctx context.Context, id int64) (*models.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM finance.invoices WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("invoice %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT pi.id, p.id, p.description, p.purchase_date, pi.idx, p.installment_count, pi.amount
		FROM finance.purchase_installments pi
		JOIN finance.purchases p ON p.id = pi.purchase_id
		WHERE pi.invoice_id = $1
		ORDER BY p.purchase_date, p.id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoice items: %w", err)
	}
	defer rows.Close()

	inv.Items = []models.InvoiceItem{}
	for rows.Next() {
		var item models.InvoiceItem
		if err := rows.Scan(&item.InstallmentID, &item.PurchaseID, &item.Description, &item.PurchaseDate,
			&item.Index, &item.InstallmentCount, &item.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		inv.Items = append(inv.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list invoice items: %w", err)
	}
	return inv, nil
}

// CloseInvoice moves an open invoice to closed and freezes its amount
func (r *Repository) CloseInvoice(ctx context.Context, id int64, closedAt time.Time) (*models.Invoice, error) {
	query := `
		UPDATE finance.invoices
		SET status = 'closed', closed_amount = total, closed_at = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND status = 'open'
		RETURNING ` + invoiceColumns
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, query, id, closedAt))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.transitionError(ctx, id, "close")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to close invoice: %w", err)
	}
	return inv, nil
}

// SetLateInterest records the interest owed on an overdue invoice
func (r *Repository) SetLateInterest(ctx context.Context, id int64, amount billing.Cents) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE finance.invoices
		SET late_interest = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND status = 'closed'`, id, amount)
	if err != nil {
		return fmt.Errorf("failed to set late interest: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.transitionError(ctx, id, "charge interest on")
	}
	return nil
}

// PayInvoice settles a closed invoice from a payment account: it debits the
// account, records the transaction and marks the invoice paid atomically.
func (r *Repository) PayInvoice(ctx context.Context, invoiceID, accountID int64, date billing.Date, paidAt time.Time) (*models.Invoice, *models.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	inv, err := scanInvoice(tx.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM finance.invoices WHERE id = $1 FOR UPDATE`, invoiceID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("invoice %d: %w", invoiceID, models.ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock invoice: %w", err)
	}
	if inv.Status != models.InvoiceClosed {
		return nil, nil, fmt.Errorf("invoice %d is %s: %w", invoiceID, inv.Status, models.ErrInvalidTransition)
	}

	amount := inv.AmountDue()
	res, err := tx.ExecContext(ctx, `
		UPDATE finance.accounts
		SET balance = balance - $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`, accountID, amount)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to debit account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil, fmt.Errorf("account %d: %w", accountID, models.ErrNotFound)
	}

	txn := &models.Transaction{
		AccountID:   accountID,
		InvoiceID:   &inv.ID,
		Amount:      amount,
		Type:        models.TransactionInvoicePayment,
		Description: fmt.Sprintf("Invoice %s", inv.Competencia),
		Date:        date,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO finance.transactions (account_id, invoice_id, amount, type, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`,
		txn.AccountID, txn.InvoiceID, txn.Amount, txn.Type, txn.Description, txn.Date,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	inv, err = scanInvoice(tx.QueryRowContext(ctx, `
		UPDATE finance.invoices
		SET status = 'paid', paid_at = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING `+invoiceColumns, invoiceID, paidAt))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit payment: %w", err)
	}
	return inv, txn, nil
}

// transitionError explains why a conditional update touched no row
func (r *Repository) transitionError(ctx context.Context, id int64, action string) error {
	var status string
	err := r.db.QueryRowContext(ctx, `SELECT status FROM finance.invoices WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("invoice %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read invoice status: %w", err)
	}
	return fmt.Errorf("cannot %s invoice %d while %s: %w", action, id, status, models.ErrInvalidTransition)
}
