package repository

import (
	"context"
	"fmt"
)

const schema = `
CREATE SCHEMA IF NOT EXISTS finance;

CREATE TABLE IF NOT EXISTS finance.accounts (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL,
	name       TEXT NOT NULL DEFAULT '',
	balance    NUMERIC(14,2) NOT NULL DEFAULT 0,
	currency   VARCHAR(3) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS finance.transactions (
	id          BIGSERIAL PRIMARY KEY,
	account_id  BIGINT NOT NULL REFERENCES finance.accounts(id),
	invoice_id  BIGINT,
	amount      NUMERIC(14,2) NOT NULL,
	type        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	date        DATE NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS finance.cards (
	id                 BIGSERIAL PRIMARY KEY,
	user_id            BIGINT NOT NULL,
	name               TEXT NOT NULL,
	closing_day        SMALLINT NOT NULL CHECK (closing_day BETWEEN 1 AND 31),
	due_day            SMALLINT NOT NULL CHECK (due_day BETWEEN 1 AND 31),
	credit_limit       NUMERIC(14,2) NOT NULL,
	payment_account_id BIGINT NOT NULL REFERENCES finance.accounts(id),
	notify_email       TEXT NOT NULL DEFAULT '',
	created_at         TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS finance.invoices (
	id            BIGSERIAL PRIMARY KEY,
	card_id       BIGINT NOT NULL REFERENCES finance.cards(id),
	competencia   DATE NOT NULL CHECK (EXTRACT(DAY FROM competencia) = 1),
	status        TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed', 'paid')),
	total         NUMERIC(14,2) NOT NULL DEFAULT 0,
	closed_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
	late_interest NUMERIC(14,2) NOT NULL DEFAULT 0,
	closing_date  DATE NOT NULL,
	due_date      DATE NOT NULL,
	closed_at     TIMESTAMPTZ,
	paid_at       TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (card_id, competencia)
);

CREATE TABLE IF NOT EXISTS finance.purchases (
	id                BIGSERIAL PRIMARY KEY,
	card_id           BIGINT NOT NULL REFERENCES finance.cards(id),
	description       TEXT NOT NULL,
	total_amount      NUMERIC(14,2) NOT NULL CHECK (total_amount > 0),
	purchase_date     DATE NOT NULL,
	installment_count INTEGER NOT NULL CHECK (installment_count >= 1),
	created_at        TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS finance.purchase_installments (
	id          BIGSERIAL PRIMARY KEY,
	purchase_id BIGINT NOT NULL REFERENCES finance.purchases(id) ON DELETE CASCADE,
	invoice_id  BIGINT NOT NULL REFERENCES finance.invoices(id),
	idx         INTEGER NOT NULL,
	competencia DATE NOT NULL,
	amount      NUMERIC(14,2) NOT NULL,
	UNIQUE (purchase_id, idx),
	UNIQUE (purchase_id, competencia)
);

CREATE INDEX IF NOT EXISTS idx_invoices_status ON finance.invoices (status);
CREATE INDEX IF NOT EXISTS idx_installments_invoice ON finance.purchase_installments (invoice_id);
`

// Migrate creates the schema when missing.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
