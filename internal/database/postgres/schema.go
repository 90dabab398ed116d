package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY,
		company_name TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		email TEXT NOT NULL,
		address TEXT NOT NULL,
		gst_number TEXT NOT NULL,
		is_recurrent BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS companies (
		id UUID PRIMARY KEY,
		company_name TEXT NOT NULL,
		address TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		gst_number TEXT NOT NULL,
		pan_number TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bank_details (
		id UUID PRIMARY KEY,
		bank_name VARCHAR(100) NOT NULL,
		account_name VARCHAR(100) NOT NULL,
		account_holder VARCHAR(100) NOT NULL,
		ifsc_code VARCHAR(11) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id UUID PRIMARY KEY,
		invoice_suffix VARCHAR(20) NOT NULL UNIQUE,
		signatory_name VARCHAR(100) NOT NULL,
		stamp_image TEXT NOT NULL DEFAULT '',
		signature_image TEXT NOT NULL DEFAULT '',
		logo_image TEXT NOT NULL DEFAULT '',
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE RESTRICT,
		bank_id UUID NOT NULL REFERENCES bank_details(id) ON DELETE RESTRICT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// At most one settings row can exist.
	`CREATE UNIQUE INDEX IF NOT EXISTS settings_singleton ON settings ((true))`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY,
		invoice_number TEXT NOT NULL UNIQUE,
		client_id UUID NOT NULL REFERENCES clients(id) ON DELETE RESTRICT,
		description TEXT NOT NULL,
		amount NUMERIC(14, 2) NOT NULL CHECK (amount >= 0),
		currency VARCHAR(3) NOT NULL DEFAULT 'INR',
		tax_type VARCHAR(16) NOT NULL DEFAULT 'CGST+SGST',
		cgst NUMERIC(5, 2) NOT NULL DEFAULT 0,
		sgst NUMERIC(5, 2) NOT NULL DEFAULT 0,
		igst NUMERIC(5, 2) NOT NULL DEFAULT 0,
		total_amount NUMERIC(16, 4) NOT NULL,
		date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		due_date DATE,
		status VARCHAR(10) NOT NULL DEFAULT 'Unpaid',
		comments TEXT NOT NULL DEFAULT '',
		thanks_note TEXT NOT NULL DEFAULT '',
		settings_id UUID REFERENCES settings(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS invoices_client_id_idx ON invoices (client_id)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role VARCHAR(10) NOT NULL DEFAULT 'staff',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS invoice_sequences (
		name TEXT PRIMARY KEY,
		last_value BIGINT NOT NULL
	)`,
	// Existing installations continue numbering after their current invoice count.
	`INSERT INTO invoice_sequences (name, last_value)
		SELECT 'invoice', COUNT(*) FROM invoices
		ON CONFLICT (name) DO NOTHING`,
}

// Migrate creates the schema idempotently inside one transaction.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	log.Info().Int("statements", len(schema)).Msg("database schema is up to date")
	return nil
}
