package repository

import (
	"context"
	"fmt"
	"time"

	"invoice-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SequenceName is the invoice_sequences row that numbers invoices.
const SequenceName = "invoice"

type IInvoiceRepository interface {
	// Create allocates the next sequence value, derives the invoice number
	// from it and inserts the invoice, all in one transaction.
	Create(ctx context.Context, invoice *models.Invoice, numberFor func(seq int64) string) error
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	GetAll(ctx context.Context) ([]*models.Invoice, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id string) error
	CountByClient(ctx context.Context, clientID string) (int, error)
}

type InvoiceRepository struct {
	db *sqlx.DB
}

func NewInvoiceRepository(db *sqlx.DB) IInvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice, numberFor func(seq int64) string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The row lock taken here serialises concurrent creators until commit.
	var seq int64
	err = tx.GetContext(ctx, &seq,
		`UPDATE invoice_sequences SET last_value = last_value + 1 WHERE name = $1 RETURNING last_value`,
		SequenceName)
	if err != nil {
		return translate("allocate invoice number", err)
	}

	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	now := time.Now()
	invoice.InvoiceNumber = numberFor(seq)
	invoice.Date = now
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	query := `
		INSERT INTO invoices (id, invoice_number, client_id, description, amount, currency,
		                      tax_type, cgst, sgst, igst, total_amount, date, due_date, status,
		                      comments, thanks_note, settings_id, created_at, updated_at)
		VALUES (:id, :invoice_number, :client_id, :description, :amount, :currency,
		        :tax_type, :cgst, :sgst, :igst, :total_amount, :date, :due_date, :status,
		        :comments, :thanks_note, :settings_id, :created_at, :updated_at)`

	if err := namedExecWithCheck(ctx, tx, "create invoice", query, execInsert, invoice); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.GetContext(ctx, &invoice, `SELECT * FROM invoices WHERE id = $1`, id); err != nil {
		return nil, translate("get invoice", err)
	}
	return &invoice, nil
}

func (r *InvoiceRepository) GetAll(ctx context.Context) ([]*models.Invoice, error) {
	invoices := []*models.Invoice{}
	if err := r.db.SelectContext(ctx, &invoices, `SELECT * FROM invoices ORDER BY date DESC`); err != nil {
		return nil, translate("list invoices", err)
	}
	return invoices, nil
}

// Update writes every mutable column. invoice_number, date and settings_id
// are fixed at creation.
func (r *InvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	invoice.UpdatedAt = time.Now()

	query := `
		UPDATE invoices SET
			client_id = :client_id,
			description = :description,
			amount = :amount,
			currency = :currency,
			tax_type = :tax_type,
			cgst = :cgst,
			sgst = :sgst,
			igst = :igst,
			total_amount = :total_amount,
			due_date = :due_date,
			status = :status,
			comments = :comments,
			thanks_note = :thanks_note,
			updated_at = :updated_at
		WHERE id = :id`

	return namedExecWithCheck(ctx, r.db, "update invoice", query, execUpdate, invoice)
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "invoices", id)
}

func (r *InvoiceRepository) CountByClient(ctx context.Context, clientID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM invoices WHERE client_id = $1`, clientID); err != nil {
		err = translate("count client invoices", err)
		if errorsIsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}
