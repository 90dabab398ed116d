package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultThanksNote = "Thank you for your business!"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Invoice struct {
	ID            string          `json:"id" db:"id"`
	InvoiceNumber string          `json:"invoice_number" db:"invoice_number"`
	ClientID      string          `json:"client_id" db:"client_id"`
	Description   string          `json:"description" db:"description"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Currency      Currency        `json:"currency" db:"currency"`
	TaxType       TaxType         `json:"tax_type" db:"tax_type"`
	CGST          decimal.Decimal `json:"cgst" db:"cgst"`
	SGST          decimal.Decimal `json:"sgst" db:"sgst"`
	IGST          decimal.Decimal `json:"igst" db:"igst"`
	TotalAmount   decimal.Decimal `json:"total_amount" db:"total_amount"`
	Date          time.Time       `json:"date" db:"date"`
	DueDate       *time.Time      `json:"due_date,omitempty" db:"due_date"`
	Status        InvoiceStatus   `json:"status" db:"status"`
	Comments      string          `json:"comments" db:"comments"`
	ThanksNote    string          `json:"thanks_note" db:"thanks_note"`
	SettingsID    *string         `json:"settings_id" db:"settings_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`

	Client   *Client   `json:"client,omitempty" db:"-"`
	Settings *Settings `json:"settings,omitempty" db:"-"`
}

// InvoiceRequest carries create and update input. Amount stays raw so both
// JSON numbers and numeric strings are accepted and reported by field name.
type InvoiceRequest struct {
	ClientID    *string         `json:"client_id"`
	Description *string         `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Currency    *Currency       `json:"currency"`
	TaxType     *TaxType        `json:"tax_type"`
	DueDate     *string         `json:"due_date"`
	Status      *InvoiceStatus  `json:"status"`
	Comments    *string         `json:"comments"`
	ThanksNote  *string         `json:"thanks_note"`
}

type InvoiceResponse struct {
	Invoice *Invoice `json:"invoice"`
	PDFPath string   `json:"pdf_path"`
}
