package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"invoice-service/internal/database/minio"
	"invoice-service/internal/email"
	"invoice-service/internal/logger"
	"invoice-service/internal/models"
	"invoice-service/internal/repository"
	"invoice-service/internal/template"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PublicInvoicePath is the URL prefix rendered documents are served under.
const PublicInvoicePath = "/invoices/"

const dueDateLayout = "2006-01-02"

type IInvoiceService interface {
	CreateInvoice(ctx context.Context, req models.InvoiceRequest) (*models.InvoiceResponse, error)
	GetAllInvoices(ctx context.Context) ([]*models.Invoice, error)
	GetInvoiceByID(ctx context.Context, id string) (*models.Invoice, error)
	UpdateInvoice(ctx context.Context, id string, req models.InvoiceRequest) (*models.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
	// EmailInvoice sends the rendered document to the invoice's client and
	// returns the recipient address.
	EmailInvoice(ctx context.Context, id string) (string, error)
}

type InvoiceService struct {
	invoiceRepo  repository.IInvoiceRepository
	clientRepo   repository.IClientRepository
	settingsRepo repository.ISettingsRepository
	companyRepo  repository.ICompanyRepository
	bankRepo     repository.IBankDetailRepository
	renderer     IInvoiceRenderer
	mailer       IEmailSender
	archive      IDocumentArchive
	log          zerolog.Logger
}

func NewInvoiceService(
	invoiceRepo repository.IInvoiceRepository,
	clientRepo repository.IClientRepository,
	settingsRepo repository.ISettingsRepository,
	companyRepo repository.ICompanyRepository,
	bankRepo repository.IBankDetailRepository,
	renderer IInvoiceRenderer,
	mailer IEmailSender,
	archive IDocumentArchive,
) *InvoiceService {
	if archive == nil {
		archive = NoopArchive{}
	}
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		settingsRepo: settingsRepo,
		companyRepo:  companyRepo,
		bankRepo:     bankRepo,
		renderer:     renderer,
		mailer:       mailer,
		archive:      archive,
		log:          logger.WithComponent("invoice-service"),
	}
}

func (s *InvoiceService) CreateInvoice(ctx context.Context, req models.InvoiceRequest) (*models.InvoiceResponse, error) {
	const op = "CreateInvoice"

	var missing []string
	if req.ClientID == nil || strings.TrimSpace(*req.ClientID) == "" {
		missing = append(missing, "client_id")
	}
	if req.Description == nil || strings.TrimSpace(*req.Description) == "" {
		missing = append(missing, "description")
	}
	if isAbsent(req.Amount) {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return nil, validationError(op, "Missing required fields: "+strings.Join(missing, ", "))
	}

	invoice := &models.Invoice{
		ClientID:    strings.TrimSpace(*req.ClientID),
		Description: strings.TrimSpace(*req.Description),
		Currency:    models.CurrencyINR,
		Status:      models.StatusUnpaid,
		ThanksNote:  models.DefaultThanksNote,
	}
	if err := applyInvoiceFields(op, invoice, req, ""); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.GetByID(ctx, invoice.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validationError(op, "Invalid client_id. Client does not exist")
		}
		return nil, repoError(op, "Client", err)
	}

	settings, err := s.currentSettings(ctx, op)
	if err != nil {
		return nil, err
	}
	invoice.SettingsID = &settings.ID

	derive(invoice)

	err = s.invoiceRepo.Create(ctx, invoice, func(seq int64) string {
		return FormatInvoiceNumber(settings.InvoiceSuffix, seq)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(KindConflict, op, "Failed to create invoice: invoice number already in use", err)
		}
		return nil, repoError(op, "Invoice", err)
	}

	// Reload so the response and the document carry stored values.
	stored, err := s.invoiceRepo.GetByID(ctx, invoice.ID)
	if err != nil {
		return nil, repoError(op, "Invoice", err)
	}
	stored.Client = client
	stored.Settings = settings

	s.log.Info().Str("invoice_number", stored.InvoiceNumber).Str("client_id", stored.ClientID).Msg("invoice created")
	return s.renderAndRespond(ctx, op, stored)
}

func (s *InvoiceService) GetAllInvoices(ctx context.Context) ([]*models.Invoice, error) {
	const op = "GetAllInvoices"

	invoices, err := s.invoiceRepo.GetAll(ctx)
	if err != nil {
		return nil, repoError(op, "Invoice", err)
	}

	cache := newPopulateCache()
	for _, inv := range invoices {
		if err := s.populate(ctx, inv, cache); err != nil {
			return nil, repoError(op, "Invoice", err)
		}
	}
	return invoices, nil
}

func (s *InvoiceService) GetInvoiceByID(ctx context.Context, id string) (*models.Invoice, error) {
	const op = "GetInvoiceByID"

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(op, "Invoice", err)
	}
	if err := s.populate(ctx, invoice, newPopulateCache()); err != nil {
		return nil, repoError(op, "Invoice", err)
	}
	return invoice, nil
}

// UpdateInvoice applies the supplied fields, recomputes the derived tax
// fields and re-renders the document.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, req models.InvoiceRequest) (*models.InvoiceResponse, error) {
	const op = "UpdateInvoice"

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(op, "Invoice", err)
	}

	if req.ClientID != nil {
		invoice.ClientID = strings.TrimSpace(*req.ClientID)
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, validationError(op, "description cannot be empty")
		}
		invoice.Description = description
	}
	if err := applyInvoiceFields(op, invoice, req, invoice.TaxType); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.GetByID(ctx, invoice.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validationError(op, "Invalid client_id. Client does not exist")
		}
		return nil, repoError(op, "Client", err)
	}
	settings, err := s.invoiceSettings(ctx, op, invoice)
	if err != nil {
		return nil, err
	}

	derive(invoice)

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, repoError(op, "Invoice", err)
	}
	invoice.Client = client
	invoice.Settings = settings

	return s.renderAndRespond(ctx, op, invoice)
}

// DeleteInvoice removes the document before the record. File removal is
// best effort; the record removal decides the outcome.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) error {
	const op = "DeleteInvoice"

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return repoError(op, "Invoice", err)
	}

	path := s.renderer.PathFor(invoice.InvoiceNumber)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Warn().Str("path", path).Msg("invoice document not found on delete")
		} else {
			s.log.Warn().Err(err).Str("path", path).Msg("failed to delete invoice document")
		}
	}
	if err := s.archive.DeleteFile(ctx, s.objectName(invoice)); err != nil {
		s.log.Warn().Err(err).Str("invoice_number", invoice.InvoiceNumber).Msg("failed to delete archived invoice")
	}

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return repoError(op, "Invoice", err)
	}
	s.log.Info().Str("invoice_number", invoice.InvoiceNumber).Msg("invoice deleted")
	return nil
}

func (s *InvoiceService) EmailInvoice(ctx context.Context, id string) (string, error) {
	const op = "EmailInvoice"

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return "", repoError(op, "Invoice", err)
	}
	if err := s.populate(ctx, invoice, newPopulateCache()); err != nil {
		return "", repoError(op, "Invoice", err)
	}
	if invoice.Client == nil || strings.TrimSpace(invoice.Client.Email) == "" {
		return "", validationError(op, "Client email not found")
	}
	if invoice.Settings == nil || invoice.Settings.Company == nil || invoice.Settings.Bank == nil {
		return "", validationError(op, "Settings not found. Please configure settings first")
	}

	path := s.renderer.PathFor(invoice.InvoiceNumber)
	if _, err := os.Stat(path); err != nil {
		if path, err = s.renderer.Render(invoice); err != nil {
			return "", internalError(op, "Failed to generate invoice PDF", err)
		}
	}

	company := invoice.Settings.Company.CompanyName
	msg := email.Message{
		FromName: company,
		To:       invoice.Client.Email,
		Subject:  template.InvoiceSubject(invoice.InvoiceNumber, company),
		TextBody: template.InvoiceTextTemplate(invoice.Client.CompanyName, invoice.ThanksNote, company),
		HTMLBody: template.InvoiceHTMLTemplate(invoice.Client.CompanyName, invoice.ThanksNote, company),
		Attachments: []email.Attachment{
			{Filename: s.renderer.DocumentName(invoice.InvoiceNumber), Path: path},
		},
	}
	if err := s.mailer.Send(msg); err != nil {
		return "", internalError(op, "Failed to send email", err)
	}

	s.log.Info().Str("invoice_number", invoice.InvoiceNumber).Str("to", invoice.Client.Email).Msg("invoice emailed")
	return invoice.Client.Email, nil
}

func (s *InvoiceService) renderAndRespond(ctx context.Context, op string, invoice *models.Invoice) (*models.InvoiceResponse, error) {
	path, err := s.renderer.Render(invoice)
	if err != nil {
		return nil, internalError(op, "Invoice saved but PDF generation failed", err)
	}
	if err := s.archive.FUploadFile(ctx, s.objectName(invoice), path, "application/pdf"); err != nil {
		s.log.Warn().Err(err).Str("invoice_number", invoice.InvoiceNumber).Msg("failed to archive invoice document")
	}
	return &models.InvoiceResponse{
		Invoice: invoice,
		PDFPath: PublicInvoicePath + s.renderer.DocumentName(invoice.InvoiceNumber),
	}, nil
}

func (s *InvoiceService) objectName(invoice *models.Invoice) string {
	return minio.InvoicePrefix + s.renderer.DocumentName(invoice.InvoiceNumber)
}

// currentSettings loads the singleton used for new invoices.
func (s *InvoiceService) currentSettings(ctx context.Context, op string) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validationError(op, "Settings not found. Please configure settings first")
		}
		return nil, repoError(op, "Settings", err)
	}
	if err := s.populateSettings(ctx, settings); err != nil {
		return nil, settingsLoadError(op, err)
	}
	return settings, nil
}

// invoiceSettings loads the settings the invoice references.
func (s *InvoiceService) invoiceSettings(ctx context.Context, op string, invoice *models.Invoice) (*models.Settings, error) {
	if invoice.SettingsID == nil {
		return nil, validationError(op, "Settings not found. Please configure settings first")
	}
	settings, err := s.settingsRepo.GetByID(ctx, *invoice.SettingsID)
	if err != nil {
		return nil, settingsLoadError(op, err)
	}
	if err := s.populateSettings(ctx, settings); err != nil {
		return nil, settingsLoadError(op, err)
	}
	return settings, nil
}

func settingsLoadError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return validationError(op, "Settings not found. Please configure settings first")
	}
	return repoError(op, "Settings", err)
}

func (s *InvoiceService) populateSettings(ctx context.Context, settings *models.Settings) error {
	company, err := s.companyRepo.GetByID(ctx, settings.CompanyID)
	if err != nil {
		return err
	}
	bank, err := s.bankRepo.GetByID(ctx, settings.BankID)
	if err != nil {
		return err
	}
	settings.Company = company
	settings.Bank = bank
	return nil
}

type populateCache struct {
	clients  map[string]*models.Client
	settings map[string]*models.Settings
}

func newPopulateCache() *populateCache {
	return &populateCache{
		clients:  make(map[string]*models.Client),
		settings: make(map[string]*models.Settings),
	}
}

// populate attaches client and settings for reads. References that no
// longer resolve are left nil rather than failing the read.
func (s *InvoiceService) populate(ctx context.Context, invoice *models.Invoice, cache *populateCache) error {
	client, ok := cache.clients[invoice.ClientID]
	if !ok {
		c, err := s.clientRepo.GetByID(ctx, invoice.ClientID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		client = c
		cache.clients[invoice.ClientID] = client
	}
	invoice.Client = client

	if invoice.SettingsID == nil {
		return nil
	}
	settings, ok := cache.settings[*invoice.SettingsID]
	if !ok {
		st, err := s.settingsRepo.GetByID(ctx, *invoice.SettingsID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			st = nil
		case err != nil:
			return err
		default:
			if err := s.populateSettings(ctx, st); err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
		}
		settings = st
		cache.settings[*invoice.SettingsID] = settings
	}
	invoice.Settings = settings
	return nil
}

// applyInvoiceFields copies the optional request fields onto invoice.
// fallbackTax is the tax type kept when the request does not name one.
func applyInvoiceFields(op string, invoice *models.Invoice, req models.InvoiceRequest, fallbackTax models.TaxType) error {
	if !isAbsent(req.Amount) {
		amount, err := parseAmount(req.Amount)
		if err != nil {
			return validationError(op, err.Error())
		}
		invoice.Amount = amount
	}
	if req.Currency != nil {
		if !req.Currency.Valid() {
			return validationError(op, "currency must be one of: INR, USD")
		}
		invoice.Currency = *req.Currency
	}

	taxType := fallbackTax
	if req.TaxType != nil {
		if !req.TaxType.Valid() {
			return validationError(op, "tax_type must be one of: IGST, CGST+SGST, NONE")
		}
		taxType = *req.TaxType
	}
	invoice.TaxType = ResolveTaxType(invoice.Currency, taxType)

	if req.Status != nil {
		if !req.Status.Valid() {
			return validationError(op, "status must be one of: Paid, Unpaid")
		}
		invoice.Status = *req.Status
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return validationError(op, err.Error())
		}
		invoice.DueDate = dueDate
	}
	if req.Comments != nil {
		invoice.Comments = strings.TrimSpace(*req.Comments)
	}
	if req.ThanksNote != nil {
		invoice.ThanksNote = strings.TrimSpace(*req.ThanksNote)
		if invoice.ThanksNote == "" {
			invoice.ThanksNote = models.DefaultThanksNote
		}
	}
	return nil
}

// derive sets the tax rates and total from amount, currency and tax type.
func derive(invoice *models.Invoice) {
	rates := DeriveTaxRates(invoice.TaxType)
	invoice.CGST = rates.CGST
	invoice.SGST = rates.SGST
	invoice.IGST = rates.IGST
	invoice.TotalAmount = CalculateTotal(invoice.Amount, invoice.Currency, invoice.TaxType, rates)
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// parseAmount accepts a JSON number or a numeric string with at most two
// decimal places.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	invalid := errors.New("amount must be a non-negative number")

	text := string(bytes.TrimSpace(raw))
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, invalid
		}
		text = strings.TrimSpace(s)
	}
	amount, err := decimal.NewFromString(text)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, invalid
	}
	if !amount.Equal(amount.Truncate(2)) {
		return decimal.Zero, errors.New("amount must have at most 2 decimal places")
	}
	return amount, nil
}

// parseDueDate accepts YYYY-MM-DD or RFC 3339; an empty string clears it.
func parseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{dueDateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("due_date must be a date in YYYY-MM-DD format")
}
