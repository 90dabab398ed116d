package services

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"invoice-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invoiceFixture struct {
	svc      *InvoiceService
	invoices *fakeInvoiceRepo
	clients  *fakeClientRepo
	settings *fakeSettingsRepo
	renderer *fakeRenderer
	mailer   *fakeMailer
	archive  *recordingArchive
	outDir   string
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	renderer, outDir, _ := newTestRenderer(t)

	stored := sampleSettings()
	stored.Company, stored.Bank = nil, nil

	fx := &invoiceFixture{
		invoices: newFakeInvoiceRepo(),
		clients:  newFakeClientRepo(sampleClient()),
		settings: &fakeSettingsRepo{settings: stored},
		renderer: &fakeRenderer{PDFRenderer: renderer},
		mailer:   &fakeMailer{},
		archive:  &recordingArchive{},
		outDir:   outDir,
	}
	fx.svc = NewInvoiceService(
		fx.invoices, fx.clients, fx.settings,
		newFakeCompanyRepo(sampleCompany()), newFakeBankRepo(sampleBank()),
		fx.renderer, fx.mailer, fx.archive,
	)
	return fx
}

func ptr[T any](v T) *T {
	return &v
}

func baseRequest() models.InvoiceRequest {
	return models.InvoiceRequest{
		ClientID:    ptr("client-1"),
		Description: ptr("Consulting services"),
		Amount:      json.RawMessage(`1000`),
	}
}

func TestCreateInvoice_DefaultsAndDocument(t *testing.T) {
	fx := newInvoiceFixture(t)

	resp, err := fx.svc.CreateInvoice(t.Context(), baseRequest())

	require.NoError(t, err)
	inv := resp.Invoice
	assert.Equal(t, "ACME-001", inv.InvoiceNumber)
	assert.Equal(t, models.CurrencyINR, inv.Currency)
	assert.Equal(t, models.TaxCGSTSGST, inv.TaxType)
	assert.Equal(t, models.StatusUnpaid, inv.Status)
	assert.Equal(t, models.DefaultThanksNote, inv.ThanksNote)
	assert.Equal(t, "9", inv.CGST.String())
	assert.Equal(t, "9", inv.SGST.String())
	assert.Equal(t, "1180.00", inv.TotalAmount.StringFixed(2))
	require.NotNil(t, inv.SettingsID)
	assert.Equal(t, "settings-1", *inv.SettingsID)

	require.NotNil(t, inv.Client)
	require.NotNil(t, inv.Settings)
	assert.Equal(t, "Acme Consulting", inv.Settings.Company.CompanyName)

	assert.Equal(t, "/invoices/ACME-001.pdf", resp.PDFPath)
	assert.FileExists(t, filepath.Join(fx.outDir, "ACME-001.pdf"))
	assert.Equal(t, []string{"invoices/ACME-001.pdf"}, fx.archive.uploaded)
}

func TestCreateInvoice_SequentialNumbers(t *testing.T) {
	fx := newInvoiceFixture(t)

	var numbers []string
	for i := 0; i < 3; i++ {
		resp, err := fx.svc.CreateInvoice(t.Context(), baseRequest())
		require.NoError(t, err)
		numbers = append(numbers, resp.Invoice.InvoiceNumber)
	}

	assert.Equal(t, []string{"ACME-001", "ACME-002", "ACME-003"}, numbers)
}

func TestCreateInvoice_USDForcesNoTax(t *testing.T) {
	fx := newInvoiceFixture(t)
	req := baseRequest()
	req.Currency = ptr(models.CurrencyUSD)
	req.TaxType = ptr(models.TaxIGST)
	req.Amount = json.RawMessage(`"500"`)

	resp, err := fx.svc.CreateInvoice(t.Context(), req)

	require.NoError(t, err)
	assert.Equal(t, models.TaxNone, resp.Invoice.TaxType)
	assert.True(t, resp.Invoice.IGST.IsZero())
	assert.Equal(t, "500.00", resp.Invoice.TotalAmount.StringFixed(2))
}

func TestCreateInvoice_IGST(t *testing.T) {
	fx := newInvoiceFixture(t)
	req := baseRequest()
	req.TaxType = ptr(models.TaxIGST)

	resp, err := fx.svc.CreateInvoice(t.Context(), req)

	require.NoError(t, err)
	assert.Equal(t, "18", resp.Invoice.IGST.String())
	assert.True(t, resp.Invoice.CGST.IsZero())
	assert.Equal(t, "1180.00", resp.Invoice.TotalAmount.StringFixed(2))
}

func TestCreateInvoice_UnknownClient(t *testing.T) {
	fx := newInvoiceFixture(t)
	req := baseRequest()
	req.ClientID = ptr("nope")

	_, err := fx.svc.CreateInvoice(t.Context(), req)

	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, MessageOf(err), "Invalid client_id")
	assert.Zero(t, fx.invoices.count())
	assert.Zero(t, fx.renderer.renders)
}

func TestCreateInvoice_MissingFields(t *testing.T) {
	fx := newInvoiceFixture(t)

	_, err := fx.svc.CreateInvoice(t.Context(), models.InvoiceRequest{ClientID: ptr("client-1")})

	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Missing required fields: description, amount", MessageOf(err))
	assert.Zero(t, fx.invoices.count())
}

func TestCreateInvoice_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.InvoiceRequest)
		want   string
	}{
		{"negative amount", func(r *models.InvoiceRequest) { r.Amount = json.RawMessage(`-5`) }, "amount"},
		{"non-numeric amount", func(r *models.InvoiceRequest) { r.Amount = json.RawMessage(`"ten"`) }, "amount"},
		{"sub-paisa amount", func(r *models.InvoiceRequest) { r.Amount = json.RawMessage(`1000.005`) }, "at most 2 decimal places"},
		{"bad currency", func(r *models.InvoiceRequest) { r.Currency = ptr(models.Currency("EUR")) }, "currency"},
		{"bad tax type", func(r *models.InvoiceRequest) { r.TaxType = ptr(models.TaxType("VAT")) }, "tax_type"},
		{"bad status", func(r *models.InvoiceRequest) { r.Status = ptr(models.InvoiceStatus("Overdue")) }, "status"},
		{"bad due date", func(r *models.InvoiceRequest) { r.DueDate = ptr("next week") }, "due_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newInvoiceFixture(t)
			req := baseRequest()
			tt.mutate(&req)

			_, err := fx.svc.CreateInvoice(t.Context(), req)

			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
			assert.Contains(t, MessageOf(err), tt.want)
			assert.Zero(t, fx.invoices.count())
		})
	}
}

func TestCreateInvoice_NoSettings(t *testing.T) {
	fx := newInvoiceFixture(t)
	fx.settings.settings = nil

	_, err := fx.svc.CreateInvoice(t.Context(), baseRequest())

	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, MessageOf(err), "Settings not found")
	assert.Zero(t, fx.invoices.count())
}

func TestCreateInvoice_RenderFailureKeepsRecord(t *testing.T) {
	fx := newInvoiceFixture(t)
	fx.renderer.err = errors.New("disk full")

	_, err := fx.svc.CreateInvoice(t.Context(), baseRequest())

	require.Error(t, err)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, 1, fx.invoices.count())
}

func TestCreateInvoice_DueDateFormats(t *testing.T) {
	fx := newInvoiceFixture(t)
	req := baseRequest()
	req.DueDate = ptr("2026-12-01")

	resp, err := fx.svc.CreateInvoice(t.Context(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Invoice.DueDate)
	assert.Equal(t, "2026-12-01", resp.Invoice.DueDate.Format("2006-01-02"))

	req.DueDate = ptr("2026-12-02T00:00:00Z")
	resp, err = fx.svc.CreateInvoice(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, "2026-12-02", resp.Invoice.DueDate.Format("2006-01-02"))
}

func TestUpdateInvoice_RecomputesAndRerenders(t *testing.T) {
	fx := newInvoiceFixture(t)
	created, err := fx.svc.CreateInvoice(t.Context(), baseRequest())
	require.NoError(t, err)
	renders := fx.renderer.renders

	resp, err := fx.svc.UpdateInvoice(t.Context(), created.Invoice.ID, models.InvoiceRequest{
		Amount:  json.RawMessage(`2000`),
		TaxType: ptr(models.TaxIGST),
		Status:  ptr(models.StatusPaid),
	})

	require.NoError(t, err)
	inv := resp.Invoice
	assert.Equal(t, "ACME-001", inv.InvoiceNumber)
	assert.Equal(t, "Consulting services", inv.Description)
	assert.Equal(t, models.TaxIGST, inv.TaxType)
	assert.Equal(t, models.StatusPaid, inv.Status)
	assert.Equal(t, "2360.00", inv.TotalAmount.StringFixed(2))
	assert.Equal(t, renders+1, fx.renderer.renders)

	stored, err := fx.invoices.GetByID(t.Context(), created.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "2360.00", stored.TotalAmount.StringFixed(2))
}

func TestUpdateInvoice_SwitchToUSDDropsTax(t *testing.T) {
	fx := newInvoiceFixture(t)
	created, err := fx.svc.CreateInvoice(t.Context(), baseRequest())
	require.NoError(t, err)

	resp, err := fx.svc.UpdateInvoice(t.Context(), created.Invoice.ID, models.InvoiceRequest{
		Currency: ptr(models.CurrencyUSD),
	})

	require.NoError(t, err)
	assert.Equal(t, models.TaxNone, resp.Invoice.TaxType)
	assert.Equal(t, "1000.00", resp.Invoice.TotalAmount.StringFixed(2))
}

func TestUpdateInvoice_Errors(t *testing.T) {
	fx := newInvoiceFixture(t)
	created, err := fx.svc.CreateInvoice(t.Context(), baseRequest())
	require.NoError(t, err)

	_, err = fx.svc.UpdateInvoice(t.Context(), "missing", models.InvoiceRequest{})
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = fx.svc.UpdateInvoice(t.Context(), created.Invoice.ID, models.InvoiceRequest{ClientID: ptr("ghost")})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = fx.svc.UpdateInvoice(t.Context(), created.Invoice.ID, models.InvoiceRequest{Description: ptr("  ")})
	assert.Equal(t, KindValidation, KindOf(err))

	fx.settings.settings = nil
	_, err = fx.svc.UpdateInvoice(t.Context(), created.Invoice.ID, models.InvoiceRequest{Status: ptr(models.StatusPaid)})
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, MessageOf(err), "Settings not found")

	stored, err := fx.invoices.GetByID(t.Context(), created.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnpaid, stored.Status)
}

func TestDeleteInvoice_RemovesDocument(t *testing.T) {
	fx := newInvoiceFixture(t)
	created, err := fx.svc.CreateInvoice(t.Context(), baseRequest())
	require.NoError(t, err)
	path := filepath.Join(fx.outDir, "ACME-001.pdf")
	require.FileExists(t, path)

	require.NoError(t, fx.svc.DeleteInvoice(t.Context(), created.Invoice.ID))

	assert.NoFileExists(t, path)
	assert.Zero(t, fx.invoices.count())
	assert.Equal(t, []string{"invoices/ACME-001.pdf"}, fx.archive.deleted)
}

func TestDeleteInvoice_MissingDocumentStillDeletes(t *testing.T) {
	fx := newInvoiceFixture(t)
	created, err := fx.svc.CreateInvoice(t.Context(), baseRequest())
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(fx.outDir, "ACME-001.pdf")))

	require.NoError(t, fx.svc.DeleteInvoice(t.Context(), created.Invoice.ID))

	assert.Zero(t, fx.invoices.count())
}

func TestDeleteInvoice_NotFound(t *testing.T) {
	fx := newInvoiceFixture(t)

	err := fx.svc.DeleteInvoice(t.Context(), "missing")

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Empty(t, fx.archive.deleted)
}

func TestGetInvoices_Populated(t *testing.T) {
	fx := newInvoiceFixture(t)
	for i := 0; i < 2; i++ {
		_, err := fx.svc.CreateInvoice(t.Context(), baseRequest())
		require.NoError(t, err)
	}

	all, err := fx.svc.GetAllInvoices(t.Context())
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, inv := range all {
		require.NotNil(t, inv.Client)
		require.NotNil(t, inv.Settings)
		assert.Equal(t, "State Bank", inv.Settings.Bank.BankName)
	}

	one, err := fx.svc.GetInvoiceByID(t.Context(), all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].InvoiceNumber, one.InvoiceNumber)

	_, err = fx.svc.GetInvoiceByID(t.Context(), "missing")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestGetInvoice_SettingsRemovedStillReadable(t *testing.T) {
	fx := newInvoiceFixture(t)
	created, err := fx.svc.CreateInvoice(t.Context(), baseRequest())
	require.NoError(t, err)
	fx.settings.settings = nil

	inv, err := fx.svc.GetInvoiceByID(t.Context(), created.Invoice.ID)

	require.NoError(t, err)
	assert.Nil(t, inv.Settings)
	assert.NotNil(t, inv.Client)
}

func TestEmailInvoice_SendsAttachment(t *testing.T) {
	fx := newInvoiceFixture(t)
	created, err := fx.svc.CreateInvoice(t.Context(), baseRequest())
	require.NoError(t, err)

	to, err := fx.svc.EmailInvoice(t.Context(), created.Invoice.ID)

	require.NoError(t, err)
	assert.Equal(t, "billing@globex.example", to)
	require.Len(t, fx.mailer.sent, 1)
	msg := fx.mailer.sent[0]
	assert.Equal(t, "Invoice ACME-001 from Acme Consulting", msg.Subject)
	assert.Equal(t, "Acme Consulting", msg.FromName)
	assert.Contains(t, msg.TextBody, "Dear Globex Pvt Ltd")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "ACME-001.pdf", msg.Attachments[0].Filename)
	assert.FileExists(t, msg.Attachments[0].Path)
}

func TestEmailInvoice_RerendersMissingDocument(t *testing.T) {
	fx := newInvoiceFixture(t)
	created, err := fx.svc.CreateInvoice(t.Context(), baseRequest())
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(fx.outDir, "ACME-001.pdf")))
	renders := fx.renderer.renders

	_, err = fx.svc.EmailInvoice(t.Context(), created.Invoice.ID)

	require.NoError(t, err)
	assert.Equal(t, renders+1, fx.renderer.renders)
	assert.FileExists(t, filepath.Join(fx.outDir, "ACME-001.pdf"))
}

func TestEmailInvoice_ClientWithoutEmail(t *testing.T) {
	fx := newInvoiceFixture(t)
	created, err := fx.svc.CreateInvoice(t.Context(), baseRequest())
	require.NoError(t, err)
	client := sampleClient()
	client.Email = ""
	require.NoError(t, fx.clients.Update(t.Context(), client))

	_, err = fx.svc.EmailInvoice(t.Context(), created.Invoice.ID)

	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Client email not found", MessageOf(err))
	assert.Empty(t, fx.mailer.sent)
}

func TestEmailInvoice_SendFailure(t *testing.T) {
	fx := newInvoiceFixture(t)
	created, err := fx.svc.CreateInvoice(t.Context(), baseRequest())
	require.NoError(t, err)
	fx.mailer.err = errors.New("smtp: connection refused")

	_, err = fx.svc.EmailInvoice(t.Context(), created.Invoice.ID)

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "Failed to send email", MessageOf(err))
}

func TestEmailInvoice_NotFound(t *testing.T) {
	fx := newInvoiceFixture(t)

	_, err := fx.svc.EmailInvoice(t.Context(), "missing")

	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{`1000`, "1000.00", false},
		{`"250.5"`, "250.50", false},
		{`" 12 "`, "12.00", false},
		{`0`, "0.00", false},
		{`10.50`, "10.50", false},
		{`"99.990"`, "99.99", false},
		{`10.555`, "", true},
		{`"1000.005"`, "", true},
		{`-1`, "", true},
		{`"abc"`, "", true},
		{`true`, "", true},
		{`{}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseAmount(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}
