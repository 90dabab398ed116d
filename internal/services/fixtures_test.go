package services

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"invoice-service/internal/models"

	"github.com/stretchr/testify/require"
)

func sampleCompany() *models.Company {
	return &models.Company{
		ID:          "company-1",
		CompanyName: "Acme Consulting",
		Address:     "12 MG Road, Bengaluru",
		PhoneNumber: "+91 80 1234 5678",
		GSTNumber:   "29ABCDE1234F1Z5",
	}
}

func sampleBank() *models.BankDetail {
	return &models.BankDetail{
		ID:            "bank-1",
		BankName:      "State Bank",
		AccountName:   "001234567890",
		AccountHolder: "Acme Consulting",
		IFSCCode:      "SBIN0001234",
	}
}

func sampleSettings() *models.Settings {
	return &models.Settings{
		ID:            "settings-1",
		InvoiceSuffix: "ACME",
		SignatoryName: "R. Sharma",
		CompanyID:     "company-1",
		BankID:        "bank-1",
		Company:       sampleCompany(),
		Bank:          sampleBank(),
	}
}

func sampleClient() *models.Client {
	return &models.Client{
		ID:          "client-1",
		CompanyName: "Globex Pvt Ltd",
		PhoneNumber: "+91 22 5555 0000",
		Email:       "billing@globex.example",
		Address:     "4 Marine Drive, Mumbai",
		GSTNumber:   "27XYZAB9876K1Z2",
	}
}

func sampleInvoice() *models.Invoice {
	settingsID := "settings-1"
	due := time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)
	return &models.Invoice{
		ID:            "invoice-1",
		InvoiceNumber: "ACME-001",
		ClientID:      "client-1",
		Description:   "Consulting services for October",
		Amount:        d("1000"),
		Currency:      models.CurrencyINR,
		TaxType:       models.TaxCGSTSGST,
		CGST:          d("9"),
		SGST:          d("9"),
		IGST:          d("0"),
		TotalAmount:   d("1180"),
		Date:          time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC),
		DueDate:       &due,
		Status:        models.StatusUnpaid,
		ThanksNote:    models.DefaultThanksNote,
		SettingsID:    &settingsID,
		Client:        sampleClient(),
		Settings:      sampleSettings(),
	}
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for x := 0; x < 20; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}
