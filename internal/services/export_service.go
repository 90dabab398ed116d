package services

import (
	"context"
	"fmt"
	"io"

	"invoice-service/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	ExportSheet       = "Invoices"
	ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeaders = []string{
	"Invoice Number", "Date", "Client", "Description", "Amount", "Currency",
	"Tax Type", "Total Amount", "Status", "Due Date",
}

type IExportService interface {
	// ExportInvoices writes every invoice as one spreadsheet row to w.
	ExportInvoices(ctx context.Context, w io.Writer) error
}

type ExportService struct {
	invoices IInvoiceService
}

func NewExportService(invoices IInvoiceService) *ExportService {
	return &ExportService{invoices: invoices}
}

func (s *ExportService) ExportInvoices(ctx context.Context, w io.Writer) error {
	const op = "ExportInvoices"

	invoices, err := s.invoices.GetAllInvoices(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeInvoiceSheet(f, invoices); err != nil {
		return internalError(op, "Failed to build invoice export", err)
	}
	if err := f.Write(w); err != nil {
		return internalError(op, "Failed to write invoice export", err)
	}
	return nil
}

func writeInvoiceSheet(f *excelize.File, invoices []*models.Invoice) error {
	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return err
	}

	header := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(ExportSheet, "A1", lastCol, bold); err != nil {
		return err
	}

	unpaid, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "9A0511"}})
	if err != nil {
		return err
	}

	for i, inv := range invoices {
		row := i + 2
		clientName := ""
		if inv.Client != nil {
			clientName = inv.Client.CompanyName
		}
		dueDate := ""
		if inv.DueDate != nil {
			dueDate = inv.DueDate.Format(dueDateLayout)
		}
		values := []any{
			inv.InvoiceNumber,
			inv.Date.Format(dueDateLayout),
			clientName,
			inv.Description,
			inv.Amount.InexactFloat64(),
			string(inv.Currency),
			string(inv.TaxType),
			inv.TotalAmount.InexactFloat64(),
			string(inv.Status),
			dueDate,
		}
		if err := f.SetSheetRow(ExportSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		if inv.Status == models.StatusUnpaid {
			cell := fmt.Sprintf("I%d", row)
			if err := f.SetCellStyle(ExportSheet, cell, cell, unpaid); err != nil {
				return err
			}
		}
	}
	return nil
}
