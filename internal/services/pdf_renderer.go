package services

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"invoice-service/internal/logger"
	"invoice-service/internal/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
)

type IInvoiceRenderer interface {
	// Render writes the invoice document and returns its file path.
	Render(invoice *models.Invoice) (string, error)
	PathFor(invoiceNumber string) string
	DocumentName(invoiceNumber string) string
}

// Layout in PDF points on a Letter page.
const (
	marginPt       = 50.0
	leftColumn     = 50.0
	rightColumn    = 400.0
	amountColumn   = 450.0
	ruleEnd        = 550.0
	imageWidth     = 100.0
	footerHeight   = 100.0
	commentsHeight = 70.0
	fontFamily     = "Helvetica"
	dateLayout     = "02/01/2006"
	notAvailable   = "N/A"
	pdfCreator     = "invoice-service"
	tempPDFPrefix  = ".render-"
)

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

type PDFRenderer struct {
	outputDir string
	uploadDir string
	log       zerolog.Logger

	// warned holds image paths already reported missing.
	warned sync.Map
}

func NewPDFRenderer(outputDir, uploadDir string) *PDFRenderer {
	return &PDFRenderer{
		outputDir: outputDir,
		uploadDir: uploadDir,
		log:       logger.WithComponent("pdf-renderer"),
	}
}

func (r *PDFRenderer) DocumentName(invoiceNumber string) string {
	return unsafeFileChars.ReplaceAllString(invoiceNumber, "_") + ".pdf"
}

func (r *PDFRenderer) PathFor(invoiceNumber string) string {
	return filepath.Join(r.outputDir, r.DocumentName(invoiceNumber))
}

func (r *PDFRenderer) Render(invoice *models.Invoice) (string, error) {
	if invoice.Client == nil {
		return "", errors.New("render invoice: client is not loaded")
	}
	if invoice.Settings == nil || invoice.Settings.Company == nil || invoice.Settings.Bank == nil {
		return "", errors.New("render invoice: settings are not loaded")
	}
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create invoice directory: %w", err)
	}

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(marginPt, marginPt, marginPt)
	pdf.SetAutoPageBreak(true, marginPt)
	pdf.SetCreator(pdfCreator, true)
	pdf.SetTitle("Invoice "+invoice.InvoiceNumber, true)
	pdf.AddPage()

	w := &pageWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	r.layout(w, invoice)

	if err := pdf.Error(); err != nil {
		return "", fmt.Errorf("failed to compose invoice %s: %w", invoice.InvoiceNumber, err)
	}
	target := r.PathFor(invoice.InvoiceNumber)
	if err := writeAtomically(pdf, r.outputDir, target); err != nil {
		return "", err
	}

	r.log.Debug().Str("invoice_number", invoice.InvoiceNumber).Str("path", target).Msg("invoice rendered")
	return target, nil
}

func (r *PDFRenderer) layout(w *pageWriter, inv *models.Invoice) {
	company := inv.Settings.Company
	bank := inv.Settings.Bank
	client := inv.Client

	// Issuer
	w.text(leftColumn, 50, 20, "B", company.CompanyName)
	w.text(leftColumn, 70, 10, "", company.Address)
	w.text(leftColumn, 85, 10, "", "Phone: "+company.PhoneNumber)
	w.text(leftColumn, 100, 10, "", "GST: "+company.GSTNumber)

	w.textRight(rightColumn, 50, 16, "B", "INVOICE")
	w.textRight(rightColumn, 70, 10, "", "Invoice Number: "+inv.InvoiceNumber)
	w.textRight(rightColumn, 85, 10, "", "Date: "+inv.Date.Format(dateLayout))

	w.text(leftColumn, 130, 12, "B", "Bill To:")
	w.text(leftColumn, 145, 10, "", client.CompanyName)
	w.text(leftColumn, 160, 10, "", client.Address)
	w.text(leftColumn, 175, 10, "", "Phone: "+client.PhoneNumber)
	w.text(leftColumn, 190, 10, "", "Email: "+client.Email)
	w.text(leftColumn, 205, 10, "", "GST: "+client.GSTNumber)

	w.text(rightColumn, 130, 12, "B", "Bank Details:")
	w.text(rightColumn, 145, 10, "", "Bank Name: "+bank.BankName)
	w.text(rightColumn, 160, 10, "", "A/c No: "+bank.AccountName)
	w.text(rightColumn, 175, 10, "", "IFSC Code: "+bank.IFSCCode)

	// Line item
	w.rule(leftColumn, 230, ruleEnd)
	w.text(leftColumn, 240, 12, "B", "Description")
	w.textRight(amountColumn, 240, 12, "B", "Amount")
	w.rule(leftColumn, 260, ruleEnd)
	w.textRight(amountColumn, 270, 10, "", money(inv.Amount.StringFixed(2), inv.Currency))
	startPage := w.pdf.PageNo()
	w.paragraph(leftColumn, 270, amountColumn-leftColumn-10, 10, inv.Description)
	itemsEnd := w.pdf.GetY() + 5
	if w.pdf.PageNo() == startPage {
		itemsEnd = math.Max(290, itemsEnd)
	}
	itemsEnd = w.reserve(itemsEnd, 5)
	w.rule(leftColumn, itemsEnd, ruleEnd)

	// Taxes and total
	taxes := TaxBreakdown(inv)
	yPos := w.reserve(itemsEnd+20, float64(len(taxes))*15+25)
	for _, line := range taxes {
		w.text(rightColumn, yPos, 10, "", fmt.Sprintf("%s (%s%%)", line.Label, line.Rate.String()))
		w.textRight(amountColumn, yPos, 10, "", line.Amount.StringFixed(2))
		yPos += 15
	}
	w.rule(rightColumn, yPos, ruleEnd)
	w.text(rightColumn, yPos+10, 12, "B", "Total Amount")
	w.textRight(amountColumn, yPos+10, 12, "B", money(inv.TotalAmount.StringFixed(2), inv.Currency))

	// Other comments
	commentsTop := w.reserve(yPos+30, commentsHeight)
	w.rule(leftColumn, commentsTop, ruleEnd)
	w.text(leftColumn, commentsTop+10, 12, "B", "Other Comments")
	dueDate := notAvailable
	if inv.DueDate != nil {
		dueDate = inv.DueDate.Format(dateLayout)
	}
	w.text(leftColumn, commentsTop+25, 10, "", "Due Date: "+dueDate)
	w.text(leftColumn, commentsTop+40, 10, "", "Status: "+string(inv.Status))
	footerTop := commentsTop + commentsHeight
	if inv.Comments != "" {
		w.paragraph(leftColumn, commentsTop+55, ruleEnd-leftColumn, 10, "Comments: "+inv.Comments)
		footerTop = w.pdf.GetY() + 15
	}

	footerTop = w.reserve(footerTop, footerHeight)

	r.image(w, models.ImageStamp, inv.Settings.StampImage, leftColumn, footerTop)
	r.image(w, models.ImageSignature, inv.Settings.SignatureImage, rightColumn, footerTop)

	w.text(rightColumn, footerTop+50, 10, "", "For, "+company.CompanyName)
	w.text(rightColumn, footerTop+65, 10, "", "("+inv.Settings.SignatoryName+")")
	w.text(rightColumn, footerTop+80, 10, "", "Authorized Signature")
	w.paragraph(leftColumn, footerTop+50, rightColumn-leftColumn-20, 12, inv.ThanksNote)
}

// image places a branding image when the file exists and is readable by the
// PDF engine; otherwise it is skipped and reported once per path.
func (r *PDFRenderer) image(w *pageWriter, kind models.ImageKind, filename string, x, y float64) {
	if filename == "" {
		return
	}
	path := filepath.Join(r.uploadDir, string(kind), filename)

	if _, err := os.Stat(path); err != nil {
		r.warnOnce(path, "branding image missing, skipped", err)
		return
	}

	// Probe on a scratch document so a bad image cannot poison the invoice.
	probe := gofpdf.New("P", "pt", "Letter", "")
	probe.RegisterImageOptions(path, gofpdf.ImageOptions{})
	if err := probe.Error(); err != nil {
		r.warnOnce(path, "branding image unreadable, skipped", err)
		return
	}

	w.pdf.ImageOptions(path, x, y, imageWidth, 0, false, gofpdf.ImageOptions{}, 0, "")
}

func (r *PDFRenderer) warnOnce(path, msg string, err error) {
	if _, seen := r.warned.LoadOrStore(path, struct{}{}); seen {
		return
	}
	r.log.Warn().Err(err).Str("path", path).Msg(msg)
}

func writeAtomically(pdf *gofpdf.Fpdf, dir, target string) error {
	tmp, err := os.CreateTemp(dir, tempPDFPrefix+"*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := pdf.Output(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write invoice document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("failed to move invoice document into place: %w", err)
	}
	return nil
}

func money(amount string, currency models.Currency) string {
	return amount + " " + string(currency)
}

type pageWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (w *pageWriter) text(x, y, size float64, style, s string) {
	w.pdf.SetFont(fontFamily, style, size)
	w.pdf.SetXY(x, y)
	w.pdf.CellFormat(0, size+2, w.tr(s), "", 1, "L", false, 0, "")
}

// textRight right-aligns s between x and the right margin.
func (w *pageWriter) textRight(x, y, size float64, style, s string) {
	w.pdf.SetFont(fontFamily, style, size)
	w.pdf.SetXY(x, y)
	w.pdf.CellFormat(0, size+2, w.tr(s), "", 1, "R", false, 0, "")
}

func (w *pageWriter) paragraph(x, y, width, size float64, s string) {
	w.pdf.SetFont(fontFamily, "", size)
	w.pdf.SetXY(x, y)
	w.pdf.MultiCell(width, size+3, w.tr(s), "", "L", false)
}

// reserve returns y when height fits above the bottom margin, otherwise it
// starts a new page and returns its top.
func (w *pageWriter) reserve(y, height float64) float64 {
	_, pageHeight := w.pdf.GetPageSize()
	if y+height > pageHeight-marginPt {
		w.pdf.AddPage()
		return marginPt
	}
	return y
}

func (w *pageWriter) rule(x1, y, x2 float64) {
	w.pdf.Line(x1, y, x2, y)
}
