package services

import (
	"invoice-service/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TaxRates are percentages applied to the pre-tax amount.
type TaxRates struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
	IGST decimal.Decimal
}

// DeriveTaxRates returns the fixed rate policy for a tax type.
func DeriveTaxRates(taxType models.TaxType) TaxRates {
	switch taxType {
	case models.TaxCGSTSGST:
		return TaxRates{CGST: decimal.NewFromInt(9), SGST: decimal.NewFromInt(9), IGST: decimal.Zero}
	case models.TaxIGST:
		return TaxRates{CGST: decimal.Zero, SGST: decimal.Zero, IGST: decimal.NewFromInt(18)}
	}
	return TaxRates{CGST: decimal.Zero, SGST: decimal.Zero, IGST: decimal.Zero}
}

// ResolveTaxType applies the currency rule: USD is never taxed and INR
// defaults to CGST+SGST.
func ResolveTaxType(currency models.Currency, requested models.TaxType) models.TaxType {
	if currency == models.CurrencyUSD {
		return models.TaxNone
	}
	if requested == "" {
		return models.TaxCGSTSGST
	}
	return requested
}

// CalculateTotal returns the post-tax total at full precision.
func CalculateTotal(amount decimal.Decimal, currency models.Currency, taxType models.TaxType, rates TaxRates) decimal.Decimal {
	if currency == models.CurrencyUSD || taxType == models.TaxNone {
		return amount
	}
	if taxType == models.TaxIGST {
		return amount.Add(percentOf(amount, rates.IGST))
	}
	return amount.Add(percentOf(amount, rates.CGST)).Add(percentOf(amount, rates.SGST))
}

// TaxLine is one rendered tax row.
type TaxLine struct {
	Label  string
	Rate   decimal.Decimal
	Amount decimal.Decimal
}

// TaxBreakdown lists the tax rows that apply to an invoice, in display order.
func TaxBreakdown(invoice *models.Invoice) []TaxLine {
	if invoice.Currency != models.CurrencyINR {
		return nil
	}
	switch invoice.TaxType {
	case models.TaxIGST:
		return []TaxLine{{Label: "IGST", Rate: invoice.IGST, Amount: percentOf(invoice.Amount, invoice.IGST)}}
	case models.TaxCGSTSGST:
		return []TaxLine{
			{Label: "CGST", Rate: invoice.CGST, Amount: percentOf(invoice.Amount, invoice.CGST)},
			{Label: "SGST", Rate: invoice.SGST, Amount: percentOf(invoice.Amount, invoice.SGST)},
		}
	}
	return nil
}

func percentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(hundred)
}
