package models

type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
)

func (c Currency) Valid() bool {
	return c == CurrencyINR || c == CurrencyUSD
}

type TaxType string

const (
	TaxIGST     TaxType = "IGST"
	TaxCGSTSGST TaxType = "CGST+SGST"
	TaxNone     TaxType = "NONE"
)

func (t TaxType) Valid() bool {
	switch t {
	case TaxIGST, TaxCGSTSGST, TaxNone:
		return true
	}
	return false
}

type InvoiceStatus string

const (
	StatusPaid   InvoiceStatus = "Paid"
	StatusUnpaid InvoiceStatus = "Unpaid"
)

func (s InvoiceStatus) Valid() bool {
	return s == StatusPaid || s == StatusUnpaid
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}
