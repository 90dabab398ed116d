package services

import "fmt"

// FormatInvoiceNumber renders "<suffix>-<seq>" with seq zero padded to at
// least three digits.
func FormatInvoiceNumber(suffix string, seq int64) string {
	return fmt.Sprintf("%s-%03d", suffix, seq)
}
