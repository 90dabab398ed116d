package template

import (
	"fmt"
	"html"
)

func InvoiceSubject(invoiceNumber, companyName string) string {
	return fmt.Sprintf("Invoice %s from %s", invoiceNumber, companyName)
}

func InvoiceTextTemplate(clientName, thanksNote, companyName string) string {
	return fmt.Sprintf("Dear %s,\n\nPlease find attached your invoice.\n\n%s\n%s", clientName, thanksNote, companyName)
}

func InvoiceHTMLTemplate(clientName, thanksNote, companyName string) string {
	template := fmt.Sprintf(`
		<html>
        <body>
            <p>Dear %s,</p>
            <p>Please find attached your invoice.</p>
            <br>
            <p>%s<br>%s</p>
        </body>
        </html>
		`, html.EscapeString(clientName), html.EscapeString(thanksNote), html.EscapeString(companyName))
	return template
}
