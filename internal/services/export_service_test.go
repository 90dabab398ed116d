package services

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportInvoices(t *testing.T) {
	fx := newInvoiceFixture(t)
	_, err := fx.svc.CreateInvoice(t.Context(), baseRequest())
	require.NoError(t, err)
	req := baseRequest()
	req.Amount = json.RawMessage(`250`)
	req.DueDate = ptr("2026-12-31")
	_, err = fx.svc.CreateInvoice(t.Context(), req)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewExportService(fx.svc).ExportInvoices(t.Context(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeaders, rows[0])

	byNumber := map[string][]string{}
	for _, row := range rows[1:] {
		byNumber[row[0]] = row
	}
	second := byNumber["ACME-002"]
	require.NotNil(t, second)
	assert.Equal(t, "Globex Pvt Ltd", second[2])
	assert.Equal(t, "250", second[4])
	assert.Equal(t, "INR", second[5])
	assert.Equal(t, "CGST+SGST", second[6])
	assert.Equal(t, "295", second[7])
	assert.Equal(t, "Unpaid", second[8])
	assert.Equal(t, "2026-12-31", second[9])
}

func TestExportInvoices_Empty(t *testing.T) {
	fx := newInvoiceFixture(t)

	var buf bytes.Buffer
	require.NoError(t, NewExportService(fx.svc).ExportInvoices(t.Context(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
