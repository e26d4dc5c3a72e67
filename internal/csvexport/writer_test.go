package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceforge/internal/domain"
	"invoiceforge/internal/invoice"
)

func readAll(t *testing.T, b []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	rows := readAll(t, buf.Bytes())
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 8)
	assert.Equal(t, "Description", rows[0][0])
	assert.Equal(t, "Tax Amount", rows[0][7])
}

func TestWriteItems(t *testing.T) {
	items := []domain.LineItem{
		{Quantity: "2", UnitPrice: "50", Description: "Widget"},
		{Amount: "40", AmountIsManual: true, Quantity: "9", UnitPrice: "9", Description: "Setup, once",
			Tax: &domain.ItemTax{Name: "VAT", Percentage: "15"}},
		{Quantity: "abc", UnitPrice: "10", Description: "Broken"},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteItems(items))
	w.Flush()
	require.NoError(t, w.Error())

	rows := readAll(t, buf.Bytes())
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Widget", "2", "50.00", "100.00", "Auto", "", "", ""}, rows[0])
	assert.Equal(t, []string{"Setup, once", "9", "9.00", "40.00", "Manual", "VAT", "15.00", "6.00"}, rows[1])
	assert.Equal(t, "0.00", rows[2][3])
}

func TestWriteTotals(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteTotals(domain.Totals{Subtotal: 150, TaxTotal: 15, GrandTotal: 165, EffectiveTaxPercentage: 10}))
	w.Flush()

	rows := readAll(t, buf.Bytes())
	require.Len(t, rows, 5)
	assert.Equal(t, "Subtotal", rows[1][0])
	assert.Equal(t, "150.00", rows[1][3])
	assert.Equal(t, "165.00", rows[3][3])
	assert.Equal(t, "Effective Tax %", rows[4][0])
}

func TestWriteTotals_NoEffectiveRateWithoutTax(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteTotals(domain.Totals{Subtotal: 10, GrandTotal: 10}))
	w.Flush()

	assert.Len(t, readAll(t, buf.Bytes()), 4)
}

func TestWriteTotals_PaymentRows(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteTotals(domain.Totals{Subtotal: 100, GrandTotal: 100, AmountPaid: 40, BalanceDue: 60}))
	w.Flush()

	rows := readAll(t, buf.Bytes())
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"Amount Paid", "40.00"}, []string{rows[4][0], rows[4][3]})
	assert.Equal(t, []string{"Balance Due", "60.00"}, []string{rows[5][0], rows[5][3]})
}

func TestExport(t *testing.T) {
	data := invoice.Recompute(domain.InvoiceData{
		Items: []domain.LineItem{{Quantity: "2", UnitPrice: "50", Description: "Widget"}},
	})

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, &data))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, BOM))
	rows := readAll(t, out[len(BOM):])
	assert.Equal(t, "Description", rows[0][0])
	assert.Equal(t, "Widget", rows[1][0])
	assert.Equal(t, "100.00", rows[len(rows)-1][3])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "INV 2024 001", "INV_2024_001"},
		{"special chars", "INV/2024#7 (draft)", "INV_2024_7_draft"},
		{"unicode", "बीजक INV-9", "INV-9"},
		{"hyphens and underscores preserved", "inv-2025_01", "inv-2025_01"},
		{"consecutive underscores collapsed", "inv___01", "inv_01"},
		{"leading/trailing cleaned", "  inv  ", "inv"},
		{
			"long name truncated",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-extra",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrs",
		},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	at := time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC)
	assert.Equal(t, "invoice_INV_001_20240501-130405.pdf", BuildFilename("INV 001", "pdf", at))
	assert.Equal(t, "invoice_20240501-130405.csv", BuildFilename("", "csv", at))
	assert.Equal(t, "invoice_20240501-130405.csv", BuildFilename("///", "csv", at))
}
