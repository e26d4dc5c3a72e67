package invoicefile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceforge/internal/domain"
)

const sampleYAML = `from: |
  Acme Ltd
  1 Road
bill_to: Client Co
invoice_number: INV-7
currency_code: GBP
logo:
  path: logo.png
items:
  - description: Widget
    quantity: "2"
    unit_price: "9.50"
  - description: Setup
    amount: "40"
    amount_is_manual: true
    tax:
      name: VAT
      percentage: "20"
bank_details:
  bank: First Bank
  iban: GB00TEST
`

func TestLoad_YAMLResolvesRelativeImage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.png"), []byte("png-bytes"), 0o600))
	path := filepath.Join(dir, "invoice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	data, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd\n1 Road\n", data.From)
	assert.Equal(t, "INV-7", data.InvoiceNumber)
	require.Len(t, data.Items, 2)
	assert.True(t, data.Items[1].AmountIsManual)
	require.NotNil(t, data.Items[1].Tax)
	assert.Equal(t, "20", data.Items[1].Tax.Percentage)
	assert.Equal(t, "GB00TEST", data.BankDetails.IBAN)
	require.NotNil(t, data.Logo)
	assert.Equal(t, []byte("png-bytes"), data.Logo.Data)
}

func TestDecode_JSON(t *testing.T) {
	data, err := Decode(strings.NewReader(`{"invoice_number": "J-1", "items": [{"description": "A", "quantity": "1", "unit_price": "3"}]}`))

	require.NoError(t, err)
	assert.Equal(t, "J-1", data.InvoiceNumber)
	assert.Equal(t, "3", data.Items[0].UnitPrice)
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := Decode(strings.NewReader("invoice_numbr: X\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInvoice)
}

func TestDecode_Empty(t *testing.T) {
	_, err := Decode(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInvoice)
}

func TestLoad_MissingImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invoice.yaml")
	require.NoError(t, os.WriteFile(path, []byte("signature:\n  path: sig.png\n"), 0o600))

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sig.png")
}

func TestEncodeRoundTripKeepsItems(t *testing.T) {
	in := &domain.InvoiceData{InvoiceNumber: "E-1", Items: []domain.LineItem{{Description: "X", Quantity: "1"}}}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, in))

	out, err := Decode(&buf)

	require.NoError(t, err)
	assert.Equal(t, in.Items, out.Items)
}
