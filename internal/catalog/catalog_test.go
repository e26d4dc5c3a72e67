package catalog

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"invoiceforge/internal/domain"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	return f
}

func TestLoadXLSX_HeaderRow(t *testing.T) {
	f := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"Description", "Qty", "Unit Price", "Tax Name", "Tax %"},
		{"Design work", 3, 120.5, "VAT", 20},
		{"Hosting", 1, 15, "", ""},
		{"", 1, 1, "", ""},
	})
	path := filepath.Join(t.TempDir(), "items.xlsx")
	require.NoError(t, f.SaveAs(path))

	c, err := LoadXLSX(path, "")

	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	entries := c.Entries()
	assert.Equal(t, Entry{ID: 0, Description: "Design work", Quantity: "3", UnitPrice: "120.5", TaxName: "VAT", TaxPercent: "20"}, entries[0])
	assert.Equal(t, "Hosting", entries[1].Description)
	assert.Empty(t, entries[1].TaxName)
}

func TestRead_ReorderedHeaderOnNamedSheet(t *testing.T) {
	f := writeWorkbook(t, "Saved", [][]interface{}{
		{"Rate", "Item", "Hours"},
		{"80", "Consulting", "2"},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	c, err := Read(bytes.NewReader(buf.Bytes()), "Saved")

	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	e, ok := c.Get(0)
	require.True(t, ok)
	assert.Equal(t, "Consulting", e.Description)
	assert.Equal(t, "2", e.Quantity)
	assert.Equal(t, "80", e.UnitPrice)
}

func TestParseRows_Positional(t *testing.T) {
	c := parseRows([][]string{{"Widget", "2", "9.99"}})

	require.Equal(t, 1, c.Len())
	assert.Equal(t, "9.99", c.Entries()[0].UnitPrice)
}

func TestLoadXLSX_Missing(t *testing.T) {
	_, err := LoadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestRead_UnknownSheet(t *testing.T) {
	f := writeWorkbook(t, "Sheet1", [][]interface{}{{"Description"}})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = Read(bytes.NewReader(buf.Bytes()), "Missing")
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestSearch(t *testing.T) {
	c := New([]Entry{
		{Description: "Web Design"},
		{Description: "Hosting"},
		{Description: "Logo design"},
	})

	found := c.Search("DESIGN")
	require.Len(t, found, 2)
	assert.Equal(t, 0, found[0].ID)
	assert.Equal(t, 2, found[1].ID)

	assert.Len(t, c.Search("  "), 3)
	assert.Empty(t, c.Search("plumbing"))
}

func TestGet_OutOfRange(t *testing.T) {
	c := New([]Entry{{Description: "x"}})
	_, ok := c.Get(1)
	assert.False(t, ok)
	_, ok = c.Get(-1)
	assert.False(t, ok)
}

func TestToLineItems(t *testing.T) {
	items := ToLineItems([]Entry{
		{Description: "Design", Quantity: "3", UnitPrice: "120.5", TaxName: "VAT", TaxPercent: "20"},
		{Description: "Bad", Quantity: "lots", UnitPrice: "10"},
	})

	require.Len(t, items, 2)
	assert.Equal(t, "361.50", items[0].Amount)
	assert.False(t, items[0].AmountIsManual)
	require.NotNil(t, items[0].Tax)
	assert.Equal(t, "VAT", items[0].Tax.Name)
	assert.True(t, items[0].ShowTax)

	assert.Equal(t, "0", items[1].Quantity)
	assert.Equal(t, "0.00", items[1].Amount)
	assert.Nil(t, items[1].Tax)
}
