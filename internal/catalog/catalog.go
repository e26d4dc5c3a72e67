// Package catalog reads a spreadsheet of saved line items that can be
// picked onto an invoice.
package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"invoiceforge/internal/domain"
	"invoiceforge/internal/invoice"
)

// Entry is one saved item.
type Entry struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TaxName     string `json:"tax_name,omitempty"`
	TaxPercent  string `json:"tax_percentage,omitempty"`
}

// Catalog is an immutable, in-memory list of saved items.
type Catalog struct {
	entries []Entry
}

type column int

const (
	colDescription column = iota
	colQuantity
	colUnitPrice
	colTaxName
	colTaxPercent
	numColumns
)

// headerAliases maps lower-cased header text to its column.
var headerAliases = map[string]column{
	"description": colDescription,
	"item":        colDescription,
	"qty":         colQuantity,
	"quantity":    colQuantity,
	"hours":       colQuantity,
	"unit price":  colUnitPrice,
	"price":       colUnitPrice,
	"rate":        colUnitPrice,
	"tax name":    colTaxName,
	"tax":         colTaxName,
	"tax %":       colTaxPercent,
	"tax percent": colTaxPercent,
	"tax rate":    colTaxPercent,
}

// LoadXLSX opens the workbook at path. An empty sheet selects the first one.
func LoadXLSX(path, sheet string) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrCatalogUnavailable, path, err)
	}
	defer func() { _ = f.Close() }()
	return fromWorkbook(f, sheet)
}

// Read parses a workbook from r.
func Read(r io.Reader, sheet string) (*Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading workbook: %v", domain.ErrCatalogUnavailable, err)
	}
	defer func() { _ = f.Close() }()
	return fromWorkbook(f, sheet)
}

func fromWorkbook(f *excelize.File, sheet string) (*Catalog, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrCatalogUnavailable)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", domain.ErrCatalogUnavailable, sheet, err)
	}
	return parseRows(rows), nil
}

// parseRows turns spreadsheet rows into entries. A recognisable header row
// decides the column order; without one the columns are positional.
func parseRows(rows [][]string) *Catalog {
	index := [numColumns]int{0, 1, 2, 3, 4}
	if len(rows) > 0 {
		if mapped, ok := mapHeader(rows[0]); ok {
			index = mapped
			rows = rows[1:]
		}
	}

	c := &Catalog{}
	for _, row := range rows {
		cell := func(col column) string {
			i := index[col]
			if i < 0 || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		desc := cell(colDescription)
		if desc == "" {
			continue
		}
		c.entries = append(c.entries, Entry{
			ID:          len(c.entries),
			Description: desc,
			Quantity:    cell(colQuantity),
			UnitPrice:   cell(colUnitPrice),
			TaxName:     cell(colTaxName),
			TaxPercent:  cell(colTaxPercent),
		})
	}
	return c
}

func mapHeader(row []string) ([numColumns]int, bool) {
	index := [numColumns]int{-1, -1, -1, -1, -1}
	for i, h := range row {
		if col, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok && index[col] < 0 {
			index[col] = i
		}
	}
	return index, index[colDescription] >= 0
}

// New builds a catalog from entries, renumbering their IDs.
func New(entries []Entry) *Catalog {
	c := &Catalog{entries: make([]Entry, len(entries))}
	for i, e := range entries {
		e.ID = i
		c.entries[i] = e
	}
	return c
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of all entries.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Search returns the entries whose description contains term, ignoring
// case. An empty term matches everything.
func (c *Catalog) Search(term string) []Entry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return c.Entries()
	}
	var out []Entry
	for _, e := range c.entries {
		if strings.Contains(strings.ToLower(e.Description), term) {
			out = append(out, e)
		}
	}
	return out
}

// Get returns the entry with the given ID.
func (c *Catalog) Get(id int) (Entry, bool) {
	if id < 0 || id >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[id], true
}

// ToLineItems converts entries into line items with auto-computed amounts.
func ToLineItems(entries []Entry) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(entries))
	for _, e := range entries {
		item := invoice.NewItem()
		item.Description = e.Description
		item, _ = invoice.ApplyItemEdit(item, domain.ItemFieldQuantity, e.Quantity)
		item, _ = invoice.ApplyItemEdit(item, domain.ItemFieldUnitPrice, e.UnitPrice)
		if e.TaxName != "" || e.TaxPercent != "" {
			item = invoice.SetItemTax(item, e.TaxName, e.TaxPercent)
		}
		items = append(items, item)
	}
	return items
}
