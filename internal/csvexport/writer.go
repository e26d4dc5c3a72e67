package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"invoiceforge/internal/domain"
	"invoiceforge/internal/invoice"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Description",
	"Quantity",
	"Unit Price",
	"Amount",
	"Amount Source",
	"Tax Name",
	"Tax %",
	"Tax Amount",
}

// Writer wraps csv.Writer for exporting invoice line items as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteItems writes one row per line item, in order.
func (w *Writer) WriteItems(items []domain.LineItem) error {
	for i := range items {
		if err := w.csv.Write(itemToRow(&items[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteTotals writes the summary rows after a blank separator. Labels go in
// the first column and values in the Amount column so spreadsheets sum the
// same column.
func (w *Writer) WriteTotals(t domain.Totals) error {
	rows := [][]string{
		make([]string, len(columns)),
		summaryRow("Subtotal", t.Subtotal),
		summaryRow("Tax", t.TaxTotal),
		summaryRow("Total", t.GrandTotal),
	}
	if t.EffectiveTaxPercentage > 0 {
		rows = append(rows, summaryRow("Effective Tax %", t.EffectiveTaxPercentage))
	}
	if t.AmountPaid != 0 {
		rows = append(rows,
			summaryRow("Amount Paid", t.AmountPaid),
			summaryRow("Balance Due", t.BalanceDue),
		)
	}
	return w.csv.WriteAll(rows)
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// Export writes the BOM, header, items and totals of data to out.
func Export(out io.Writer, data *domain.InvoiceData) error {
	if _, err := out.Write(BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := w.WriteItems(data.Items); err != nil {
		return fmt.Errorf("writing items: %w", err)
	}
	if err := w.WriteTotals(data.Totals); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}
	w.Flush()
	return w.Error()
}

// itemToRow converts a single item to a row. Numeric cells show the parsed
// values, so malformed input appears as 0.00.
func itemToRow(item *domain.LineItem) []string {
	row := make([]string, len(columns))
	row[0] = item.Description
	row[1] = strings.TrimSpace(item.Quantity)
	row[2] = formatMoney(invoice.ParseLenientNumber(item.UnitPrice))
	row[3] = formatMoney(invoice.ResolveAmount(item))
	row[4] = amountSource(item.AmountIsManual)
	if item.HasTax() {
		row[5] = item.Tax.Name
		row[6] = formatMoney(invoice.ParseLenientNumber(item.Tax.Percentage))
		row[7] = formatMoney(invoice.TaxAmount(item))
	}
	return row
}

func summaryRow(label string, v float64) []string {
	row := make([]string, len(columns))
	row[0] = label
	row[3] = formatMoney(v)
	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(invoice.Round2(v), 'f', 2, 64)
}

func amountSource(manual bool) string {
	if manual {
		return "Manual"
	}
	return "Auto"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an invoice number for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized file name.
// Format: invoice_{sanitized_number}_{YYYYMMDD-HHMMSS}.{ext}, or
// invoice_{YYYYMMDD-HHMMSS}.{ext} when the number sanitizes to nothing.
func BuildFilename(invoiceNumber, ext string, at time.Time) string {
	stamp := at.UTC().Format("20060102-150405")
	if s := SanitizeFilename(invoiceNumber); s != "" {
		return fmt.Sprintf("invoice_%s_%s.%s", s, stamp, ext)
	}
	return fmt.Sprintf("invoice_%s.%s", stamp, ext)
}
