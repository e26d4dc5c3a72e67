package layout

import (
	"fmt"
	"math"
	"strings"

	"invoiceforge/internal/currency"
	"invoiceforge/internal/domain"
	"invoiceforge/internal/invoice"
)

const notAvailable = "N/A"

// builder accumulates pages for a single Layout call.
type builder struct {
	g        PageGeometry
	paginate bool
	symbol   string
	pages    []Page
	cur      cursor
}

func newBuilder(g PageGeometry, paginate bool, symbol string) *builder {
	return &builder{
		g:        g,
		paginate: paginate,
		symbol:   symbol,
		pages:    []Page{{Number: 1}},
		cur:      newCursor(g.Top()),
	}
}

func (b *builder) page() int {
	return len(b.pages) - 1
}

func (b *builder) emit(in Instruction) {
	b.emitOn(b.page(), in)
}

func (b *builder) emitOn(page int, in Instruction) {
	b.pages[page].Instructions = append(b.pages[page].Instructions, in)
}

// fits reports whether a block of height h starting at the main cursor
// stays above the bottom margin.
func (b *builder) fits(h float64) bool {
	return !b.paginate || b.cur.main-h >= b.g.BottomMargin
}

func (b *builder) atTop() bool {
	return b.cur.main >= b.g.Top()
}

// ensure moves to a new page when a block of height h does not fit. A block
// that does not fit on an empty page is placed anyway.
func (b *builder) ensure(h float64) {
	if !b.fits(h) && !b.atTop() {
		b.newPage()
	}
}

func (b *builder) newPage() {
	b.pages = append(b.pages, Page{Number: len(b.pages) + 1})
	b.cur.reset(b.g.Top())
}

func (b *builder) text(sec Section, x, y float64, content string) Text {
	return Text{X: x, Y: y, Size: b.g.FontSize, Color: Black, Content: content, Section: sec}
}

func (b *builder) label(sec Section, x, y float64, content string) Text {
	t := b.text(sec, x, y, content)
	t.Bold = true
	return t
}

func (b *builder) money(v float64) string {
	return currency.Format(v, b.symbol)
}

// block emits a bold label followed by its lines. Grouped lines become a
// single MultilineText per page, otherwise each line is its own Text.
func (b *builder) block(sec Section, label string, lines []string, grouped bool) {
	b.ensure(b.g.LabelGap + b.g.LineHeight)
	b.emit(b.label(sec, b.g.LeftMargin, b.cur.main, label))
	b.cur.advance(b.g.LabelGap)
	if len(lines) == 0 {
		b.cur.advance(b.g.LineHeight)
	}
	b.lines(sec, b.g.LeftMargin, lines, grouped)
	b.cur.advance(b.g.SectionGap)
}

// lines places one baseline per line, breaking pages between lines.
// Empty lines take vertical space but emit nothing.
func (b *builder) lines(sec Section, x float64, lines []string, grouped bool) {
	var chunk []Text
	flush := func() {
		if len(chunk) > 0 {
			b.emit(MultilineText{Lines: chunk, Section: sec})
			chunk = nil
		}
	}

	for _, line := range lines {
		if !b.fits(b.g.LineHeight) && !b.atTop() {
			flush()
			b.newPage()
		}
		if line != "" {
			t := b.text(sec, x, b.cur.main, line)
			if grouped {
				chunk = append(chunk, t)
			} else {
				b.emit(t)
			}
		}
		b.cur.advance(b.g.LineHeight)
	}
	flush()
}

func (b *builder) logo(h *domain.ImageHandle) {
	if h == nil {
		return
	}
	b.emit(Image{
		X:       b.g.Width - b.g.LogoInset,
		Y:       b.g.Top() - b.g.LogoOffset,
		Width:   b.g.LogoWidth,
		Height:  b.g.LogoHeight,
		Source:  *h,
		Section: SectionLogo,
	})
}

func (b *builder) from(sender string) {
	b.cur.advance(b.g.HeaderOffset)
	b.block(SectionFrom, "From:", splitLines(sender), true)
}

// metadata fills the right-hand column of the first page. It runs on its
// own cursor, so the sender block and the metadata rows are laid out side
// by side and the main flow resumes below the longer of the two.
func (b *builder) metadata(data *domain.InvoiceData) {
	type row struct{ label, value string }
	rows := []row{
		{"Invoice #:", data.InvoiceNumber},
		{"Invoice Date:", data.InvoiceDate},
		{"Due Date:", orNotAvailable(data.DueDate)},
	}
	if strings.TrimSpace(data.PONumber) != "" {
		rows = append(rows, row{"P.O. #:", data.PONumber})
	}
	if strings.TrimSpace(data.PaymentTerms) != "" {
		rows = append(rows, row{"Payment Terms:", data.PaymentTerms})
	}

	const first = 0
	b.cur.startMetadata(b.g.Top() - b.g.MetadataOffset)
	for _, r := range rows {
		y := b.cur.metadata
		b.emitOn(first, b.label(SectionMetadata, b.g.MetaLabelX, y, r.label))
		if v := strings.TrimSpace(r.value); v != "" {
			b.emitOn(first, b.text(SectionMetadata, b.g.MetaValueX, y, v))
		}
		b.cur.advanceMetadata(b.g.MetadataRowGap)
	}

	// A sender block long enough to spill onto another page is already
	// below the metadata column.
	if b.page() == first {
		b.cur.resync()
	}
}

func (b *builder) addresses(billTo, shipTo string) {
	b.block(SectionBillTo, "Bill To:", splitLines(billTo), true)
	if strings.TrimSpace(shipTo) != "" {
		b.block(SectionShipTo, "Ship To:", splitLines(shipTo), true)
	}
}

func (b *builder) items(items []domain.LineItem, taxColumn bool) {
	b.ensure(b.g.TableHeaderGap + b.g.LineHeight)
	b.itemHeader(taxColumn)
	for i := range items {
		b.itemRow(&items[i], taxColumn)
	}
	b.cur.advance(b.g.SectionGap)
}

func (b *builder) itemHeader(taxColumn bool) {
	y := b.cur.main
	cells := []Text{
		b.label(SectionItemsHeader, b.g.QtyX, y, "Qty"),
		b.label(SectionItemsHeader, b.g.DescriptionX, y, "Description"),
		b.label(SectionItemsHeader, b.g.UnitPriceX, y, "Unit Price"),
		b.label(SectionItemsHeader, b.g.AmountX, y, "Amount"),
	}
	if taxColumn {
		cells = append(cells, b.label(SectionItemsHeader, b.g.TaxX, y, "Tax"))
	}
	b.emit(TableRow{Y: y, Height: b.g.TableHeaderGap, Cells: cells, Section: SectionItemsHeader})
	b.cur.advance(b.g.TableHeaderGap)
}

// rowCapacity is the number of description lines that fit below the main
// cursor on the current page.
func (b *builder) rowCapacity() int {
	if !b.paginate {
		return math.MaxInt
	}
	return int(math.Floor((b.cur.main-b.g.BottomMargin)/b.g.LineHeight + 1e-9))
}

// freshRowCapacity is the number of lines a new page holds under the
// repeated table header.
func (b *builder) freshRowCapacity() int {
	return int(math.Floor((b.g.Usable()-b.g.TableHeaderGap)/b.g.LineHeight + 1e-9))
}

// itemRow emits one item. A row that does not fit moves to a new page with
// a repeated header; a row taller than a whole page is split between
// description lines and only its first part carries the numeric cells.
func (b *builder) itemRow(item *domain.LineItem, taxColumn bool) {
	lines := splitLines(item.Description)
	if len(lines) == 0 {
		lines = []string{""}
	}

	first := true
	for len(lines) > 0 {
		capacity := b.rowCapacity()
		if capacity < len(lines) && (capacity < 1 || (first && b.freshRowCapacity() >= len(lines))) {
			b.newPage()
			b.itemHeader(taxColumn)
			capacity = max(1, b.rowCapacity())
		}
		take := min(capacity, len(lines))

		y := b.cur.main
		var cells []Text
		if first {
			if qty := strings.TrimSpace(item.Quantity); qty != "" {
				cells = append(cells, b.text(SectionItems, b.g.QtyX, y, qty))
			}
		}
		for i, line := range lines[:take] {
			if line != "" {
				cells = append(cells, b.text(SectionItems, b.g.DescriptionX, y-float64(i)*b.g.LineHeight, line))
			}
		}
		if first {
			cells = append(cells,
				b.text(SectionItems, b.g.UnitPriceX, y, b.money(invoice.ParseLenientNumber(item.UnitPrice))),
				b.text(SectionItems, b.g.AmountX, y, b.money(invoice.ResolveAmount(item))),
			)
			if taxColumn && item.ShowTax && item.Tax != nil {
				pct := math.Max(0, invoice.ParseLenientNumber(item.Tax.Percentage))
				cells = append(cells, b.text(SectionItems, b.g.TaxX, y, invoice.FormatFixed2(pct)+"%"))
			}
		}

		h := float64(take) * b.g.LineHeight
		b.emit(TableRow{Y: y, Height: h, Cells: cells, Section: SectionItems})
		b.cur.advance(h)
		lines = lines[take:]
		first = false
	}
}

// totals emits the totals block and records the baseline of its last line
// as the signature anchor. The block and a following signature are kept on
// one page.
func (b *builder) totals(items []domain.LineItem, t domain.Totals, withSignature bool) {
	type row struct {
		label, value string
		bold         bool
	}
	rows := []row{{label: "Subtotal:", value: b.money(t.Subtotal)}}
	if t.TaxTotal > 0 {
		rows = append(rows, row{label: taxLabel(items, t.EffectiveTaxPercentage), value: b.money(t.TaxTotal)})
	}
	rows = append(rows, row{label: "Total:", value: b.money(t.GrandTotal), bold: true})
	if t.AmountPaid != 0 {
		rows = append(rows,
			row{label: "Amount Paid:", value: b.money(t.AmountPaid)},
			row{label: "Balance Due:", value: b.money(t.BalanceDue), bold: true},
		)
	}

	need := float64(len(rows)-1)*b.g.TotalsRowGap + b.g.LineHeight
	if withSignature {
		need = float64(len(rows)-1)*b.g.TotalsRowGap + b.g.SignatureGap + b.g.SignatureHeight + b.g.LineHeight
	}
	b.ensure(need)

	for i, r := range rows {
		y := b.cur.main
		l := b.text(SectionTotals, b.g.TotalsLabelX, y, r.label)
		v := b.text(SectionTotals, b.g.TotalsValueX, y, r.value)
		l.Bold, v.Bold = r.bold, r.bold
		b.emit(l)
		b.emit(v)
		if i == len(rows)-1 {
			b.cur.anchorSignature(y)
		}
		b.cur.advance(b.g.TotalsRowGap)
	}
	b.cur.advance(b.g.SectionGap)
}

// taxLabel names the tax line after the items' tax when they all share
// one name.
func taxLabel(items []domain.LineItem, pct float64) string {
	name, seen := "", false
	for i := range items {
		if !items[i].HasTax() {
			continue
		}
		n := strings.TrimSpace(items[i].Tax.Name)
		if !seen {
			name, seen = n, true
			continue
		}
		if n != name {
			name = ""
			break
		}
	}
	if name == "" {
		name = "Tax"
	}
	return fmt.Sprintf("%s (%s%%):", name, invoice.FormatFixed2(pct))
}

// signature hangs the signature image below the totals anchor, aligned to
// the right edge of the totals labels.
func (b *builder) signature(h *domain.ImageHandle) {
	if h == nil || !b.cur.anchored {
		return
	}
	x := b.g.TotalsValueX - b.g.SignatureWidth
	bottom := b.cur.signatureAnchor - b.g.SignatureGap - b.g.SignatureHeight
	b.emit(Image{
		X:       x,
		Y:       bottom,
		Width:   b.g.SignatureWidth,
		Height:  b.g.SignatureHeight,
		Source:  *h,
		Section: SectionSignature,
	})

	caption := b.text(SectionSignature, x, bottom-b.g.LineHeight, "Authorized Signature")
	caption.Color = Gray
	b.emit(caption)
	b.cur.below(caption.Y - b.g.SectionGap)
}

func (b *builder) terms(terms string) {
	if strings.TrimSpace(terms) == "" {
		return
	}
	b.block(SectionTerms, "Terms and Conditions:", splitLines(terms), false)
}

func (b *builder) bankDetails(d domain.BankDetails) {
	fields := []struct{ label, value string }{
		{"Account Holder", d.AccountHolder},
		{"Bank", d.Bank},
		{"Account Number", d.AccountNumber},
		{"Branch Code", d.BranchCode},
		{"Account Type", d.AccountType},
		{"SWIFT", d.SwiftCode},
		{"IBAN", d.IBAN},
	}
	var lines []string
	for _, f := range fields {
		if v := strings.TrimSpace(f.value); v != "" {
			lines = append(lines, f.label+": "+v)
		}
	}
	if len(lines) == 0 {
		return
	}
	b.block(SectionBankDetails, "Bank Details:", lines, false)
}

func (b *builder) notes(notes string) {
	if strings.TrimSpace(notes) == "" {
		return
	}
	b.block(SectionNotes, "Notes:", splitLines(notes), true)
}

// splitLines splits on literal newlines only, so a trailing newline adds an
// empty last line. Blank input yields no lines.
func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	return lines
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}
