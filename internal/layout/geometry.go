package layout

import (
	"fmt"
	"strings"

	"invoiceforge/internal/domain"
)

// PageGeometry fixes every position the engine uses. Coordinates are PDF
// points with the origin at the bottom-left corner of the page, so y
// decreases as content flows down the page.
type PageGeometry struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	TopMargin    float64 `json:"top_margin"`
	BottomMargin float64 `json:"bottom_margin"`
	LeftMargin   float64 `json:"left_margin"`

	FontSize   float64 `json:"font_size"`
	LineHeight float64 `json:"line_height"`

	// Item table columns.
	QtyX         float64 `json:"qty_x"`
	DescriptionX float64 `json:"description_x"`
	UnitPriceX   float64 `json:"unit_price_x"`
	AmountX      float64 `json:"amount_x"`
	TaxX         float64 `json:"tax_x"`

	// Right-hand metadata column and totals block.
	MetaLabelX   float64 `json:"meta_label_x"`
	MetaValueX   float64 `json:"meta_value_x"`
	TotalsLabelX float64 `json:"totals_label_x"`
	TotalsValueX float64 `json:"totals_value_x"`

	// Section decrements.
	HeaderOffset   float64 `json:"header_offset"`
	LabelGap       float64 `json:"label_gap"`
	SectionGap     float64 `json:"section_gap"`
	MetadataOffset float64 `json:"metadata_offset"`
	MetadataRowGap float64 `json:"metadata_row_gap"`
	TableHeaderGap float64 `json:"table_header_gap"`
	TotalsRowGap   float64 `json:"totals_row_gap"`

	// Images.
	LogoInset       float64 `json:"logo_inset"`
	LogoOffset      float64 `json:"logo_offset"`
	LogoWidth       float64 `json:"logo_width"`
	LogoHeight      float64 `json:"logo_height"`
	SignatureGap    float64 `json:"signature_gap"`
	SignatureWidth  float64 `json:"signature_width"`
	SignatureHeight float64 `json:"signature_height"`
}

// PaperSize is a named page size in points.
type PaperSize struct {
	Name   string
	Width  float64
	Height float64
}

var paperSizes = map[string]PaperSize{
	"classic": {Name: "classic", Width: 600, Height: 800},
	"letter":  {Name: "letter", Width: 612, Height: 792},
	"a4":      {Name: "a4", Width: 595.28, Height: 841.89},
}

// LookupPaper resolves a paper size by case-insensitive name.
func LookupPaper(name string) (PaperSize, error) {
	p, ok := paperSizes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PaperSize{}, fmt.Errorf("%w: unknown paper size %q", domain.ErrInvalidGeometry, name)
	}
	return p, nil
}

// DefaultGeometry returns the 600x800 layout the invoice template was
// designed against.
func DefaultGeometry() PageGeometry {
	return PageGeometry{
		Width:        600,
		Height:       800,
		TopMargin:    50,
		BottomMargin: 50,
		LeftMargin:   50,

		FontSize:   12,
		LineHeight: 15,

		QtyX:         50,
		DescriptionX: 100,
		UnitPriceX:   300,
		AmountX:      450,
		TaxX:         520,

		MetaLabelX:   300,
		MetaValueX:   450,
		TotalsLabelX: 300,
		TotalsValueX: 450,

		HeaderOffset:   50,
		LabelGap:       20,
		SectionGap:     20,
		MetadataOffset: 110,
		MetadataRowGap: 20,
		TableHeaderGap: 20,
		TotalsRowGap:   20,

		LogoInset:       165,
		LogoOffset:      80,
		LogoWidth:       100,
		LogoHeight:      50,
		SignatureGap:    30,
		SignatureWidth:  100,
		SignatureHeight: 50,
	}
}

// WithPaper returns a copy sized to the given paper. Right-hand columns keep
// their distance from the right edge so wider or narrower paper does not
// push them off the page.
func (g PageGeometry) WithPaper(p PaperSize) PageGeometry {
	dx := p.Width - g.Width
	g.Width = p.Width
	g.Height = p.Height
	g.UnitPriceX += dx
	g.AmountX += dx
	g.TaxX += dx
	g.MetaLabelX += dx
	g.MetaValueX += dx
	g.TotalsLabelX += dx
	g.TotalsValueX += dx
	return g
}

// Top is the y of the first baseline on a page.
func (g PageGeometry) Top() float64 {
	return g.Height - g.TopMargin
}

// Usable is the vertical space between the margins.
func (g PageGeometry) Usable() float64 {
	return g.Top() - g.BottomMargin
}

// Validate rejects geometries the engine cannot lay out on.
func (g PageGeometry) Validate() error {
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return fmt.Errorf("%w: page size %.2fx%.2f", domain.ErrInvalidGeometry, g.Width, g.Height)
	case g.FontSize <= 0 || g.LineHeight <= 0:
		return fmt.Errorf("%w: font size and line height must be positive", domain.ErrInvalidGeometry)
	case g.TopMargin < 0 || g.BottomMargin < 0 || g.LeftMargin < 0:
		return fmt.Errorf("%w: negative margin", domain.ErrInvalidGeometry)
	}

	// A fresh page must hold the table header plus one row, and the
	// header band (logo, metadata) must sit inside the page.
	if g.Usable() < g.TableHeaderGap+g.LineHeight {
		return fmt.Errorf("%w: margins leave %.2fpt of usable height", domain.ErrInvalidGeometry, g.Usable())
	}
	if g.MetadataOffset > g.Usable() || g.HeaderOffset > g.Usable() {
		return fmt.Errorf("%w: header band does not fit between margins", domain.ErrInvalidGeometry)
	}
	return nil
}
