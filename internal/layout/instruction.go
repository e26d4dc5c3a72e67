package layout

import (
	"encoding/json"

	"invoiceforge/internal/domain"
)

// Kind tags an instruction on the wire.
type Kind string

const (
	KindText          Kind = "text"
	KindMultilineText Kind = "multiline_text"
	KindImage         Kind = "image"
	KindTableRow      Kind = "table_row"
)

// Section names the part of the invoice an instruction belongs to.
type Section string

const (
	SectionLogo        Section = "logo"
	SectionFrom        Section = "from"
	SectionMetadata    Section = "metadata"
	SectionBillTo      Section = "bill_to"
	SectionShipTo      Section = "ship_to"
	SectionItemsHeader Section = "items_header"
	SectionItems       Section = "items"
	SectionTotals      Section = "totals"
	SectionSignature   Section = "signature"
	SectionTerms       Section = "terms"
	SectionBankDetails Section = "bank_details"
	SectionNotes       Section = "notes"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	Black = Color{}
	Gray  = Color{R: 96, G: 96, B: 96}
)

// Instruction is one positioned drawing operation. The set of
// implementations is closed: Text, MultilineText, Image and TableRow.
type Instruction interface {
	Kind() Kind
	InSection() Section
	instruction()
}

// Text draws a single line with its baseline at (X, Y).
type Text struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    float64 `json:"size"`
	Bold    bool    `json:"bold,omitempty"`
	Color   Color   `json:"color"`
	Content string  `json:"content"`
	Section Section `json:"section"`
}

// MultilineText is a block of lines whose baselines step down by the line
// height.
type MultilineText struct {
	Lines   []Text  `json:"lines"`
	Section Section `json:"section"`
}

// Image places an embedded image with its bottom-left corner at (X, Y).
type Image struct {
	X       float64            `json:"x"`
	Y       float64            `json:"y"`
	Width   float64            `json:"width"`
	Height  float64            `json:"height"`
	Source  domain.ImageHandle `json:"source"`
	Section Section            `json:"section"`
}

// TableRow groups the cells of one item row. Y is the baseline of the first
// line and Height the vertical space the row consumes.
type TableRow struct {
	Y       float64 `json:"y"`
	Height  float64 `json:"height"`
	Cells   []Text  `json:"cells"`
	Section Section `json:"section"`
}

func (Text) Kind() Kind          { return KindText }
func (MultilineText) Kind() Kind { return KindMultilineText }
func (Image) Kind() Kind         { return KindImage }
func (TableRow) Kind() Kind      { return KindTableRow }

func (t Text) InSection() Section          { return t.Section }
func (m MultilineText) InSection() Section { return m.Section }
func (i Image) InSection() Section         { return i.Section }
func (r TableRow) InSection() Section      { return r.Section }

func (Text) instruction()          {}
func (MultilineText) instruction() {}
func (Image) instruction()         {}
func (TableRow) instruction()      {}

func (t Text) MarshalJSON() ([]byte, error) {
	type plain Text
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		plain
	}{KindText, plain(t)})
}

func (m MultilineText) MarshalJSON() ([]byte, error) {
	type plain MultilineText
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		plain
	}{KindMultilineText, plain(m)})
}

func (i Image) MarshalJSON() ([]byte, error) {
	type plain Image
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		plain
	}{KindImage, plain(i)})
}

func (r TableRow) MarshalJSON() ([]byte, error) {
	type plain TableRow
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		plain
	}{KindTableRow, plain(r)})
}

// Texts flattens an instruction into the individual lines it draws.
func Texts(in Instruction) []Text {
	switch v := in.(type) {
	case Text:
		return []Text{v}
	case MultilineText:
		return v.Lines
	case TableRow:
		return v.Cells
	default:
		return nil
	}
}

// Page is one output page, numbered from 1.
type Page struct {
	Number       int           `json:"number"`
	Instructions []Instruction `json:"instructions"`
}

// Document is the full layout result handed to a renderer.
type Document struct {
	Geometry PageGeometry `json:"geometry"`
	Mode     Mode         `json:"mode"`
	Pages    []Page       `json:"pages"`
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Instructions returns every instruction in emission order across pages.
func (d *Document) Instructions() []Instruction {
	var all []Instruction
	for _, p := range d.Pages {
		all = append(all, p.Instructions...)
	}
	return all
}

// Section returns the instructions tagged with s, in emission order.
func (d *Document) Section(s Section) []Instruction {
	var out []Instruction
	for _, in := range d.Instructions() {
		if in.InSection() == s {
			out = append(out, in)
		}
	}
	return out
}
