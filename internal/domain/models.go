package domain

// LineItem is one billable row as entered on the invoice form.
// Numeric fields keep the entered text; they are parsed leniently when totals
// are computed.
type LineItem struct {
	Quantity       string   `json:"quantity" yaml:"quantity"`
	UnitPrice      string   `json:"unit_price" yaml:"unit_price"`
	Description    string   `json:"description" yaml:"description"`
	Amount         string   `json:"amount" yaml:"amount"`
	AmountIsManual bool     `json:"amount_is_manual" yaml:"amount_is_manual"`
	Tax            *ItemTax `json:"tax,omitempty" yaml:"tax,omitempty"`
	ShowTax        bool     `json:"show_tax" yaml:"show_tax"`
}

// ItemTax is the single flat percentage tax slot of a line item.
type ItemTax struct {
	Name       string `json:"name" yaml:"name"`
	Percentage string `json:"percentage" yaml:"percentage"`
}

// HasTax reports whether the item carries a tax slot.
func (i *LineItem) HasTax() bool {
	return i.Tax != nil
}

// ImageAttachment is a raw uploaded image. Exactly one of Data, Path or
// AssetKey is expected to be set; Path and AssetKey are resolved to Data
// before layout.
type ImageAttachment struct {
	Data     []byte `json:"data,omitempty" yaml:"-"`
	MimeType string `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
	Path     string `json:"-" yaml:"path,omitempty"`
	AssetKey string `json:"asset_key,omitempty" yaml:"asset_key,omitempty"`
}

// IsEmpty reports whether the attachment carries no image reference at all.
func (a *ImageAttachment) IsEmpty() bool {
	return a == nil || (len(a.Data) == 0 && a.Path == "" && a.AssetKey == "")
}

// ImageHandle is the opaque result of embedding an image.
type ImageHandle struct {
	Ref         string      `json:"ref"`
	Format      ImageFormat `json:"format"`
	PixelWidth  int         `json:"pixel_width"`
	PixelHeight int         `json:"pixel_height"`
	Data        []byte      `json:"-"`
}

// BankDetails holds optional payment account information.
type BankDetails struct {
	AccountHolder string `json:"account_holder" yaml:"account_holder"`
	Bank          string `json:"bank" yaml:"bank"`
	AccountNumber string `json:"account_number" yaml:"account_number"`
	BranchCode    string `json:"branch_code" yaml:"branch_code"`
	AccountType   string `json:"account_type" yaml:"account_type"`
	SwiftCode     string `json:"swift_code" yaml:"swift_code"`
	IBAN          string `json:"iban" yaml:"iban"`
}

// Totals are derived from the line items and the amount paid, and never set
// directly. BalanceDue is GrandTotal less AmountPaid.
type Totals struct {
	Subtotal               float64 `json:"subtotal"`
	TaxTotal               float64 `json:"tax_total"`
	GrandTotal             float64 `json:"grand_total"`
	EffectiveTaxPercentage float64 `json:"effective_tax_percentage"`
	AmountPaid             float64 `json:"amount_paid"`
	BalanceDue             float64 `json:"balance_due"`
}

// InvoiceData is the aggregate root handed to the calculator and the layout
// engine.
type InvoiceData struct {
	From               string           `json:"from" yaml:"from"`
	BillTo             string           `json:"bill_to" yaml:"bill_to"`
	ShipTo             string           `json:"ship_to" yaml:"ship_to"`
	InvoiceNumber      string           `json:"invoice_number" yaml:"invoice_number"`
	InvoiceDate        string           `json:"invoice_date" yaml:"invoice_date"`
	DueDate            string           `json:"due_date" yaml:"due_date"`
	PONumber           string           `json:"po_number" yaml:"po_number"`
	PaymentTerms       string           `json:"payment_terms" yaml:"payment_terms"`
	Logo               *ImageAttachment `json:"logo,omitempty" yaml:"logo,omitempty"`
	Signature          *ImageAttachment `json:"signature,omitempty" yaml:"signature,omitempty"`
	Items              []LineItem       `json:"items" yaml:"items"`
	TermsAndConditions string           `json:"terms_and_conditions" yaml:"terms_and_conditions"`
	Notes              string           `json:"notes" yaml:"notes"`
	BankDetails        BankDetails      `json:"bank_details" yaml:"bank_details"`
	CurrencyCode       string           `json:"currency_code" yaml:"currency_code"`
	CurrencySymbol     string           `json:"currency_symbol" yaml:"currency_symbol"`
	// AmountPaid is free text parsed leniently like item numbers.
	AmountPaid string `json:"amount_paid,omitempty" yaml:"amount_paid,omitempty"`

	Totals Totals `json:"totals" yaml:"-"`
}

// AnyItemHasTax reports whether at least one line item carries a tax slot.
func (d *InvoiceData) AnyItemHasTax() bool {
	for i := range d.Items {
		if d.Items[i].HasTax() {
			return true
		}
	}
	return false
}
