// Package currency holds the static currency code to symbol table used when
// rendering money amounts.
package currency

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"

	"invoiceforge/internal/domain"
)

// DefaultCode is used when an invoice does not name a currency.
const DefaultCode = "USD"

// Currency describes one entry of the lookup table.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var table = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", Name: "US Dollar"},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro"},
	"GBP": {Code: "GBP", Symbol: "£", Name: "British Pound"},
	"JPY": {Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	"ZAR": {Code: "ZAR", Symbol: "R", Name: "South African Rand"},
	"INR": {Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	"CAD": {Code: "CAD", Symbol: "CA$", Name: "Canadian Dollar"},
	"AUD": {Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	"NZD": {Code: "NZD", Symbol: "NZ$", Name: "New Zealand Dollar"},
	"CHF": {Code: "CHF", Symbol: "CHF", Name: "Swiss Franc"},
	"CNY": {Code: "CNY", Symbol: "CN¥", Name: "Chinese Yuan"},
	"SEK": {Code: "SEK", Symbol: "kr", Name: "Swedish Krona"},
	"NOK": {Code: "NOK", Symbol: "kr", Name: "Norwegian Krone"},
	"DKK": {Code: "DKK", Symbol: "kr", Name: "Danish Krone"},
	"KES": {Code: "KES", Symbol: "KSh", Name: "Kenyan Shilling"},
	"NGN": {Code: "NGN", Symbol: "₦", Name: "Nigerian Naira"},
	"BRL": {Code: "BRL", Symbol: "R$", Name: "Brazilian Real"},
	"MXN": {Code: "MXN", Symbol: "MX$", Name: "Mexican Peso"},
	"SGD": {Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	"AED": {Code: "AED", Symbol: "AED", Name: "UAE Dirham"},
}

// Normalize upper-cases and validates an ISO 4217 code.
func Normalize(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	unit, err := xcurrency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownCurrency, code)
	}
	return unit.String(), nil
}

// Lookup returns the table entry for code.
func Lookup(code string) (Currency, error) {
	norm, err := Normalize(code)
	if err != nil {
		return Currency{}, err
	}
	c, ok := table[norm]
	if !ok {
		return Currency{Code: norm, Symbol: norm, Name: norm}, nil
	}
	return c, nil
}

// SymbolFor returns the display symbol for code. Codes missing from the table
// fall back to the code itself; unparseable codes yield an empty symbol.
func SymbolFor(code string) string {
	c, err := Lookup(code)
	if err != nil {
		return ""
	}
	return c.Symbol
}

// Format renders amount as symbol followed by a fixed two-decimal number,
// without grouping separators. NaN and infinite amounts render as zero.
func Format(amount float64, symbol string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return symbol + decimal.NewFromFloat(amount).StringFixed(2)
}

// List returns the table sorted by code.
func List() []Currency {
	out := make([]Currency, 0, len(table))
	for _, c := range table {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Resolve fills in a missing code or symbol on the invoice. An explicit
// symbol always wins.
func Resolve(code, symbol string) (string, string) {
	if strings.TrimSpace(code) == "" {
		code = DefaultCode
	}
	if norm, err := Normalize(code); err == nil {
		code = norm
	}
	if symbol == "" {
		symbol = SymbolFor(code)
	}
	return code, symbol
}
