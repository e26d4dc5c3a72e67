package validator

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"invoiceforge/internal/currency"
	"invoiceforge/internal/domain"
	"invoiceforge/internal/invoice"
)

const amountTolerance = 0.005

var (
	ibanPattern  = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{11,30}$`)
	swiftPattern = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
)

// rule is a built-in check backed by a plain function.
type rule struct {
	key      string
	name     string
	severity domain.ValidationSeverity
	validate func(*domain.InvoiceData) []Result
}

func (r *rule) RuleKey() string                     { return r.key }
func (r *rule) RuleName() string                    { return r.name }
func (r *rule) Severity() domain.ValidationSeverity { return r.severity }

func (r *rule) Validate(_ context.Context, data *domain.InvoiceData) []Result {
	return r.validate(data)
}

// BuiltinRules returns every built-in check.
func BuiltinRules() []Validator {
	var all []Validator
	for _, group := range [][]*rule{requiredRules(), formatRules(), mathRules(), logicalRules()} {
		for _, r := range group {
			all = append(all, r)
		}
	}
	return all
}

func check(passed bool, fieldPath, expected, actual, ruleName, okMsg, failMsg string) Result {
	msg := fmt.Sprintf("%s: %s %s", ruleName, fieldPath, okMsg)
	if !passed {
		msg = fmt.Sprintf("%s: %s %s", ruleName, fieldPath, failMsg)
	}
	return Result{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: expected, ActualValue: actual, Message: msg,
	}
}

func itemPath(i int, field string) string {
	return fmt.Sprintf("items[%d].%s", i, field)
}

// isBlankItem reports whether an item was added but never filled in.
func isBlankItem(item *domain.LineItem) bool {
	return strings.TrimSpace(item.Description) == "" && invoice.ResolveAmount(item) == 0
}

func requiredField(key, name, path string, extract func(*domain.InvoiceData) string) *rule {
	return &rule{
		key: key, name: name, severity: domain.ValidationSeverityWarning,
		validate: func(d *domain.InvoiceData) []Result {
			val := strings.TrimSpace(extract(d))
			return []Result{check(val != "", path, "non-empty value", val, name, "is present", "is missing")}
		},
	}
}

func requiredRules() []*rule {
	return []*rule{
		requiredField("req.from", "Required: Sender", "from",
			func(d *domain.InvoiceData) string { return d.From }),
		requiredField("req.bill_to", "Required: Bill To", "bill_to",
			func(d *domain.InvoiceData) string { return d.BillTo }),
		requiredField("req.invoice_number", "Required: Invoice Number", "invoice_number",
			func(d *domain.InvoiceData) string { return d.InvoiceNumber }),
		{
			key: "req.items", name: "Required: Line Items",
			severity: domain.ValidationSeverityError,
			validate: func(d *domain.InvoiceData) []Result {
				filled := 0
				for i := range d.Items {
					if !isBlankItem(&d.Items[i]) {
						filled++
					}
				}
				return []Result{check(filled > 0, "items", ">= 1 filled item", fmt.Sprintf("%d", filled),
					"Required: Line Items", "has at least one filled item", "has no filled items")}
			},
		},
		{
			key: "req.line_item.description", name: "Required: Line Item Description",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				results := make([]Result, 0, len(d.Items))
				for i := range d.Items {
					item := &d.Items[i]
					if isBlankItem(item) {
						continue
					}
					desc := strings.TrimSpace(item.Description)
					results = append(results, check(desc != "", itemPath(i, "description"), "non-empty value", desc,
						"Required: Line Item Description", "is present", "is missing on a charged item"))
				}
				return results
			},
		},
	}
}

func formatRules() []*rule {
	return []*rule{
		{
			key: "fmt.currency_code", name: "Format: Currency Code",
			severity: domain.ValidationSeverityError,
			validate: func(d *domain.InvoiceData) []Result {
				code := strings.TrimSpace(d.CurrencyCode)
				if code == "" {
					return nil
				}
				_, err := currency.Normalize(code)
				return []Result{check(err == nil, "currency_code", "ISO 4217 code", code,
					"Format: Currency Code", "is a known currency", "is not a known currency")}
			},
		},
		{
			key: "fmt.line_item.numeric", name: "Format: Line Item Numbers",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				var results []Result
				for i := range d.Items {
					item := &d.Items[i]
					fields := []struct {
						name string
						val  string
					}{
						{"quantity", item.Quantity},
						{"unit_price", item.UnitPrice},
						{"amount", item.Amount},
					}
					for _, f := range fields {
						results = append(results, check(invoice.IsNumericText(f.val), itemPath(i, f.name), "number", f.val,
							"Format: Line Item Numbers", "is numeric", "is not numeric and counts as 0"))
					}
				}
				return results
			},
		},
		{
			key: "fmt.line_item.tax_percentage", name: "Format: Tax Percentage",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				var results []Result
				for i := range d.Items {
					item := &d.Items[i]
					if !item.HasTax() {
						continue
					}
					pct := strings.TrimSpace(item.Tax.Percentage)
					v := invoice.ParseLenientNumber(pct)
					passed := invoice.IsNumericText(pct) && v >= 0 && v <= 100
					results = append(results, check(passed, itemPath(i, "tax.percentage"), "0 to 100", pct,
						"Format: Tax Percentage", "is within range", "is outside 0 to 100 or not numeric"))
				}
				return results
			},
		},
		{
			key: "fmt.amount_paid", name: "Format: Amount Paid",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				paid := strings.TrimSpace(d.AmountPaid)
				if paid == "" {
					return nil
				}
				return []Result{check(invoice.IsNumericText(paid), "amount_paid", "number", paid,
					"Format: Amount Paid", "is numeric", "is not numeric and counts as 0")}
			},
		},
		{
			key: "fmt.invoice_date", name: "Format: Invoice Date",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				return dateFormat("invoice_date", d.InvoiceDate, "Format: Invoice Date")
			},
		},
		{
			key: "fmt.due_date", name: "Format: Due Date",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				return dateFormat("due_date", d.DueDate, "Format: Due Date")
			},
		},
		{
			key: "fmt.bank.iban", name: "Format: IBAN",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				return patternCheck("bank_details.iban", d.BankDetails.IBAN, ibanPattern, "Format: IBAN")
			},
		},
		{
			key: "fmt.bank.swift_code", name: "Format: SWIFT Code",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				return patternCheck("bank_details.swift_code", d.BankDetails.SwiftCode, swiftPattern, "Format: SWIFT Code")
			},
		},
	}
}

func dateFormat(path, value, ruleName string) []Result {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	_, err := parseDate(value)
	return []Result{check(err == nil, path, "a recognisable date", value, ruleName, "is a valid date", "is not a recognisable date")}
}

func patternCheck(path, value string, pattern *regexp.Regexp, ruleName string) []Result {
	compact := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(value), " ", ""))
	if compact == "" {
		return nil
	}
	return []Result{check(pattern.MatchString(compact), path, pattern.String(), value, ruleName, "is well formed", "is malformed")}
}

func mathRules() []*rule {
	return []*rule{
		{
			key: "math.line_item.amount", name: "Math: Line Item Amount",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				var results []Result
				for i := range d.Items {
					item := &d.Items[i]
					if item.AmountIsManual || strings.TrimSpace(item.Amount) == "" {
						continue
					}
					expected := invoice.ResolveAmount(item)
					actual := invoice.ParseLenientNumber(item.Amount)
					passed := math.Abs(expected-actual) < amountTolerance
					results = append(results, check(passed, itemPath(i, "amount"),
						invoice.FormatFixed2(expected), invoice.FormatFixed2(actual),
						"Math: Line Item Amount", "matches quantity × unit price", "is stale and will be recomputed"))
				}
				return results
			},
		},
		{
			key: "math.line_item.manual_override", name: "Math: Manual Amount Override",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				var results []Result
				for i := range d.Items {
					item := &d.Items[i]
					if !item.AmountIsManual {
						continue
					}
					qty := invoice.ParseLenientNumber(item.Quantity)
					price := invoice.ParseLenientNumber(item.UnitPrice)
					if qty == 0 || price == 0 {
						continue
					}
					computed := invoice.Round2(qty * price)
					actual := invoice.ParseLenientNumber(item.Amount)
					passed := math.Abs(computed-actual) < amountTolerance
					results = append(results, check(passed, itemPath(i, "amount"),
						invoice.FormatFixed2(computed), invoice.FormatFixed2(actual),
						"Math: Manual Amount Override", "agrees with quantity × unit price", "overrides quantity × unit price"))
				}
				return results
			},
		},
	}
}

func logicalRules() []*rule {
	return []*rule{
		{
			key: "logic.line_item.non_negative", name: "Logical: Non-Negative Line Items",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				var results []Result
				for i := range d.Items {
					item := &d.Items[i]
					for _, f := range []struct {
						name string
						val  float64
					}{
						{"quantity", invoice.ParseLenientNumber(item.Quantity)},
						{"unit_price", invoice.ParseLenientNumber(item.UnitPrice)},
						{"amount", invoice.ResolveAmount(item)},
					} {
						results = append(results, check(f.val >= 0, itemPath(i, f.name), ">= 0", invoice.FormatFixed2(f.val),
							"Logical: Non-Negative Line Items", "is non-negative", "is negative"))
					}
				}
				return results
			},
		},
		{
			key: "logic.due_date_order", name: "Logical: Due Date After Invoice Date",
			severity: domain.ValidationSeverityWarning,
			validate: func(d *domain.InvoiceData) []Result {
				invDate, err1 := parseDate(d.InvoiceDate)
				dueDate, err2 := parseDate(d.DueDate)
				if err1 != nil || err2 != nil {
					return nil
				}
				return []Result{check(!dueDate.Before(invDate), "due_date", "on or after "+d.InvoiceDate, d.DueDate,
					"Logical: Due Date After Invoice Date", "is on or after the invoice date", "is before the invoice date")}
			},
		},
	}
}

// parseDate tries common date formats.
func parseDate(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02-01-2006",
		"02/01/2006",
		"2006/01/02",
		"02 Jan 2006",
		"2 Jan 2006",
		"Jan 2, 2006",
		"January 2, 2006",
		"2 January 2006",
		"2006-01-02T15:04:05Z07:00",
	}
	s = strings.TrimSpace(s)
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %s", s)
}
