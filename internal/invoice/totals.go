package invoice

import (
	"github.com/shopspring/decimal"

	"invoiceforge/internal/domain"
)

// Calculate reduces line items into subtotal, tax, grand total and the
// weighted display tax percentage.
//
// Amounts are accumulated exactly and only rounded when formatted for
// display. The auto-computed amount of a non-manual item is rounded to two
// decimals, as that is what the item itself shows.
func Calculate(items []domain.LineItem) domain.Totals {
	subtotal := decimal.Zero
	taxTotal := decimal.Zero

	for i := range items {
		item := &items[i]
		amount := resolveAmount(item)
		subtotal = subtotal.Add(amount)
		if item.HasTax() {
			taxTotal = taxTotal.Add(amount.Mul(taxRate(item.Tax)).Div(hundred))
		}
	}

	totals := domain.Totals{
		Subtotal: subtotal.InexactFloat64(),
		TaxTotal: taxTotal.InexactFloat64(),
	}
	totals.GrandTotal = totals.Subtotal + totals.TaxTotal
	totals.BalanceDue = totals.GrandTotal

	if subtotal.IsPositive() && taxTotal.IsPositive() {
		totals.EffectiveTaxPercentage = taxTotal.Div(subtotal).Mul(hundred).InexactFloat64()
	}
	return totals
}

// ResolveAmount returns the authoritative amount of a single item.
func ResolveAmount(item *domain.LineItem) float64 {
	return resolveAmount(item).InexactFloat64()
}

// TaxAmount returns the tax charged on a single item, zero when it has no
// tax slot.
func TaxAmount(item *domain.LineItem) float64 {
	if !item.HasTax() {
		return 0
	}
	return resolveAmount(item).Mul(taxRate(item.Tax)).Div(hundred).InexactFloat64()
}

func resolveAmount(item *domain.LineItem) decimal.Decimal {
	if item.AmountIsManual {
		return parseDecimal(item.Amount)
	}
	return parseDecimal(item.Quantity).Mul(parseDecimal(item.UnitPrice)).Round(2)
}

// taxRate clamps negative percentages to zero.
func taxRate(tax *domain.ItemTax) decimal.Decimal {
	pct := parseDecimal(tax.Percentage)
	if pct.IsNegative() {
		return decimal.Zero
	}
	return pct
}

// Recompute returns a copy of data whose derived fields reflect its items.
// Non-manual item amounts are refreshed to round2(quantity * unit price).
func Recompute(data domain.InvoiceData) domain.InvoiceData {
	items := make([]domain.LineItem, len(data.Items))
	copy(items, data.Items)
	for i := range items {
		if !items[i].AmountIsManual {
			items[i].Amount = resolveAmount(&items[i]).StringFixed(2)
		}
	}
	data.Items = items
	data.Totals = Calculate(items)
	applyPayment(&data.Totals, data.AmountPaid)
	return data
}

// applyPayment records the amount already paid and the balance left on the
// grand total. A malformed payment counts as nothing paid.
func applyPayment(t *domain.Totals, amountPaid string) {
	paid := parseDecimal(amountPaid)
	t.AmountPaid = paid.InexactFloat64()
	t.BalanceDue = decimal.NewFromFloat(t.GrandTotal).Sub(paid).InexactFloat64()
}
