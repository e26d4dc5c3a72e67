package invoice

import (
	"fmt"

	"invoiceforge/internal/domain"
)

// NewItem returns an empty line item as created by "add item".
func NewItem() domain.LineItem {
	return domain.LineItem{}
}

// AddItem returns a copy of items with an empty item appended.
func AddItem(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, NewItem())
}

// RemoveItem returns a copy of items without the item at index. An index out
// of range leaves the list unchanged.
func RemoveItem(items []domain.LineItem, index int) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items))
	for i := range items {
		if i != index {
			out = append(out, items[i])
		}
	}
	return out
}

// ApplyItemEdit applies a single field edit the way the invoice form does:
// non-numeric text in a numeric field becomes "0", editing the amount freezes
// it, and editing quantity or unit price recomputes a non-frozen amount.
func ApplyItemEdit(item domain.LineItem, field domain.ItemField, value string) (domain.LineItem, error) {
	if domain.NumericItemFields[field] && !IsNumericText(value) {
		value = "0"
	}

	switch field {
	case domain.ItemFieldDescription:
		item.Description = value
	case domain.ItemFieldAmount:
		item.Amount = value
		item.AmountIsManual = true
	case domain.ItemFieldQuantity:
		item.Quantity = value
	case domain.ItemFieldUnitPrice:
		item.UnitPrice = value
	default:
		return item, fmt.Errorf("%w: %q", domain.ErrUnknownItemField, field)
	}

	if (field == domain.ItemFieldQuantity || field == domain.ItemFieldUnitPrice) && !item.AmountIsManual {
		item.Amount = resolveAmount(&item).StringFixed(2)
	}
	return item, nil
}

// EditItemAt applies ApplyItemEdit to items[index] and returns a new list.
func EditItemAt(items []domain.LineItem, index int, field domain.ItemField, value string) ([]domain.LineItem, error) {
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("%w: %d", domain.ErrItemIndexOutOfRange, index)
	}
	edited, err := ApplyItemEdit(items[index], field, value)
	if err != nil {
		return nil, err
	}
	out := make([]domain.LineItem, len(items))
	copy(out, items)
	out[index] = edited
	return out, nil
}

// SetItemTax attaches a tax slot to the item and makes it visible.
func SetItemTax(item domain.LineItem, name, percentage string) domain.LineItem {
	if !IsNumericText(percentage) {
		percentage = "0"
	}
	item.Tax = &domain.ItemTax{Name: name, Percentage: percentage}
	item.ShowTax = true
	return item
}

// ClearItemTax removes the item's tax slot.
func ClearItemTax(item domain.LineItem) domain.LineItem {
	item.Tax = nil
	item.ShowTax = false
	return item
}
