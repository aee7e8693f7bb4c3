package pricing

import "overcooked-ordering/pricing-svc/internal/domain"

// UnitBase returns the item's base price, replaced by the selected variation
// when the index is valid. Add-ons are not included.
func UnitBase(item domain.MenuItem, variationIndex *int) int64 {
	if variationIndex != nil {
		idx := *variationIndex
		if idx >= 0 && idx < len(item.Variations) {
			return item.Variations[idx].Price
		}
	}
	return item.BasePrice
}

// LinePrice resolves one unit of a cart line. Unknown add-on names and bad
// variation indexes are ignored.
func LinePrice(item domain.MenuItem, variationIndex *int, addOnNames []string) int64 {
	price := UnitBase(item, variationIndex)

	if len(addOnNames) > 0 {
		selected := make(map[string]struct{}, len(addOnNames))
		for _, name := range addOnNames {
			selected[name] = struct{}{}
		}
		for _, addOn := range item.AddOns {
			if _, ok := selected[addOn.Name]; ok {
				price += addOn.Price
			}
		}
	}

	if price < 0 {
		return 0
	}
	return price
}

func LineTotal(line domain.CartLine) int64 {
	if line.Quantity <= 0 {
		return 0
	}
	return LinePrice(line.Item, line.VariationIndex, line.AddOns) * int64(line.Quantity)
}

func CartTotal(lines []domain.CartLine) int64 {
	var total int64
	for _, line := range lines {
		total += LineTotal(line)
	}
	return total
}
