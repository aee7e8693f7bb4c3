package pricing

import "overcooked-ordering/pricing-svc/internal/domain"

// CalculateDiscount returns the discount one offer earns against the cart.
// It never errors; unmatched items contribute nothing.
func CalculateDiscount(offer domain.OfferRule, lines []domain.CartLine) int64 {
	discount, _ := evaluateDiscount(offer, lines)
	return discount
}

// evaluateDiscount also reports the item ids the offer touched.
func evaluateDiscount(offer domain.OfferRule, lines []domain.CartLine) (int64, []string) {
	switch offer.Type {
	case domain.OfferPercentage:
		return percentageDiscount(offer, lines)
	case domain.OfferFixedAmount:
		return fixedAmountDiscount(offer, lines)
	case domain.OfferBOGO:
		return bogoDiscount(offer, lines)
	case domain.OfferBundle:
		return bundleDiscount(offer, lines)
	default:
		// CompileOffer rejects unknown tags, so only a hand-built rule lands here.
		return 0, nil
	}
}

// applicableLines honours the "all" sentinel.
func applicableLines(offer domain.OfferRule, lines []domain.CartLine) []domain.CartLine {
	all := offer.AppliesToAll()
	var matched []domain.CartLine
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		if all || offer.Lists(line.ItemID()) {
			matched = append(matched, line)
		}
	}
	return matched
}

// listedLines ignores the "all" sentinel.
func listedLines(offer domain.OfferRule, lines []domain.CartLine) []domain.CartLine {
	var matched []domain.CartLine
	for _, line := range lines {
		if line.Quantity > 0 && offer.Lists(line.ItemID()) {
			matched = append(matched, line)
		}
	}
	return matched
}

func itemIDs(lines []domain.CartLine) []string {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.ItemID()] {
			seen[line.ItemID()] = true
			ids = append(ids, line.ItemID())
		}
	}
	return ids
}

func percentageDiscount(offer domain.OfferRule, lines []domain.CartLine) (int64, []string) {
	matched := applicableLines(offer, lines)
	subtotal := CartTotal(matched)
	if subtotal <= 0 {
		return 0, nil
	}
	return subtotal * offer.DiscountValue / 100, itemIDs(matched)
}

// fixedAmountDiscount is deliberately uncapped; the order total clamp happens in ApplyOffers.
func fixedAmountDiscount(offer domain.OfferRule, lines []domain.CartLine) (int64, []string) {
	matched := applicableLines(offer, lines)
	if len(matched) == 0 {
		return 0, nil
	}
	return offer.DiscountValue, itemIDs(matched)
}

// bogoDiscount gives the cheapest listed unit free per complete pair.
// Add-ons never enter the free unit's price.
func bogoDiscount(offer domain.OfferRule, lines []domain.CartLine) (int64, []string) {
	matched := listedLines(offer, lines)
	if len(matched) == 0 {
		return 0, nil
	}

	quantity := 0
	lowest := int64(-1)
	for _, line := range matched {
		quantity += line.Quantity
		unit := UnitBase(line.Item, line.VariationIndex)
		if lowest < 0 || unit < lowest {
			lowest = unit
		}
	}

	if offer.MinQuantity > 0 && quantity < offer.MinQuantity {
		return 0, nil
	}
	pairs := quantity / 2
	if offer.MaxApplications > 0 && pairs > offer.MaxApplications {
		pairs = offer.MaxApplications
	}
	if pairs == 0 || lowest <= 0 {
		return 0, nil
	}
	return int64(pairs) * lowest, itemIDs(matched)
}

// bundleDiscount requires every listed item in the cart; DiscountValue is the bundle's target price.
func bundleDiscount(offer domain.OfferRule, lines []domain.CartLine) (int64, []string) {
	if len(offer.ApplicableItems) == 0 {
		return 0, nil
	}

	present := make(map[string]bool)
	for _, line := range lines {
		if line.Quantity > 0 {
			present[line.ItemID()] = true
		}
	}
	for _, id := range offer.ApplicableItems {
		if !present[id] {
			return 0, nil
		}
	}

	matched := listedLines(offer, lines)
	subtotal := CartTotal(matched)
	discount := subtotal - offer.DiscountValue
	if discount <= 0 {
		return 0, nil
	}
	return discount, itemIDs(matched)
}
