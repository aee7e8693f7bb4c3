package pricing

import (
	"time"

	"overcooked-ordering/pricing-svc/internal/domain"
)

var jst = time.FixedZone("JST", 9*60*60)

// monday returns 2025-06-02 at hh:mm JST.
func monday(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, jst)
}

var everyDay = []int{1, 2, 3, 4, 5, 6, 7}

func intPtr(v int) *int { return &v }

func mustCompile(spec domain.OfferSpec) domain.OfferRule {
	offer, err := CompileOffer(spec)
	if err != nil {
		panic(err)
	}
	return offer
}

func lunchPercentage() domain.OfferRule {
	return mustCompile(domain.OfferSpec{
		ID:              "lunch-15",
		Name:            "Lunch 15% off",
		Type:            "percentage",
		ApplicableItems: []string{"katsu"},
		DiscountValue:   15,
		TimeWindows:     []domain.TimeWindowSpec{{Start: "11:00", End: "15:00", Days: everyDay}},
		Combinable:      true,
		IsActive:        true,
	})
}

var (
	katsu = domain.MenuItem{
		ID: "katsu", Name: "Katsu Curry", BasePrice: 1150, Category: "main",
		Variations: []domain.Variation{{Name: "Regular", Price: 1150}, {Name: "Large", Price: 1350}},
		AddOns:     []domain.AddOn{{Name: "Cheese", Price: 150}, {Name: "Egg", Price: 100, Note: "soft boiled"}},
	}
	gyoza   = domain.MenuItem{ID: "gyoza", Name: "Gyoza", BasePrice: 500, Category: "side"}
	ramen   = domain.MenuItem{ID: "ramen", Name: "Ramen", BasePrice: 990, Category: "main"}
	beer    = domain.MenuItem{ID: "beer", Name: "Draft Beer", BasePrice: 800, Category: "drink"}
	edamame = domain.MenuItem{ID: "edamame", Name: "Edamame", BasePrice: 350, Category: "side"}
)

func line(item domain.MenuItem, qty int) domain.CartLine {
	return domain.CartLine{Item: item, Quantity: qty}
}
