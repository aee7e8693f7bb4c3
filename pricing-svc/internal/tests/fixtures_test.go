package tests

import (
	"time"

	"overcooked-ordering/pricing-svc/internal/domain"
	"overcooked-ordering/pricing-svc/internal/pricing"
)

var jst = time.FixedZone("JST", 9*60*60)

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }

// mondayAt returns 2025-06-02 (a Monday) at hh:mm JST.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, jst)
}

var everyDay = []int{1, 2, 3, 4, 5, 6, 7}

var menuFixture = []domain.MenuItem{
	{
		ID: "katsu", Name: "Katsu Curry", BasePrice: 1150, Category: "main",
		Variations: []domain.Variation{{Name: "Regular", Price: 1150}, {Name: "Large", Price: 1350}},
		AddOns:     []domain.AddOn{{Name: "Cheese", Price: 150}},
	},
	{ID: "gyoza", Name: "Gyoza", BasePrice: 500, Category: "side"},
	{ID: "ramen", Name: "Ramen", BasePrice: 990, Category: "main"},
	{ID: "beer", Name: "Draft Beer", BasePrice: 800, Category: "drink"},
}

var offerFixture = []domain.OfferSpec{
	{
		ID: "lunch-15", Name: "Lunch 15% off", Type: "percentage",
		ApplicableItems: []string{"katsu"}, DiscountValue: 15,
		TimeWindows: []domain.TimeWindowSpec{{Start: "11:00", End: "15:00", Days: everyDay}},
		Combinable:  true, IsActive: true,
	},
	{
		ID: "gyoza-bogo", Name: "Gyoza BOGO", Type: "bogo",
		ApplicableItems: []string{"gyoza"}, MinQuantity: 2,
		TimeWindows: []domain.TimeWindowSpec{{Start: "14:00", End: "19:00", Days: everyDay}},
		Combinable:  true, IsActive: true,
	},
	{
		ID: "ramen-beer-set", Name: "Ramen & Beer set", Type: "bundle",
		ApplicableItems: []string{"ramen", "beer"}, DiscountValue: 1000,
		TimeWindows: []domain.TimeWindowSpec{{Start: "17:00", End: "22:00", Days: everyDay}},
		IsActive:    true,
	},
}

func catalogFixture() *domain.Catalog {
	catalog, err := pricing.CompileCatalog(menuFixture, offerFixture, mondayAt(9, 0))
	if err != nil {
		panic(err)
	}
	return catalog
}
