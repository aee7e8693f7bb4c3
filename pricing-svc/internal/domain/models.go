package domain

import "time"

// AllItems is the applicability sentinel matching every cart line.
const AllItems = "all"

type OfferType string

const (
	OfferPercentage  OfferType = "percentage"
	OfferFixedAmount OfferType = "fixed_amount"
	OfferBOGO        OfferType = "bogo"
	OfferBundle      OfferType = "bundle"
)

type Variation struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type AddOn struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Note  string `json:"note,omitempty"`
}

// MenuItem prices are whole yen. A variation price replaces BasePrice, add-ons add to it.
type MenuItem struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	BasePrice  int64       `json:"base_price"`
	Category   string      `json:"category"`
	Variations []Variation `json:"variations,omitempty"`
	AddOns     []AddOn     `json:"add_ons,omitempty"`
}

type CartLine struct {
	Item           MenuItem `json:"item"`
	Quantity       int      `json:"quantity"`
	VariationIndex *int     `json:"variation_index,omitempty"`
	AddOns         []string `json:"add_ons,omitempty"`
}

func (l CartLine) ItemID() string {
	return l.Item.ID
}

// TimeWindow is a compiled window: minutes since local midnight, both ends
// inclusive, weekdays numbered 1=Monday..7=Sunday.
type TimeWindow struct {
	StartMinute int   `json:"start_minute"`
	EndMinute   int   `json:"end_minute"`
	Days        []int `json:"days"`
}

// TimeWindowSpec is the catalog form of a window, with "HH:mm" clock strings.
type TimeWindowSpec struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  []int  `json:"days"`
}

// OfferSpec is an offer rule as entered in the catalog, before validation.
type OfferSpec struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Type            string           `json:"type"`
	ApplicableItems []string         `json:"applicable_items"`
	DiscountValue   int64            `json:"discount_value"`
	TimeWindows     []TimeWindowSpec `json:"time_windows"`
	MinQuantity     int              `json:"min_quantity,omitempty"`
	MaxApplications int              `json:"max_applications,omitempty"`
	Combinable      bool             `json:"combinable"`
	IsActive        bool             `json:"is_active"`
}

// OfferRule is a validated offer. MinQuantity and MaxApplications are unset when zero.
type OfferRule struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Type            OfferType    `json:"type"`
	ApplicableItems []string     `json:"applicable_items"`
	DiscountValue   int64        `json:"discount_value"`
	Windows         []TimeWindow `json:"windows"`
	MinQuantity     int          `json:"min_quantity,omitempty"`
	MaxApplications int          `json:"max_applications,omitempty"`
	Combinable      bool         `json:"combinable"`
	IsActive        bool         `json:"is_active"`
}

func (o OfferRule) AppliesToAll() bool {
	for _, id := range o.ApplicableItems {
		if id == AllItems {
			return true
		}
	}
	return false
}

// Lists reports whether itemID is named explicitly in the applicable set.
func (o OfferRule) Lists(itemID string) bool {
	for _, id := range o.ApplicableItems {
		if id == itemID {
			return true
		}
	}
	return false
}

type Catalog struct {
	Items    []MenuItem  `json:"items"`
	Offers   []OfferRule `json:"offers"`
	LoadedAt time.Time   `json:"loaded_at"`
}

func (c *Catalog) Item(id string) (MenuItem, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}

type AppliedOffer struct {
	OfferID    string    `json:"offer_id"`
	Name       string    `json:"name"`
	Type       OfferType `json:"type"`
	ItemIDs    []string  `json:"item_ids"`
	Discount   int64     `json:"discount"`
	Eligible   bool      `json:"eligible"`
	Accepted   bool      `json:"accepted"`
	Combinable bool      `json:"combinable"`
	Reason     string    `json:"reason,omitempty"`
}

type OfferSummary struct {
	OriginalTotal   int64          `json:"original_total"`
	DiscountedTotal int64          `json:"discounted_total"`
	AppliedOffers   []AppliedOffer `json:"applied_offers"`
	Savings         int64          `json:"savings"`
}

type SplitMode string

const (
	SplitEqual  SplitMode = "equal"
	SplitByItem SplitMode = "by-item"
)

type SplitParticipant struct {
	Name    string   `json:"name"`
	ItemIDs []string `json:"item_ids"`
}

type Allocation struct {
	Name    string   `json:"name"`
	Amount  int64    `json:"amount"`
	ItemIDs []string `json:"item_ids,omitempty"`
}

type BillSplit struct {
	Mode        SplitMode    `json:"mode"`
	Total       int64        `json:"total"`
	Allocations []Allocation `json:"allocations"`
}
