package domain

type OfferStats struct {
	OfferID       string `json:"offer_id"`
	Redemptions   int64  `json:"redemptions"`
	TotalDiscount int64  `json:"total_discount"`
}

type DailyReport struct {
	Day     string       `json:"day"`
	Savings int64        `json:"savings"`
	Offers  []OfferStats `json:"offers"`
}
