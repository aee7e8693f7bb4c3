package domain

import "time"

const EventOrderFinalized = "order_finalized"

type OfferRedemption struct {
	OfferID  string `json:"offer_id"`
	Discount int64  `json:"discount"`
}

// OrderEvent mirrors the message pricing-svc publishes after an order is finalized.
type OrderEvent struct {
	Type          string            `json:"type"`
	OrderID       string            `json:"order_id"`
	OriginalTotal int64             `json:"original_total"`
	ComputedTotal int64             `json:"computed_total"`
	Savings       int64             `json:"savings"`
	Offers        []OfferRedemption `json:"offers"`
	Timestamp     time.Time         `json:"timestamp"`
}

// Day is the restaurant-local calendar day the order was finalized on.
func (e OrderEvent) Day() string {
	return e.Timestamp.Format("2006-01-02")
}
