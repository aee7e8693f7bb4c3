package domain

import "time"

type LineRequest struct {
	ItemID         string   `json:"item_id"`
	Quantity       int      `json:"quantity"`
	VariationIndex *int     `json:"variation_index,omitempty"`
	AddOns         []string `json:"add_ons,omitempty"`
}

// QuoteRequest leaves AcceptedOfferIDs nil to accept every detected offer.
type QuoteRequest struct {
	Lines            []LineRequest `json:"lines"`
	AcceptedOfferIDs []string      `json:"accepted_offer_ids,omitempty"`
}

type QuotedLine struct {
	ItemID         string   `json:"item_id"`
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	VariationIndex *int     `json:"variation_index,omitempty"`
	AddOns         []string `json:"add_ons,omitempty"`
	UnitPrice      int64    `json:"unit_price"`
	LineTotal      int64    `json:"line_total"`
}

type Quote struct {
	Lines           []QuotedLine   `json:"lines"`
	OriginalTotal   int64          `json:"original_total"`
	DiscountedTotal int64          `json:"discounted_total"`
	Savings         int64          `json:"savings"`
	DetectedOffers  []AppliedOffer `json:"detected_offers"`
	AppliedOffers   []AppliedOffer `json:"applied_offers"`
	EvaluatedAt     time.Time      `json:"evaluated_at"`
}

type OfferStatus struct {
	Offer    OfferRule `json:"offer"`
	Eligible bool      `json:"eligible"`
	Reason   string    `json:"reason,omitempty"`
}

type EqualSplitRequest struct {
	Total        int64 `json:"total"`
	Participants int   `json:"participants"`
}

type ItemSplitRequest struct {
	QuoteRequest
	Participants []SplitParticipant `json:"participants"`
}

type SplitRequest struct {
	Mode         SplitMode          `json:"mode"`
	Count        int                `json:"count,omitempty"`
	Participants []SplitParticipant `json:"participants,omitempty"`
}

type OrderRequest struct {
	QuoteRequest
	Split *SplitRequest `json:"split,omitempty"`
}

// Order is the finalized computation handed to the order store.
type Order struct {
	ID              string         `json:"id"`
	Lines           []QuotedLine   `json:"lines"`
	OriginalTotal   int64          `json:"original_total"`
	ComputedTotal   int64          `json:"computed_total"`
	Savings         int64          `json:"savings"`
	AppliedOffers   []AppliedOffer `json:"applied_offers"`
	SplitAllocation *BillSplit     `json:"split_allocation,omitempty"`
	Status          string         `json:"status"`
	QRCode          string         `json:"qr_code,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

type OfferRedemption struct {
	OfferID  string `json:"offer_id"`
	Discount int64  `json:"discount"`
}

type OrderEvent struct {
	Type          string            `json:"type"`
	OrderID       string            `json:"order_id"`
	OriginalTotal int64             `json:"original_total"`
	ComputedTotal int64             `json:"computed_total"`
	Savings       int64             `json:"savings"`
	Offers        []OfferRedemption `json:"offers"`
	Timestamp     time.Time         `json:"timestamp"`
}
