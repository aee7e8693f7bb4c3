package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"overcooked-ordering/pricing-svc/internal/domain"
	"overcooked-ordering/pricing-svc/internal/pricing"
)

var (
	ErrEmptyCart       = errors.New("cart has no lines")
	ErrInvalidQuantity = errors.New("line quantity must be at least 1")
)

type PricingService struct {
	catalog CatalogProvider
	clock   Clock
	policy  pricing.StackingPolicy
}

func NewPricingService(catalog CatalogProvider, clock Clock, policy pricing.StackingPolicy) *PricingService {
	return &PricingService{
		catalog: catalog,
		clock:   clock,
		policy:  policy,
	}
}

func (s *PricingService) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Items, nil
}

// Offers reports every catalog offer with its eligibility at the given
// instant. A zero instant means now.
func (s *PricingService) Offers(ctx context.Context, at time.Time) ([]domain.OfferStatus, error) {
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if at.IsZero() {
		at = now
	} else {
		at = at.In(now.Location())
	}

	statuses := make([]domain.OfferStatus, 0, len(catalog.Offers))
	for _, offer := range catalog.Offers {
		eligibility := pricing.CheckEligibility(offer, at)
		statuses = append(statuses, domain.OfferStatus{
			Offer:    offer,
			Eligible: eligibility.Eligible,
			Reason:   eligibility.Reason,
		})
	}
	return statuses, nil
}

func (s *PricingService) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.Quote, error) {
	quote, _, err := s.quote(ctx, req)
	return quote, err
}

func (s *PricingService) SplitEqual(req domain.EqualSplitRequest) (*domain.BillSplit, error) {
	charges, err := pricing.AllocateEqualSplit(req.Total, req.Participants)
	if err != nil {
		return nil, err
	}
	return equalBillSplit(req.Total, charges), nil
}

func (s *PricingService) SplitItems(ctx context.Context, req domain.ItemSplitRequest) (*domain.BillSplit, error) {
	quote, lines, err := s.quote(ctx, req.QuoteRequest)
	if err != nil {
		return nil, err
	}
	return itemBillSplit(lines, req.Participants, quote.DiscountedTotal)
}

// Checkout prices the cart and splits the discounted total from one catalog
// snapshot and one instant.
func (s *PricingService) Checkout(ctx context.Context, req domain.OrderRequest) (*domain.Quote, *domain.BillSplit, error) {
	quote, lines, err := s.quote(ctx, req.QuoteRequest)
	if err != nil {
		return nil, nil, err
	}
	if req.Split == nil {
		return quote, nil, nil
	}

	var split *domain.BillSplit
	switch req.Split.Mode {
	case domain.SplitEqual:
		charges, err := pricing.AllocateEqualSplit(quote.DiscountedTotal, req.Split.Count)
		if err != nil {
			return nil, nil, err
		}
		split = equalBillSplit(quote.DiscountedTotal, charges)
	case domain.SplitByItem:
		split, err = itemBillSplit(lines, req.Split.Participants, quote.DiscountedTotal)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("%w: unknown split mode %q", pricing.ErrValidation, req.Split.Mode)
	}
	return quote, split, nil
}

func (s *PricingService) ReloadCatalog(ctx context.Context) (*domain.Catalog, error) {
	return s.catalog.Reload(ctx)
}

func (s *PricingService) quote(ctx context.Context, req domain.QuoteRequest) (*domain.Quote, []domain.CartLine, error) {
	if len(req.Lines) == 0 {
		return nil, nil, ErrEmptyCart
	}
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	lines, err := resolveLines(catalog, req.Lines)
	if err != nil {
		return nil, nil, err
	}

	at := s.clock.Now()
	detected := pricing.DetectApplicableOffers(lines, catalog.Offers, at)

	accepted := req.AcceptedOfferIDs
	if accepted == nil {
		accepted = pricing.AcceptedIDs(detected)
	} else {
		markAccepted(detected, accepted)
	}
	summary := pricing.ApplyOffers(lines, detected, accepted, s.policy)

	quote := &domain.Quote{
		Lines:           quotedLines(lines),
		OriginalTotal:   summary.OriginalTotal,
		DiscountedTotal: summary.DiscountedTotal,
		Savings:         summary.Savings,
		DetectedOffers:  detected,
		AppliedOffers:   summary.AppliedOffers,
		EvaluatedAt:     at,
	}

	log.Printf("[pricing-svc] quote: %d lines, %s -> %s, %d of %d offers applied",
		len(lines), pricing.FormatYen(quote.OriginalTotal), pricing.FormatYen(quote.DiscountedTotal),
		len(quote.AppliedOffers), len(detected))
	return quote, lines, nil
}

// resolveLines attaches menu items to request lines. Unknown ids price at
// zero so a stale client cart still quotes.
func resolveLines(catalog *domain.Catalog, requested []domain.LineRequest) ([]domain.CartLine, error) {
	lines := make([]domain.CartLine, 0, len(requested))
	for _, req := range requested {
		if req.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %q has quantity %d", ErrInvalidQuantity, req.ItemID, req.Quantity)
		}
		item, ok := catalog.Item(req.ItemID)
		if !ok {
			log.Printf("[pricing-svc] unknown menu item %q priced at 0", req.ItemID)
			item = domain.MenuItem{ID: req.ItemID}
		}
		lines = append(lines, domain.CartLine{
			Item:           item,
			Quantity:       req.Quantity,
			VariationIndex: req.VariationIndex,
			AddOns:         req.AddOns,
		})
	}
	return lines, nil
}

func markAccepted(detected []domain.AppliedOffer, acceptedIDs []string) {
	accepted := make(map[string]bool, len(acceptedIDs))
	for _, id := range acceptedIDs {
		accepted[id] = true
	}
	for i := range detected {
		detected[i].Accepted = detected[i].Eligible && accepted[detected[i].OfferID]
	}
}

func quotedLines(lines []domain.CartLine) []domain.QuotedLine {
	quoted := make([]domain.QuotedLine, 0, len(lines))
	for _, line := range lines {
		quoted = append(quoted, domain.QuotedLine{
			ItemID:         line.ItemID(),
			Name:           line.Item.Name,
			Quantity:       line.Quantity,
			VariationIndex: line.VariationIndex,
			AddOns:         line.AddOns,
			UnitPrice:      pricing.LinePrice(line.Item, line.VariationIndex, line.AddOns),
			LineTotal:      pricing.LineTotal(line),
		})
	}
	return quoted
}

func equalBillSplit(total int64, charges []int64) *domain.BillSplit {
	allocations := make([]domain.Allocation, len(charges))
	for i, amount := range charges {
		allocations[i] = domain.Allocation{
			Name:    fmt.Sprintf("Guest %d", i+1),
			Amount:  amount,
			ItemIDs: []string{},
		}
	}
	return &domain.BillSplit{Mode: domain.SplitEqual, Total: total, Allocations: allocations}
}

func itemBillSplit(lines []domain.CartLine, participants []domain.SplitParticipant, total int64) (*domain.BillSplit, error) {
	allocations, err := pricing.AllocateItemSplit(lines, participants, total)
	if err != nil {
		return nil, err
	}
	return &domain.BillSplit{Mode: domain.SplitByItem, Total: total, Allocations: allocations}, nil
}
