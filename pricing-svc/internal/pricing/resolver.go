package pricing

import (
	"fmt"
	"strings"
	"time"

	"overcooked-ordering/pricing-svc/internal/domain"
)

// StackingPolicy decides how simultaneously accepted offers combine.
type StackingPolicy int

const (
	// StackExclusive applies the better of the summed combinable offers and
	// the single best non-combinable offer.
	StackExclusive StackingPolicy = iota
	// StackSum adds every accepted offer regardless of its combinable flag.
	StackSum
)

func ParseStackingPolicy(value string) (StackingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "exclusive":
		return StackExclusive, nil
	case "sum":
		return StackSum, nil
	}
	return StackExclusive, fmt.Errorf("unknown stacking policy %q", value)
}

func (p StackingPolicy) String() string {
	if p == StackSum {
		return "sum"
	}
	return "exclusive"
}

// DetectApplicableOffers evaluates the catalog in order. Ineligible offers are
// kept with their reason and a zero discount; eligible offers are kept only
// when they earn something.
func DetectApplicableOffers(lines []domain.CartLine, offers []domain.OfferRule, at time.Time) []domain.AppliedOffer {
	detected := make([]domain.AppliedOffer, 0, len(offers))
	for _, offer := range offers {
		eligibility := CheckEligibility(offer, at)
		if !eligibility.Eligible {
			detected = append(detected, domain.AppliedOffer{
				OfferID:    offer.ID,
				Name:       offer.Name,
				Type:       offer.Type,
				ItemIDs:    []string{},
				Combinable: offer.Combinable,
				Reason:     eligibility.Reason,
			})
			continue
		}

		discount, touched := evaluateDiscount(offer, lines)
		if discount <= 0 {
			continue
		}
		detected = append(detected, domain.AppliedOffer{
			OfferID:    offer.ID,
			Name:       offer.Name,
			Type:       offer.Type,
			ItemIDs:    touched,
			Discount:   discount,
			Eligible:   true,
			Accepted:   true,
			Combinable: offer.Combinable,
		})
	}
	return detected
}

// AcceptedIDs lists every detected offer currently eligible for application.
func AcceptedIDs(detected []domain.AppliedOffer) []string {
	ids := make([]string, 0, len(detected))
	for _, offer := range detected {
		if offer.Eligible && offer.Accepted {
			ids = append(ids, offer.OfferID)
		}
	}
	return ids
}

// ApplyOffers folds the accepted offers into a final total. It has no side
// effects and returns the same summary for the same arguments.
func ApplyOffers(lines []domain.CartLine, detected []domain.AppliedOffer, acceptedIDs []string, policy StackingPolicy) domain.OfferSummary {
	originalTotal := CartTotal(lines)

	accepted := make(map[string]bool, len(acceptedIDs))
	for _, id := range acceptedIDs {
		accepted[id] = true
	}

	var selected []domain.AppliedOffer
	for _, offer := range detected {
		if accepted[offer.OfferID] && offer.Accepted && offer.Eligible && offer.Discount > 0 {
			selected = append(selected, offer)
		}
	}

	applied := selected
	if policy == StackExclusive {
		applied = resolveExclusive(selected)
	}
	if applied == nil {
		applied = []domain.AppliedOffer{}
	}

	var totalDiscount int64
	for _, offer := range applied {
		totalDiscount += offer.Discount
	}

	discountedTotal := originalTotal - totalDiscount
	if discountedTotal < 0 {
		discountedTotal = 0
	}

	return domain.OfferSummary{
		OriginalTotal:   originalTotal,
		DiscountedTotal: discountedTotal,
		AppliedOffers:   applied,
		Savings:         totalDiscount,
	}
}

// resolveExclusive keeps either every combinable offer or the single best
// non-combinable one, whichever saves more. Ties go to the combinable set.
func resolveExclusive(selected []domain.AppliedOffer) []domain.AppliedOffer {
	var combinable []domain.AppliedOffer
	var combinableSum int64
	best := -1
	for i, offer := range selected {
		if offer.Combinable {
			combinable = append(combinable, offer)
			combinableSum += offer.Discount
			continue
		}
		if best < 0 || offer.Discount > selected[best].Discount {
			best = i
		}
	}

	if best >= 0 && selected[best].Discount > combinableSum {
		return []domain.AppliedOffer{selected[best]}
	}
	return combinable
}
