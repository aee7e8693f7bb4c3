package pricing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"overcooked-ordering/pricing-svc/internal/domain"
)

const minutesPerDay = 24 * 60

// ParseClock converts "HH:mm" into minutes since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: time %q is not HH:mm", ErrConfiguration, value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: bad hour in %q", ErrConfiguration, value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: bad minute in %q", ErrConfiguration, value)
	}
	return hours*60 + minutes, nil
}

// FormatClock is the inverse of ParseClock.
func FormatClock(minute int) string {
	minute = ((minute % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

func parseOfferType(tag string) (domain.OfferType, error) {
	switch domain.OfferType(strings.ToLower(strings.TrimSpace(tag))) {
	case domain.OfferPercentage:
		return domain.OfferPercentage, nil
	case domain.OfferFixedAmount:
		return domain.OfferFixedAmount, nil
	case domain.OfferBOGO:
		return domain.OfferBOGO, nil
	case domain.OfferBundle:
		return domain.OfferBundle, nil
	}
	return "", fmt.Errorf("%w: unrecognized offer type %q", ErrConfiguration, tag)
}

func compileWindow(spec domain.TimeWindowSpec) (domain.TimeWindow, error) {
	start, err := ParseClock(spec.Start)
	if err != nil {
		return domain.TimeWindow{}, err
	}
	end, err := ParseClock(spec.End)
	if err != nil {
		return domain.TimeWindow{}, err
	}
	// Windows never wrap past midnight; 22:00-02:00 must be split in two.
	if start > end {
		return domain.TimeWindow{}, fmt.Errorf("%w: window %s-%s crosses midnight", ErrConfiguration, spec.Start, spec.End)
	}
	if len(spec.Days) == 0 {
		return domain.TimeWindow{}, fmt.Errorf("%w: window %s-%s has no weekdays", ErrConfiguration, spec.Start, spec.End)
	}

	days := make([]int, 0, len(spec.Days))
	seen := make(map[int]bool, len(spec.Days))
	for _, day := range spec.Days {
		if day < 1 || day > 7 {
			return domain.TimeWindow{}, fmt.Errorf("%w: weekday %d outside 1..7", ErrConfiguration, day)
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}

	return domain.TimeWindow{StartMinute: start, EndMinute: end, Days: days}, nil
}

// CompileOffer validates a catalog offer and parses its windows once.
func CompileOffer(spec domain.OfferSpec) (domain.OfferRule, error) {
	if strings.TrimSpace(spec.ID) == "" {
		return domain.OfferRule{}, fmt.Errorf("%w: offer without id", ErrConfiguration)
	}
	offerType, err := parseOfferType(spec.Type)
	if err != nil {
		return domain.OfferRule{}, fmt.Errorf("offer %s: %w", spec.ID, err)
	}
	if len(spec.TimeWindows) == 0 {
		return domain.OfferRule{}, fmt.Errorf("%w: offer %s has no time windows", ErrConfiguration, spec.ID)
	}
	if spec.DiscountValue < 0 {
		return domain.OfferRule{}, fmt.Errorf("%w: offer %s has negative discount value", ErrConfiguration, spec.ID)
	}
	if offerType == domain.OfferPercentage && spec.DiscountValue > 100 {
		return domain.OfferRule{}, fmt.Errorf("%w: offer %s discounts more than 100%%", ErrConfiguration, spec.ID)
	}
	if spec.MinQuantity < 0 || spec.MaxApplications < 0 {
		return domain.OfferRule{}, fmt.Errorf("%w: offer %s has negative quantity limits", ErrConfiguration, spec.ID)
	}

	windows := make([]domain.TimeWindow, 0, len(spec.TimeWindows))
	for _, ws := range spec.TimeWindows {
		window, err := compileWindow(ws)
		if err != nil {
			return domain.OfferRule{}, fmt.Errorf("offer %s: %w", spec.ID, err)
		}
		windows = append(windows, window)
	}

	items := make([]string, len(spec.ApplicableItems))
	copy(items, spec.ApplicableItems)

	return domain.OfferRule{
		ID:              spec.ID,
		Name:            spec.Name,
		Type:            offerType,
		ApplicableItems: items,
		DiscountValue:   spec.DiscountValue,
		Windows:         windows,
		MinQuantity:     spec.MinQuantity,
		MaxApplications: spec.MaxApplications,
		Combinable:      spec.Combinable,
		IsActive:        spec.IsActive,
	}, nil
}

// CompileCatalog refuses the whole catalog if any offer is malformed.
func CompileCatalog(items []domain.MenuItem, specs []domain.OfferSpec, loadedAt time.Time) (*domain.Catalog, error) {
	offers := make([]domain.OfferRule, 0, len(specs))
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if seen[spec.ID] {
			return nil, fmt.Errorf("%w: duplicate offer id %s", ErrConfiguration, spec.ID)
		}
		seen[spec.ID] = true

		offer, err := CompileOffer(spec)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}

	if items == nil {
		items = []domain.MenuItem{}
	}
	return &domain.Catalog{Items: items, Offers: offers, LoadedAt: loadedAt}, nil
}
