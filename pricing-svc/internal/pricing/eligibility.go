package pricing

import (
	"fmt"
	"strings"
	"time"

	"overcooked-ordering/pricing-svc/internal/domain"
)

const reasonNotActive = "offer not active"

var weekdayNames = [...]string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type Eligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

// isoWeekday maps time.Weekday onto 1=Monday..7=Sunday.
func isoWeekday(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}

func windowMatches(w domain.TimeWindow, day, minute int) bool {
	if minute < w.StartMinute || minute > w.EndMinute {
		return false
	}
	for _, d := range w.Days {
		if d == day {
			return true
		}
	}
	return false
}

// CheckEligibility reads the wall clock of at as-is; callers pass an instant
// already in the restaurant's zone.
func CheckEligibility(offer domain.OfferRule, at time.Time) Eligibility {
	if !offer.IsActive {
		return Eligibility{Reason: reasonNotActive}
	}

	day := isoWeekday(at)
	minute := at.Hour()*60 + at.Minute()
	for _, window := range offer.Windows {
		if windowMatches(window, day, minute) {
			return Eligibility{Eligible: true}
		}
	}

	if len(offer.Windows) == 0 {
		return Eligibility{Reason: "offer has no time windows"}
	}
	first := offer.Windows[0]
	return Eligibility{
		Reason: fmt.Sprintf("available %s - %s on %s",
			FormatClock(first.StartMinute), FormatClock(first.EndMinute), describeDays(first.Days)),
	}
}

func describeDays(days []int) string {
	if len(days) == 7 {
		return "every day"
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 1 && d <= 7 {
			names = append(names, weekdayNames[d])
		}
	}
	return strings.Join(names, ", ")
}
