package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"overcooked-ordering/promo-agg-svc/internal/domain"
)

const (
	defaultReportLimit = 10
	maxReportLimit     = 100
)

var ErrInvalidDay = errors.New("day must be formatted as YYYY-MM-DD")

type ReportService struct {
	Store    ReportStore
	Location *time.Location
	Now      func() time.Time
}

func NewReportService(store ReportStore, loc *time.Location) *ReportService {
	return &ReportService{
		Store:    store,
		Location: loc,
		Now:      time.Now,
	}
}

// Daily reports the offer ranking and total savings for day. An empty day
// means today in the restaurant's zone.
func (s *ReportService) Daily(ctx context.Context, day string, limit int) (*domain.DailyReport, error) {
	if day == "" {
		day = s.Now().In(s.Location).Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}

	offers, err := s.Store.TopOffersForDay(ctx, day, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	savings, err := s.Store.SavingsForDay(ctx, day)
	if err != nil {
		return nil, err
	}

	return &domain.DailyReport{
		Day:     day,
		Savings: savings,
		Offers:  offers,
	}, nil
}

func (s *ReportService) AllTime(ctx context.Context, limit int) ([]domain.OfferStats, error) {
	return s.Store.TopOffersAllTime(ctx, clampLimit(limit))
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultReportLimit
	case limit > maxReportLimit:
		return maxReportLimit
	}
	return limit
}
