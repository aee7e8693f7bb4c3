package mocks

import (
	"context"

	"overcooked-ordering/promo-agg-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ReportStore struct {
	mock.Mock
}

func (_m *ReportStore) TopOffersForDay(ctx context.Context, day string, limit int) ([]domain.OfferStats, error) {
	ret := _m.Called(ctx, day, limit)

	var r0 []domain.OfferStats
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.OfferStats)
	}
	return r0, ret.Error(1)
}

func (_m *ReportStore) TopOffersAllTime(ctx context.Context, limit int) ([]domain.OfferStats, error) {
	ret := _m.Called(ctx, limit)

	var r0 []domain.OfferStats
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.OfferStats)
	}
	return r0, ret.Error(1)
}

func (_m *ReportStore) SavingsForDay(ctx context.Context, day string) (int64, error) {
	ret := _m.Called(ctx, day)
	return ret.Get(0).(int64), ret.Error(1)
}

func NewReportStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReportStore {
	m := &ReportStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
