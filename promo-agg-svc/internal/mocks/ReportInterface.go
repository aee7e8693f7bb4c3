package mocks

import (
	"context"

	"overcooked-ordering/promo-agg-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ReportInterface struct {
	mock.Mock
}

func (_m *ReportInterface) Daily(ctx context.Context, day string, limit int) (*domain.DailyReport, error) {
	ret := _m.Called(ctx, day, limit)

	var r0 *domain.DailyReport
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.DailyReport)
	}
	return r0, ret.Error(1)
}

func (_m *ReportInterface) AllTime(ctx context.Context, limit int) ([]domain.OfferStats, error) {
	ret := _m.Called(ctx, limit)

	var r0 []domain.OfferStats
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.OfferStats)
	}
	return r0, ret.Error(1)
}

func NewReportInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReportInterface {
	m := &ReportInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
