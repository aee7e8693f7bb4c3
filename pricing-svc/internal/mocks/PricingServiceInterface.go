package mocks

import (
	"context"
	"time"

	"overcooked-ordering/pricing-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type PricingServiceInterface struct {
	mock.Mock
}

func (_m *PricingServiceInterface) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx)

	var r0 []domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.MenuItem)
	}

	return r0, ret.Error(1)
}

func (_m *PricingServiceInterface) Offers(ctx context.Context, at time.Time) ([]domain.OfferStatus, error) {
	ret := _m.Called(ctx, at)

	var r0 []domain.OfferStatus
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.OfferStatus)
	}

	return r0, ret.Error(1)
}

func (_m *PricingServiceInterface) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.Quote, error) {
	ret := _m.Called(ctx, req)

	var r0 *domain.Quote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Quote)
	}

	return r0, ret.Error(1)
}

func (_m *PricingServiceInterface) SplitEqual(req domain.EqualSplitRequest) (*domain.BillSplit, error) {
	ret := _m.Called(req)

	var r0 *domain.BillSplit
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.BillSplit)
	}

	return r0, ret.Error(1)
}

func (_m *PricingServiceInterface) SplitItems(ctx context.Context, req domain.ItemSplitRequest) (*domain.BillSplit, error) {
	ret := _m.Called(ctx, req)

	var r0 *domain.BillSplit
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.BillSplit)
	}

	return r0, ret.Error(1)
}

func (_m *PricingServiceInterface) Checkout(ctx context.Context, req domain.OrderRequest) (*domain.Quote, *domain.BillSplit, error) {
	ret := _m.Called(ctx, req)

	var r0 *domain.Quote
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Quote)
	}

	var r1 *domain.BillSplit
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*domain.BillSplit)
	}

	return r0, r1, ret.Error(2)
}

func (_m *PricingServiceInterface) ReloadCatalog(ctx context.Context) (*domain.Catalog, error) {
	ret := _m.Called(ctx)

	var r0 *domain.Catalog
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Catalog)
	}

	return r0, ret.Error(1)
}

func NewPricingServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *PricingServiceInterface {
	m := &PricingServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
