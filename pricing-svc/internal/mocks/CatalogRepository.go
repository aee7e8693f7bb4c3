package mocks

import (
	"context"

	"overcooked-ordering/pricing-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CatalogRepository struct {
	mock.Mock
}

func (_m *CatalogRepository) LoadMenu(ctx context.Context) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx)

	var r0 []domain.MenuItem
	if rf, ok := ret.Get(0).(func(context.Context) []domain.MenuItem); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.MenuItem)
	}

	return r0, ret.Error(1)
}

func (_m *CatalogRepository) LoadOffers(ctx context.Context) ([]domain.OfferSpec, error) {
	ret := _m.Called(ctx)

	var r0 []domain.OfferSpec
	if rf, ok := ret.Get(0).(func(context.Context) []domain.OfferSpec); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.OfferSpec)
	}

	return r0, ret.Error(1)
}

func NewCatalogRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogRepository {
	m := &CatalogRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
