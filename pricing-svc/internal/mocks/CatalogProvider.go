package mocks

import (
	"context"

	"overcooked-ordering/pricing-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CatalogProvider struct {
	mock.Mock
}

func (_m *CatalogProvider) Snapshot(ctx context.Context) (*domain.Catalog, error) {
	ret := _m.Called(ctx)

	var r0 *domain.Catalog
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Catalog)
	}

	return r0, ret.Error(1)
}

func (_m *CatalogProvider) Reload(ctx context.Context) (*domain.Catalog, error) {
	ret := _m.Called(ctx)

	var r0 *domain.Catalog
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Catalog)
	}

	return r0, ret.Error(1)
}

func NewCatalogProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogProvider {
	m := &CatalogProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
