package mocks

import (
	"context"

	"overcooked-ordering/pricing-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CatalogCache struct {
	mock.Mock
}

func (_m *CatalogCache) GetCatalog(ctx context.Context) (*domain.Catalog, error) {
	ret := _m.Called(ctx)

	var r0 *domain.Catalog
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Catalog)
	}

	return r0, ret.Error(1)
}

func (_m *CatalogCache) SetCatalog(ctx context.Context, catalog *domain.Catalog) error {
	ret := _m.Called(ctx, catalog)
	return ret.Error(0)
}

func (_m *CatalogCache) InvalidateCatalog(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

func NewCatalogCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogCache {
	m := &CatalogCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
