package mocks

import (
	"context"

	"overcooked-ordering/promo-agg-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type StoreInterface struct {
	mock.Mock
}

func (_m *StoreInterface) MarkProcessed(ctx context.Context, orderID string) (bool, error) {
	ret := _m.Called(ctx, orderID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *StoreInterface) UnmarkProcessed(ctx context.Context, orderID string) error {
	ret := _m.Called(ctx, orderID)
	return ret.Error(0)
}

func (_m *StoreInterface) RecordRedemptions(ctx context.Context, event domain.OrderEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

func (_m *StoreInterface) UpdateLeaderboard(ctx context.Context, event domain.OrderEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

func NewStoreInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
