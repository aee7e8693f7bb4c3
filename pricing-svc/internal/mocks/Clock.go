package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

type Clock struct {
	mock.Mock
}

func (_m *Clock) Now() time.Time {
	ret := _m.Called()
	return ret.Get(0).(time.Time)
}

func NewClock(t interface {
	mock.TestingT
	Cleanup(func())
}) *Clock {
	m := &Clock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
