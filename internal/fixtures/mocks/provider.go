package mocks

import (
	"context"

	"github.com/bianca-ap01/coin-swap/pkg/currency"
	"github.com/bianca-ap01/coin-swap/pkg/domain/events"
	"github.com/bianca-ap01/coin-swap/pkg/eventbus"
	"github.com/bianca-ap01/coin-swap/pkg/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// RateSource is a testify mock of provider.RateSource.
type RateSource struct {
	mock.Mock
}

// NewRateSource creates a RateSource whose expectations are asserted at cleanup.
func NewRateSource(t TestingT) *RateSource {
	m := &RateSource{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *RateSource) GetRate(ctx context.Context, from, to currency.Code) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	rate, _ := args.Get(0).(decimal.Decimal)
	return rate, args.Error(1)
}

func (m *RateSource) Name() string {
	return m.Called().String(0)
}

// Bus is a testify mock of eventbus.Bus.
type Bus struct {
	mock.Mock
}

// NewBus creates a Bus whose expectations are asserted at cleanup.
func NewBus(t TestingT) *Bus {
	m := &Bus{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Bus) Emit(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *Bus) Register(eventType events.Type, handler eventbus.HandlerFunc) {
	m.Called(eventType, handler)
}

var (
	_ provider.RateSource = (*RateSource)(nil)
	_ eventbus.Bus        = (*Bus)(nil)
)
