package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/ledger"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type mockLedger struct{ mock.Mock }

func (m *mockLedger) GetAvailableCapacity(ctx context.Context, hotelID, categoryID int64, dates domain.DateRange) (*domain.AvailabilitySummary, error) {
	args := m.Called(ctx, hotelID, categoryID, dates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilitySummary), args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, hotelID, categoryID int64, dates domain.DateRange) (*domain.AvailabilitySummary, int64, bool, error) {
	args := m.Called(ctx, hotelID, categoryID, dates)
	summary, _ := args.Get(0).(*domain.AvailabilitySummary)
	return summary, args.Get(1).(int64), args.Bool(2), args.Error(3)
}

func (m *mockCache) Set(ctx context.Context, version int64, dates domain.DateRange, summary *domain.AvailabilitySummary) error {
	return m.Called(ctx, version, dates, summary).Error(0)
}

type passThroughTx struct{}

func (passThroughTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func summary() *domain.AvailabilitySummary {
	return domain.NewAvailabilitySummary(1, 2, []domain.DateAvailability{
		domain.NewDateAvailability(day(1), 3, 0, 2),
		domain.NewDateAvailability(day(2), 3, 0, 0),
	})
}

func TestExecute_CacheMissStoresUnderVersionReadBeforeCompute(t *testing.T) {
	dates := domain.NewDateRange(day(1), day(3))
	l := &mockLedger{}
	c := &mockCache{}
	c.On("Get", mock.Anything, int64(1), int64(2), dates).Return(nil, int64(4), false, nil)
	l.On("GetAvailableCapacity", mock.Anything, int64(1), int64(2), dates).Return(summary(), nil)
	c.On("Set", mock.Anything, int64(4), dates, mock.Anything).Return(nil)

	uc := NewUseCase(l, c, passThroughTx{}, domain.DefaultBookingLimits(), logger.Nop())
	resp, err := uc.Execute(context.Background(), &Request{HotelID: 1, VehicleCategoryID: 2, Dates: dates})

	require.NoError(t, err)
	assert.False(t, resp.FromCache)
	assert.Equal(t, 1, resp.Summary.MinAvailable)
	assert.Equal(t, 3, resp.Summary.MaxAvailable)
	c.AssertCalled(t, "Set", mock.Anything, int64(4), dates, mock.Anything)
}

func TestExecute_CacheReadErrorSkipsStore(t *testing.T) {
	dates := domain.NewDateRange(day(1), day(3))
	l := &mockLedger{}
	c := &mockCache{}
	c.On("Get", mock.Anything, int64(1), int64(2), dates).Return(nil, int64(0), false, errors.New("redis timeout"))
	l.On("GetAvailableCapacity", mock.Anything, int64(1), int64(2), dates).Return(summary(), nil)

	uc := NewUseCase(l, c, passThroughTx{}, domain.DefaultBookingLimits(), logger.Nop())
	resp, err := uc.Execute(context.Background(), &Request{HotelID: 1, VehicleCategoryID: 2, Dates: dates})

	require.NoError(t, err)
	assert.False(t, resp.FromCache)
	c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_CacheHit(t *testing.T) {
	dates := domain.NewDateRange(day(1), day(3))
	l := &mockLedger{}
	c := &mockCache{}
	c.On("Get", mock.Anything, int64(1), int64(2), dates).Return(summary(), int64(0), true, nil)

	uc := NewUseCase(l, c, passThroughTx{}, domain.DefaultBookingLimits(), logger.Nop())
	resp, err := uc.Execute(context.Background(), &Request{HotelID: 1, VehicleCategoryID: 2, Dates: dates})

	require.NoError(t, err)
	assert.True(t, resp.FromCache)
	l.AssertNotCalled(t, "GetAvailableCapacity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_CategoryNotFound(t *testing.T) {
	dates := domain.NewDateRange(day(1), day(3))
	l := &mockLedger{}
	c := &mockCache{}
	c.On("Get", mock.Anything, int64(1), int64(2), dates).Return(nil, int64(0), false, nil)
	l.On("GetAvailableCapacity", mock.Anything, int64(1), int64(2), dates).Return(nil, ledger.ErrCategoryNotFound)

	uc := NewUseCase(l, c, passThroughTx{}, domain.DefaultBookingLimits(), logger.Nop())
	_, err := uc.Execute(context.Background(), &Request{HotelID: 1, VehicleCategoryID: 2, Dates: dates})

	assert.ErrorIs(t, err, ErrCategoryNotFound)
	c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_Validation(t *testing.T) {
	limits := domain.BookingLimits{MaxNights: 3, MaxSpots: 1}
	cases := map[string]*Request{
		"no hotel":      {VehicleCategoryID: 2, Dates: domain.NewDateRange(day(1), day(2))},
		"empty range":   {HotelID: 1, VehicleCategoryID: 2, Dates: domain.NewDateRange(day(2), day(2))},
		"too many days": {HotelID: 1, VehicleCategoryID: 2, Dates: domain.NewDateRange(day(1), day(9))},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			uc := NewUseCase(&mockLedger{}, &mockCache{}, passThroughTx{}, limits, logger.Nop())
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
