package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/events"
	reservationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) GetByReservation(ctx context.Context, hotelID, reservationDetailsID int64) ([]*domain.ReservationNight, error) {
	args := m.Called(ctx, hotelID, reservationDetailsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ReservationNight), args.Error(1)
}

func (m *mockReservationRepo) CancelByReservation(ctx context.Context, hotelID, reservationDetailsID int64) (int64, error) {
	args := m.Called(ctx, hotelID, reservationDetailsID)
	return args.Get(0).(int64), args.Error(1)
}

type passThroughTx struct{}

func (passThroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Invalidate(ctx context.Context, hotelID int64) error {
	return m.Called(ctx, hotelID).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	return m.Called(ctx, routingKey, event).Error(0)
}

func TestCancel_Success(t *testing.T) {
	repo := &mockReservationRepo{}
	cache := &mockCache{}
	publisher := &mockPublisher{}
	repo.On("CancelByReservation", mock.Anything, int64(1), int64(500)).Return(int64(4), nil)
	cache.On("Invalidate", mock.Anything, int64(1)).Return(errors.New("redis down"))
	publisher.On("Publish", mock.Anything, events.RoutingReservationCancelled, events.ReservationCancelled{
		HotelID: 1, ReservationDetailsID: 500, CancelledNights: 4,
	}).Return(nil)

	svc := NewService(repo, passThroughTx{}, cache, publisher, logger.Nop())
	resp, err := svc.Cancel(context.Background(), 1, 500)

	require.NoError(t, err, "cache failures do not fail the cancellation")
	assert.Equal(t, int64(4), resp.CancelledNights)
	publisher.AssertExpectations(t)
}

func TestCancel_NothingToCancel(t *testing.T) {
	repo := &mockReservationRepo{}
	repo.On("CancelByReservation", mock.Anything, int64(1), int64(500)).
		Return(int64(0), reservationRepo.ErrReservationNotFound)
	publisher := &mockPublisher{}

	svc := NewService(repo, passThroughTx{}, &mockCache{}, publisher, logger.Nop())
	_, err := svc.Cancel(context.Background(), 1, 500)

	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetByReservation_CountsActiveNights(t *testing.T) {
	cancelledAt := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	repo := &mockReservationRepo{}
	repo.On("GetByReservation", mock.Anything, int64(1), int64(500)).Return([]*domain.ReservationNight{
		{ID: 1, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ParkingSpotID: 3, Status: domain.StatusConfirmed},
		{ID: 2, Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ParkingSpotID: 3, Status: domain.StatusConfirmed, Cancelled: &cancelledAt},
	}, nil)

	svc := NewService(repo, passThroughTx{}, &mockCache{}, &mockPublisher{}, logger.Nop())
	resp, err := svc.GetByReservation(context.Background(), 1, 500)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.ActiveNights)
	require.Len(t, resp.Nights, 2)
	assert.Equal(t, "2024-01-02", resp.Nights[1].Date)
}

func TestGetByReservation_InvalidInput(t *testing.T) {
	svc := NewService(&mockReservationRepo{}, passThroughTx{}, &mockCache{}, &mockPublisher{}, logger.Nop())

	_, err := svc.GetByReservation(context.Background(), 0, 500)

	assert.ErrorIs(t, err, domain.ErrValidation)
}
