package blocks

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/events"
	blockRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/block"
	hotelRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/hotel"
	"github.com/m04kA/SMC-ParkingService/internal/service/blocks/models"
	"github.com/m04kA/SMC-ParkingService/internal/service/ledger"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// memBlockRepo хранилище блокировок в памяти
type memBlockRepo struct {
	nextID int64
	blocks map[int64]*domain.ParkingBlock
}

func newMemBlockRepo() *memBlockRepo {
	return &memBlockRepo{blocks: make(map[int64]*domain.ParkingBlock)}
}

func (r *memBlockRepo) Create(_ context.Context, block *domain.ParkingBlock) (*domain.ParkingBlock, error) {
	r.nextID++
	created := *block
	created.ID = r.nextID
	r.blocks[created.ID] = &created
	return &created, nil
}

func (r *memBlockRepo) GetByID(_ context.Context, id int64) (*domain.ParkingBlock, error) {
	b, ok := r.blocks[id]
	if !ok {
		return nil, blockRepo.ErrBlockNotFound
	}
	return b, nil
}

func (r *memBlockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.blocks[id]; !ok {
		return blockRepo.ErrBlockNotFound
	}
	delete(r.blocks, id)
	return nil
}

func (r *memBlockRepo) ListOverlapping(_ context.Context, hotelID int64, start, end time.Time) ([]*domain.ParkingBlock, error) {
	result := make([]*domain.ParkingBlock, 0)
	for _, b := range r.blocks {
		if b.HotelID == hotelID && b.Overlaps(start, end) {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type stubHotels struct{}

func (stubHotels) GetByID(_ context.Context, id int64) (*domain.Hotel, error) {
	if id != 1 {
		return nil, hotelRepo.ErrHotelNotFound
	}
	return &domain.Hotel{ID: 1}, nil
}

func (stubHotels) GetLot(_ context.Context, lotID int64) (*domain.ParkingLot, error) {
	switch lotID {
	case 10:
		return &domain.ParkingLot{ID: 10, HotelID: 1}, nil
	case 20:
		return &domain.ParkingLot{ID: 20, HotelID: 2}, nil
	}
	return nil, hotelRepo.ErrLotNotFound
}

// stubSpots три места размера 1 на парковке 10
type stubSpots struct{}

func (stubSpots) CountMatching(_ context.Context, filter domain.SpotFilter) (int, error) {
	if filter.SpotSize != nil && *filter.SpotSize != 1 {
		return 0, nil
	}
	return 3, nil
}

func (stubSpots) CountCompatible(_ context.Context, _ int64, minUnits int) (int, error) {
	if minUnits > 1 {
		return 0, nil
	}
	return 3, nil
}

type noReservations struct{}

func (noReservations) CountPoolReserved(context.Context, int64, int64, domain.DateRange) (map[string]int, error) {
	return map[string]int{}, nil
}

type stubCategories struct{}

func (stubCategories) GetByID(_ context.Context, id int64) (*domain.VehicleCategory, error) {
	return &domain.VehicleCategory{ID: id, CapacityUnitsRequired: 1}, nil
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Invalidate(ctx context.Context, hotelID int64) error {
	return m.Called(ctx, hotelID).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	return m.Called(ctx, routingKey, event).Error(0)
}

type countingMetrics map[string]int

func (m countingMetrics) RecordBlockChange(action string) { m[action]++ }

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	repo      *memBlockRepo
	cache     *mockCache
	publisher *mockPublisher
	metrics   countingMetrics
	svc       *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:      newMemBlockRepo(),
		cache:     &mockCache{},
		publisher: &mockPublisher{},
		metrics:   countingMetrics{},
	}
	f.cache.On("Invalidate", mock.Anything, int64(1)).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.svc = NewService(f.repo, stubHotels{}, stubSpots{}, f.cache, f.publisher, f.metrics, logger.Nop())
	return f
}

func TestBlockCapacity_Created(t *testing.T) {
	f := newFixture()

	result, err := f.svc.BlockCapacity(context.Background(), &models.BlockCapacityRequest{
		HotelID:       1,
		Dates:         domain.NewDateRange(day(1), day(2)),
		NumberOfSpots: 2,
		Comment:       "resurfacing",
	})
	require.NoError(t, err)

	assert.NotZero(t, result.Block.ID)
	assert.Equal(t, 3, result.MatchingSpots)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 1, f.metrics[actionCreated])
	f.cache.AssertCalled(t, "Invalidate", mock.Anything, int64(1))
	f.publisher.AssertCalled(t, "Publish", mock.Anything, events.RoutingBlockCreated, mock.Anything)
}

func TestBlockCapacity_OverBlockingIsWarning(t *testing.T) {
	f := newFixture()

	result, err := f.svc.BlockCapacity(context.Background(), &models.BlockCapacityRequest{
		HotelID:       1,
		ParkingLotID:  ptr.Ptr(int64(10)),
		SpotSize:      ptr.Ptr(1),
		Dates:         domain.NewDateRange(day(1), day(1)),
		NumberOfSpots: 5,
	})
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "exceeds 3 matching physical spots")
	assert.Len(t, f.repo.blocks, 1)
}

func TestBlockCapacity_Validation(t *testing.T) {
	cases := map[string]*models.BlockCapacityRequest{
		"zero spots":     {HotelID: 1, Dates: domain.NewDateRange(day(1), day(2)), NumberOfSpots: 0},
		"inverted range": {HotelID: 1, Dates: domain.NewDateRange(day(3), day(2)), NumberOfSpots: 1},
		"bad spot size":  {HotelID: 1, SpotSize: ptr.Ptr(0), Dates: domain.NewDateRange(day(1), day(2)), NumberOfSpots: 1},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.BlockCapacity(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, f.repo.blocks)
		})
	}
}

func TestBlockCapacity_SingleDayRangeAllowed(t *testing.T) {
	f := newFixture()

	_, err := f.svc.BlockCapacity(context.Background(), &models.BlockCapacityRequest{
		HotelID:       1,
		Dates:         domain.NewDateRange(day(5), day(5)),
		NumberOfSpots: 1,
	})
	assert.NoError(t, err)
}

func TestBlockCapacity_LotOfAnotherHotel(t *testing.T) {
	f := newFixture()

	_, err := f.svc.BlockCapacity(context.Background(), &models.BlockCapacityRequest{
		HotelID:       1,
		ParkingLotID:  ptr.Ptr(int64(20)),
		Dates:         domain.NewDateRange(day(1), day(2)),
		NumberOfSpots: 1,
	})
	assert.ErrorIs(t, err, ErrLotNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReleaseCapacityBlock_NotFound(t *testing.T) {
	f := newFixture()

	err := f.svc.ReleaseCapacityBlock(context.Background(), 42)

	assert.ErrorIs(t, err, ErrBlockNotFound)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestBlock_RoundTripRestoresAvailability(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	capacity := ledger.NewService(stubHotels{}, stubCategories{}, stubSpots{}, noReservations{}, f.svc, logger.Nop())
	stay := domain.NewDateRange(day(1), day(3))

	before, err := capacity.GetAvailableCapacity(ctx, 1, 7, stay)
	require.NoError(t, err)

	result, err := f.svc.BlockCapacity(ctx, &models.BlockCapacityRequest{
		HotelID:       1,
		Dates:         domain.NewDateRange(day(1), day(2)),
		NumberOfSpots: 2,
	})
	require.NoError(t, err)

	listed, err := f.svc.ListBlocks(ctx, 1, domain.NewDateRange(day(2), day(4)))
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, result.Block.ID, listed[0].ID)

	blocked, err := capacity.GetAvailableCapacity(ctx, 1, 7, stay)
	require.NoError(t, err)
	assert.Equal(t, 1, blocked.Days[0].Available)

	require.NoError(t, f.svc.ReleaseCapacityBlock(ctx, result.Block.ID))

	listed, err = f.svc.ListBlocks(ctx, 1, domain.NewDateRange(day(2), day(4)))
	require.NoError(t, err)
	assert.Empty(t, listed)

	after, err := capacity.GetAvailableCapacity(ctx, 1, 7, stay)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, f.metrics[actionReleased])
}

func TestListBlocks_InclusiveOverlap(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.BlockCapacity(ctx, &models.BlockCapacityRequest{
		HotelID: 1, Dates: domain.NewDateRange(day(1), day(2)), NumberOfSpots: 1,
	})
	require.NoError(t, err)

	touching, err := f.svc.ListBlocks(ctx, 1, domain.NewDateRange(day(2), day(2)))
	require.NoError(t, err)
	assert.Len(t, touching, 1)

	after, err := f.svc.ListBlocks(ctx, 1, domain.NewDateRange(day(3), day(9)))
	require.NoError(t, err)
	assert.Empty(t, after)
}
