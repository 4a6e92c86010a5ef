package assign_spots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	hotelRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/hotel"
	"github.com/m04kA/SMC-ParkingService/internal/service/planner"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// parkingDB общее состояние парковки в памяти для всех фейковых репозиториев
type parkingDB struct {
	hotels     map[int64]*domain.Hotel
	categories map[int64]*domain.VehicleCategory
	spots      []*domain.ParkingSpot
	blocks     []*domain.ParkingBlock
	nights     []*domain.ReservationNight
	addons     []*domain.ReservationAddon
	nextID     int64
	failNights error
}

func newParkingDB(physicalSpots int) *parkingDB {
	db := &parkingDB{
		hotels:     map[int64]*domain.Hotel{1: {ID: 1, Name: "Seaside"}},
		categories: map[int64]*domain.VehicleCategory{2: {ID: 2, Name: "car", CapacityUnitsRequired: 1}},
		nextID:     1000,
	}
	for i := 1; i <= physicalSpots; i++ {
		db.spots = append(db.spots, &domain.ParkingSpot{
			ID:            int64(i),
			ParkingLotID:  10,
			SpotNumber:    string(rune('A' + i - 1)),
			SpotType:      domain.SpotTypeNormal,
			CapacityUnits: 1,
			IsActive:      true,
		})
	}
	return db
}

func (db *parkingDB) id() int64 {
	db.nextID++
	return db.nextID
}

type hotels struct{ db *parkingDB }

func (r hotels) GetByID(_ context.Context, id int64) (*domain.Hotel, error) {
	if h, ok := r.db.hotels[id]; ok {
		return h, nil
	}
	return nil, hotelRepo.ErrHotelNotFound
}

type categories struct{ db *parkingDB }

func (r categories) GetByID(_ context.Context, id int64) (*domain.VehicleCategory, error) {
	return r.db.categories[id], nil
}

type spots struct{ db *parkingDB }

func (r spots) ListCompatible(_ context.Context, _ int64, minUnits int) ([]*domain.ParkingSpot, error) {
	var result []*domain.ParkingSpot
	for _, s := range r.db.spots {
		if s.IsCompatibleWith(&domain.VehicleCategory{CapacityUnitsRequired: minUnits}) {
			result = append(result, s)
		}
	}
	return result, nil
}

type nights struct{ db *parkingDB }

func (r nights) ListOccupied(_ context.Context, spotIDs []int64, dates domain.DateRange) (map[string]map[int64]struct{}, error) {
	wanted := make(map[int64]struct{}, len(spotIDs))
	for _, id := range spotIDs {
		wanted[id] = struct{}{}
	}
	occupied := make(map[string]map[int64]struct{})
	for _, n := range r.db.nights {
		if _, ok := wanted[n.ParkingSpotID]; !ok || n.IsCancelled() {
			continue
		}
		if n.Date.Before(dates.Start) || !n.Date.Before(dates.End) {
			continue
		}
		key := domain.DateKey(n.Date)
		if occupied[key] == nil {
			occupied[key] = make(map[int64]struct{})
		}
		occupied[key][n.ParkingSpotID] = struct{}{}
	}
	return occupied, nil
}

func (r nights) CountPoolReserved(context.Context, int64, int64, domain.DateRange) (map[string]int, error) {
	return map[string]int{}, nil
}

func (r nights) CreateBatch(_ context.Context, batch []*domain.ReservationNight) ([]*domain.ReservationNight, error) {
	if r.db.failNights != nil {
		return nil, r.db.failNights
	}
	for _, n := range batch {
		n.ID = r.db.id()
		r.db.nights = append(r.db.nights, n)
	}
	return batch, nil
}

type addons struct{ db *parkingDB }

func (r addons) CreateBatch(_ context.Context, batch []*domain.ReservationAddon) ([]*domain.ReservationAddon, error) {
	for _, a := range batch {
		a.ID = r.db.id()
		r.db.addons = append(r.db.addons, a)
	}
	return batch, nil
}

type overlays struct{ db *parkingDB }

func (r overlays) Overlay(_ context.Context, _ int64, dates []time.Time, requiredUnits int) (*domain.BlockOverlay, error) {
	return domain.BuildBlockOverlay(r.db.blocks, dates, requiredUnits), nil
}

// txManager откатывает записи parkingDB при ошибке
type txManager struct{ db *parkingDB }

func (tx txManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	nightsLen, addonsLen := len(tx.db.nights), len(tx.db.addons)
	if err := fn(ctx); err != nil {
		tx.db.nights = tx.db.nights[:nightsLen]
		tx.db.addons = tx.db.addons[:addonsLen]
		return err
	}
	return nil
}

type noopCache struct{}

func (noopCache) Invalidate(context.Context, int64) error { return nil }

type recordingPublisher struct{ keys []string }

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, _ interface{}) error {
	p.keys = append(p.keys, routingKey)
	return nil
}

type recordingMetrics struct {
	nights       int
	rejections   int
	spotsPerUnit []int
}

func (m *recordingMetrics) RecordReservationNights(_ string, n int) { m.nights += n }
func (m *recordingMetrics) RecordCapacityRejection(string)          { m.rejections++ }
func (m *recordingMetrics) ObserveSpotsPerUnit(spots int) {
	m.spotsPerUnit = append(m.spotsPerUnit, spots)
}

type env struct {
	db        *parkingDB
	publisher *recordingPublisher
	metrics   *recordingMetrics
	uc        *UseCase
}

func newEnv(physicalSpots int) *env {
	db := newParkingDB(physicalSpots)
	e := &env{db: db, publisher: &recordingPublisher{}, metrics: &recordingMetrics{}}
	e.uc = NewUseCase(
		hotels{db}, categories{db}, spots{db}, nights{db}, addons{db}, overlays{db},
		planner.New(logger.Nop()), txManager{db}, noopCache{}, e.publisher, e.metrics,
		domain.DefaultBookingLimits(), logger.Nop(),
	)
	return e
}

func jan(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func assignRequest(reservationID int64, spotsCount int) *Request {
	return &Request{
		HotelID:              1,
		ReservationDetailsID: reservationID,
		VehicleCategoryID:    2,
		Dates:                domain.NewDateRange(jan(1), jan(3)),
		Spots:                spotsCount,
		Billing:              domain.Billing{HotelAddonID: ptr.Ptr(int64(4)), UnitPrice: 15},
	}
}

func TestExecute_TwoUnitsOverTwoNights(t *testing.T) {
	e := newEnv(3)

	resp, err := e.uc.Execute(context.Background(), assignRequest(500, 2))
	require.NoError(t, err)

	assert.Equal(t, domain.ModePhysical, resp.Mode)
	assert.Len(t, resp.ReservationNightIDs, 4)
	assert.Len(t, resp.ReservationAddonIDs, 4)
	assert.Equal(t, [][]int64{{1}, {2}}, resp.UnitSpots)
	assert.Equal(t, []int64{1, 2}, resp.SpotsByDate["2024-01-01"])
	assert.Equal(t, []int64{1, 2}, resp.SpotsByDate["2024-01-02"])

	require.Len(t, e.db.nights, 4)
	for i, n := range e.db.nights {
		assert.Equal(t, domain.StatusConfirmed, n.Status)
		assert.Equal(t, e.db.addons[i].ID, *n.ReservationAddonID)
		assert.Equal(t, n.Date, e.db.addons[i].Date)
	}
	assert.Equal(t, 4, e.metrics.nights)
	assert.Equal(t, []int{1, 1}, e.metrics.spotsPerUnit)
	assert.Len(t, e.publisher.keys, 1)
}

func TestExecute_HotelBlockLeavesOneSpot(t *testing.T) {
	e := newEnv(3)
	e.db.blocks = []*domain.ParkingBlock{{
		ID: 1, HotelID: 1, StartDate: jan(1), EndDate: jan(2), NumberOfSpots: 2,
	}}

	_, err := e.uc.Execute(context.Background(), assignRequest(500, 2))

	require.ErrorIs(t, err, domain.ErrInsufficientCapacity)
	capErr, ok := domain.AsCapacityError(err)
	require.True(t, ok)
	assert.Equal(t, 1, capErr.Available)
	assert.Equal(t, 2, capErr.Requested)
	assert.Empty(t, e.db.nights)
	assert.Empty(t, e.db.addons)
	assert.Equal(t, 1, e.metrics.rejections)
	assert.Empty(t, e.publisher.keys)

	resp, err := e.uc.Execute(context.Background(), assignRequest(501, 1))
	require.NoError(t, err)
	assert.Len(t, resp.ReservationNightIDs, 2)
}

func TestExecute_SeesEarlierAssignments(t *testing.T) {
	e := newEnv(3)

	_, err := e.uc.Execute(context.Background(), assignRequest(500, 2))
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), assignRequest(501, 2))
	require.ErrorIs(t, err, domain.ErrInsufficientCapacity)

	resp, err := e.uc.Execute(context.Background(), assignRequest(502, 1))
	require.NoError(t, err)
	assert.Equal(t, [][]int64{{3}}, resp.UnitSpots)
	assert.Len(t, e.db.nights, 6)
}

func TestExecute_PartialOccupancySplitsUnit(t *testing.T) {
	e := newEnv(2)
	// место 1 занято в первую ночь, место 2 во вторую
	e.db.nights = []*domain.ReservationNight{
		{ID: 1, HotelID: 1, ParkingSpotID: 1, Date: jan(1), Status: domain.StatusConfirmed},
		{ID: 2, HotelID: 1, ParkingSpotID: 2, Date: jan(2), Status: domain.StatusBlocked},
	}

	resp, err := e.uc.Execute(context.Background(), assignRequest(500, 1))
	require.NoError(t, err)

	assert.Equal(t, [][]int64{{2, 1}}, resp.UnitSpots)
	assert.Equal(t, []int64{2}, resp.SpotsByDate["2024-01-01"])
	assert.Equal(t, []int64{1}, resp.SpotsByDate["2024-01-02"])
	assert.Equal(t, []int{2}, e.metrics.spotsPerUnit)
}

func TestExecute_WriteFailureRollsBack(t *testing.T) {
	e := newEnv(3)
	e.db.failNights = errors.New("connection reset")

	_, err := e.uc.Execute(context.Background(), assignRequest(500, 1))

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Empty(t, e.db.addons)
	assert.Empty(t, e.publisher.keys)
}

func TestExecute_HotelNotFound(t *testing.T) {
	e := newEnv(3)
	req := assignRequest(500, 1)
	req.HotelID = 99

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrHotelNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_NoPhysicalSpots(t *testing.T) {
	e := newEnv(0)

	_, err := e.uc.Execute(context.Background(), assignRequest(500, 1))

	assert.ErrorIs(t, err, domain.ErrInsufficientCapacity)
}

func TestValidateRequest(t *testing.T) {
	limits := domain.BookingLimits{MaxNights: 2, MaxSpots: 3}

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *Request) {}},
		{name: "missing reservation", mutate: func(r *Request) { r.ReservationDetailsID = 0 }, wantErr: true},
		{name: "spots over limit", mutate: func(r *Request) { r.Spots = 4 }, wantErr: true},
		{name: "empty stay", mutate: func(r *Request) { r.Dates = domain.NewDateRange(jan(1), jan(1)) }, wantErr: true},
		{name: "stay over limit", mutate: func(r *Request) { r.Dates = domain.NewDateRange(jan(1), jan(4)) }, wantErr: true},
		{name: "no billing", mutate: func(r *Request) { r.Billing = domain.Billing{} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := assignRequest(500, 1)
			tt.mutate(req)

			err := validateRequest(req, limits)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}
