package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

func date(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDateRange_NightsAndDays(t *testing.T) {
	r, err := ParseDateRange("2024-01-01", "2024-01-03")
	require.NoError(t, err)

	assert.Equal(t, []time.Time{date("2024-01-01"), date("2024-01-02")}, r.Nights())
	assert.Equal(t, []time.Time{date("2024-01-01"), date("2024-01-02"), date("2024-01-03")}, r.Days())
	assert.Equal(t, date("2024-01-02"), r.LastNight())
}

func TestDateRange_Validation(t *testing.T) {
	same := DateRange{Start: date("2024-01-01"), End: date("2024-01-01")}
	assert.ErrorIs(t, same.ValidateNights(), ErrValidation)
	assert.NoError(t, same.ValidateInclusive())

	inverted := DateRange{Start: date("2024-01-03"), End: date("2024-01-01")}
	assert.ErrorIs(t, inverted.ValidateNights(), ErrValidation)
	assert.ErrorIs(t, inverted.ValidateInclusive(), ErrValidation)

	assert.ErrorIs(t, DateRange{}.ValidateNights(), ErrValidation)
}

func TestParseDate_Malformed(t *testing.T) {
	_, err := ParseDate("01/02/2024")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParkingSpot_IsCompatibleWith(t *testing.T) {
	category := &VehicleCategory{ID: 1, CapacityUnitsRequired: 2}

	tests := []struct {
		name string
		spot ParkingSpot
		want bool
	}{
		{"large enough", ParkingSpot{SpotType: SpotTypeNormal, CapacityUnits: 2, IsActive: true}, true},
		{"larger", ParkingSpot{SpotType: SpotTypeNormal, CapacityUnits: 3, IsActive: true}, true},
		{"too small", ParkingSpot{SpotType: SpotTypeNormal, CapacityUnits: 1, IsActive: true}, false},
		{"inactive", ParkingSpot{SpotType: SpotTypeNormal, CapacityUnits: 2, IsActive: false}, false},
		{"pool spot", ParkingSpot{SpotType: SpotTypeCapacityPool, CapacityUnits: 5, IsActive: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spot.IsCompatibleWith(category))
		})
	}
}

func TestParkingBlock_Overlaps(t *testing.T) {
	b := &ParkingBlock{StartDate: date("2024-01-05"), EndDate: date("2024-01-07")}

	assert.True(t, b.Overlaps(date("2024-01-01"), date("2024-01-05")))
	assert.True(t, b.Overlaps(date("2024-01-07"), date("2024-01-09")))
	assert.True(t, b.Overlaps(date("2024-01-06"), date("2024-01-06")))
	assert.False(t, b.Overlaps(date("2024-01-01"), date("2024-01-04")))
	assert.False(t, b.Overlaps(date("2024-01-08"), date("2024-01-10")))
}

func TestBuildBlockOverlay(t *testing.T) {
	lotA := int64(10)
	blocks := []*ParkingBlock{
		{ID: 1, StartDate: date("2024-01-01"), EndDate: date("2024-01-02"), NumberOfSpots: 2},
		{ID: 2, ParkingLotID: &lotA, StartDate: date("2024-01-02"), EndDate: date("2024-01-02"), NumberOfSpots: 1},
		{ID: 3, SpotSize: ptr.Ptr(1), StartDate: date("2024-01-01"), EndDate: date("2024-01-03"), NumberOfSpots: 5},
		{ID: 4, SpotSize: ptr.Ptr(3), StartDate: date("2024-01-01"), EndDate: date("2024-01-03"), NumberOfSpots: 4},
	}
	dates := []time.Time{date("2024-01-01"), date("2024-01-02"), date("2024-01-03")}

	o := BuildBlockOverlay(blocks, dates, 2)

	// block 3 targets spots of size 1 and does not apply to a category requiring 2
	assert.Equal(t, 6, o.TotalOn(date("2024-01-01")))
	assert.Equal(t, 7, o.TotalOn(date("2024-01-02")))
	assert.Equal(t, 4, o.TotalOn(date("2024-01-03")))
	assert.Equal(t, 6, o.HotelOn(date("2024-01-02")))
	assert.Equal(t, 1, o.LotOn(lotA, date("2024-01-02")))
	assert.Equal(t, 0, o.LotOn(lotA, date("2024-01-01")))

	var nilOverlay *BlockOverlay
	assert.Equal(t, 0, nilOverlay.TotalOn(date("2024-01-01")))
}

func TestNewDateAvailability_NeverNegative(t *testing.T) {
	tests := []struct {
		total, reserved, blocked, want int
	}{
		{3, 0, 0, 3},
		{3, 0, 2, 1},
		{3, 2, 2, 0},
		{0, 0, 5, 0},
	}
	for _, tt := range tests {
		got := NewDateAvailability(date("2024-01-01"), tt.total, tt.reserved, tt.blocked)
		assert.Equal(t, tt.want, got.Available)
		assert.GreaterOrEqual(t, got.Available, 0)
	}
}

func TestAvailabilitySummary(t *testing.T) {
	days := []DateAvailability{
		NewDateAvailability(date("2024-01-01"), 3, 0, 2),
		NewDateAvailability(date("2024-01-02"), 3, 0, 0),
	}
	s := NewAvailabilitySummary(1, 2, days)

	assert.Equal(t, 1, s.MinAvailable)
	assert.Equal(t, 3, s.MaxAvailable)

	short, ok := s.FirstShortage(2)
	require.True(t, ok)
	assert.Equal(t, date("2024-01-01"), short.Date)

	_, ok = s.FirstShortage(1)
	assert.False(t, ok)
}

func TestBilling_IsValid(t *testing.T) {
	assert.True(t, (&Billing{AddonID: ptr.Ptr(int64(1)), UnitPrice: 10}).IsValid())
	assert.True(t, (&Billing{HotelAddonID: ptr.Ptr(int64(1))}).IsValid())
	assert.False(t, (&Billing{UnitPrice: 10}).IsValid())
	assert.False(t, (&Billing{AddonID: ptr.Ptr(int64(1)), HotelAddonID: ptr.Ptr(int64(2))}).IsValid())
	assert.False(t, (&Billing{AddonID: ptr.Ptr(int64(1)), UnitPrice: -1}).IsValid())

	var nilBilling *Billing
	assert.False(t, nilBilling.IsValid())
}

func TestCapacityError(t *testing.T) {
	err := fmt.Errorf("reserve: %w", &CapacityError{
		Dates:     []time.Time{date("2024-01-01")},
		Available: 1,
		Requested: 2,
	})

	assert.True(t, errors.Is(err, ErrInsufficientCapacity))
	ce, ok := AsCapacityError(err)
	require.True(t, ok)
	assert.Equal(t, date("2024-01-01"), ce.Date())
	assert.Contains(t, err.Error(), "only 1 spots available on 2024-01-01")
}
