package domain

import (
	"fmt"
	"time"
)

// SpotType kind of parking spot
type SpotType string

const (
	SpotTypeNormal       SpotType = "normal"
	SpotTypeCapacityPool SpotType = "capacity_pool"
)

// Hotel owns parking lots
type Hotel struct {
	ID   int64
	Name string
}

// ParkingLot belongs to one hotel and owns spots
type ParkingLot struct {
	ID          int64
	HotelID     int64
	Name        string
	Description *string
}

// ParkingSpot is a physical spot, or the synthetic capacity pool spot of a hotel/category
type ParkingSpot struct {
	ID            int64
	ParkingLotID  int64
	SpotNumber    string
	SpotType      SpotType
	CapacityUnits int
	IsActive      bool

	// VehicleCategoryID is set only on capacity pool spots
	VehicleCategoryID *int64

	CreatedAt time.Time
}

// IsPool returns true for the synthetic, non-physical spot
func (s *ParkingSpot) IsPool() bool {
	return s.SpotType == SpotTypeCapacityPool
}

// IsCompatibleWith reports whether a vehicle of the category may park on the spot.
// Pool spots are never compatible: they are not physical capacity.
func (s *ParkingSpot) IsCompatibleWith(category *VehicleCategory) bool {
	return s.IsActive && !s.IsPool() && s.CapacityUnits >= category.CapacityUnitsRequired
}

// VehicleCategory defines the minimum spot size a vehicle needs
type VehicleCategory struct {
	ID                    int64
	Name                  string
	CapacityUnitsRequired int
}

// PoolSpotNumber spot number of the hotel/category capacity pool spot
func PoolSpotNumber(categoryID int64) string {
	return fmt.Sprintf("%s%d", PoolSpotPrefix, categoryID)
}

// SpotFilter physical spot filter used for block sizing
type SpotFilter struct {
	HotelID      int64
	ParkingLotID *int64 // nil = all lots
	SpotSize     *int   // nil = all sizes, otherwise exact capacity_units
}
