package domain

import "time"

// ReservationStatus status of a reservation-night row
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusReserved  ReservationStatus = "reserved"
	StatusBlocked   ReservationStatus = "blocked"
)

// IsValid reports whether the status is known
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusReserved, StatusBlocked:
		return true
	}
	return false
}

// ReservationNight one row per (reservation, date, spot)
type ReservationNight struct {
	ID                   int64
	HotelID              int64
	ReservationDetailsID int64
	ParkingSpotID        int64
	VehicleCategoryID    int64
	Date                 time.Time
	Status               ReservationStatus
	Cancelled            *time.Time
	ReservationAddonID   *int64
	CreatedAt            time.Time
}

// IsCancelled returns true if the night no longer consumes capacity
func (n *ReservationNight) IsCancelled() bool {
	return n.Cancelled != nil
}

// ReservationAddon billing addon record, one per booked unit and night
type ReservationAddon struct {
	ID                   int64
	HotelID              int64
	ReservationDetailsID int64
	AddonID              *int64 // global addon
	HotelAddonID         *int64 // hotel-specific addon
	Date                 time.Time
	Quantity             int
	UnitPrice            float64
	CreatedAt            time.Time
}

// Billing addon descriptor supplied by the caller. Exactly one of AddonID/HotelAddonID is set.
type Billing struct {
	AddonID      *int64
	HotelAddonID *int64
	UnitPrice    float64
}

// IsValid checks the descriptor shape
func (b *Billing) IsValid() bool {
	if b == nil || b.UnitPrice < 0 {
		return false
	}
	return (b.AddonID != nil) != (b.HotelAddonID != nil)
}

// AssignmentMode how a booking consumes capacity
type AssignmentMode string

const (
	ModePooled   AssignmentMode = "pooled"
	ModePhysical AssignmentMode = "physical"
)
