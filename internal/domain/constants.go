package domain

// Date format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	DefaultMaxNights = 60
	DefaultMaxSpots  = 50
	MaxCommentLength = 500
	PoolSpotPrefix   = "POOL-"
)

// OccupyingStatuses статусы, которые занимают место физически (любая не отменённая запись)
var OccupyingStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusReserved,
	StatusBlocked,
}

// CountedStatuses статусы, которые учитываются в reserved при подсчёте ёмкости пула
var CountedStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusReserved,
}

// BookingLimits ограничения размера одной брони
type BookingLimits struct {
	MaxNights int
	MaxSpots  int
}

// DefaultBookingLimits ограничения по умолчанию
func DefaultBookingLimits() BookingLimits {
	return BookingLimits{MaxNights: DefaultMaxNights, MaxSpots: DefaultMaxSpots}
}
