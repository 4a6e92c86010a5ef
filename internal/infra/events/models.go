package events

// Routing keys событий парковки
const (
	RoutingReservationConfirmed = "parking.reservation.confirmed"
	RoutingReservationCancelled = "parking.reservation.cancelled"
	RoutingBlockCreated         = "parking.block.created"
	RoutingBlockReleased        = "parking.block.released"
)

// ReservationConfirmed бронь парковки зафиксирована
type ReservationConfirmed struct {
	HotelID              int64  `json:"hotel_id"`
	ReservationDetailsID int64  `json:"reservation_details_id"`
	VehicleCategoryID    int64  `json:"vehicle_category_id"`
	Mode                 string `json:"mode"`
	StartDate            string `json:"start_date"`
	EndDate              string `json:"end_date"`
	Spots                int    `json:"spots"`
	Nights               int    `json:"nights"`
}

// ReservationCancelled бронь парковки отменена
type ReservationCancelled struct {
	HotelID              int64 `json:"hotel_id"`
	ReservationDetailsID int64 `json:"reservation_details_id"`
	CancelledNights      int64 `json:"cancelled_nights"`
}

// BlockChanged блокировка создана или снята
type BlockChanged struct {
	BlockID       int64  `json:"block_id"`
	HotelID       int64  `json:"hotel_id"`
	ParkingLotID  *int64 `json:"parking_lot_id,omitempty"`
	SpotSize      *int   `json:"spot_size,omitempty"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	NumberOfSpots int    `json:"number_of_spots"`
}
