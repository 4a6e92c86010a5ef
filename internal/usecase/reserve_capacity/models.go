package reserve_capacity

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// Request модель запроса на бронь емкости без привязки к месту
type Request struct {
	HotelID              int64
	ReservationDetailsID int64
	VehicleCategoryID    int64
	Dates                domain.DateRange // ночи [Start, End)
	Spots                int
	Billing              domain.Billing
}

// Response модель ответа с созданными записями
type Response struct {
	ReservationDetailsID int64
	Mode                 domain.AssignmentMode
	PoolSpotID           int64
	SpotsByDate          map[string][]int64
	ReservationNightIDs  []int64
	ReservationAddonIDs  []int64
}
