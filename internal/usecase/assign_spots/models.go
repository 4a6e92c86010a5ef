package assign_spots

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// Request модель запроса на назначение физических мест
type Request struct {
	HotelID              int64
	ReservationDetailsID int64
	VehicleCategoryID    int64
	Dates                domain.DateRange // ночи [Start, End)
	Spots                int
	Billing              domain.Billing
}

// Response модель ответа: места по датам и созданные записи
type Response struct {
	ReservationDetailsID int64
	Mode                 domain.AssignmentMode
	SpotsByDate          map[string][]int64
	UnitSpots            [][]int64 // различные места каждой единицы брони
	ReservationNightIDs  []int64
	ReservationAddonIDs  []int64
}
