package get_availability

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// Request модель запроса доступности
type Request struct {
	HotelID           int64
	VehicleCategoryID int64
	Dates             domain.DateRange // ночи [Start, End)
}

// Response модель ответа со сводкой доступности
type Response struct {
	Summary   *domain.AvailabilitySummary
	FromCache bool
}
