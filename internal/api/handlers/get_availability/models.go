package get_availability

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ParkingService/internal/usecase/get_availability"
)

// DayResponse доступность на одну дату
type DayResponse struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Reserved  int    `json:"reserved"`
	Blocked   int    `json:"blocked"`
	Available int    `json:"available"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	HotelID           int64          `json:"hotelId"`
	VehicleCategoryID int64          `json:"vehicleCategoryId"`
	Days              []*DayResponse `json:"days"`
	MinAvailable      int            `json:"minAvailable"`
	MaxAvailable      int            `json:"maxAvailable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	s := resp.Summary
	result := &AvailabilityResponse{
		HotelID:           s.HotelID,
		VehicleCategoryID: s.VehicleCategoryID,
		Days:              make([]*DayResponse, 0, len(s.Days)),
		MinAvailable:      s.MinAvailable,
		MaxAvailable:      s.MaxAvailable,
	}
	for _, d := range s.Days {
		result.Days = append(result.Days, &DayResponse{
			Date:      domain.DateKey(d.Date),
			Total:     d.Total,
			Reserved:  d.Reserved,
			Blocked:   d.Blocked,
			Available: d.Available,
		})
	}
	return result
}
