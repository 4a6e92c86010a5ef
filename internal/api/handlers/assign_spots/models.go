package assign_spots

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	assignSpots "github.com/m04kA/SMC-ParkingService/internal/usecase/assign_spots"
)

// Billing начисление за единицу и ночь
type Billing struct {
	AddonID      *int64  `json:"addonId,omitempty"`
	HotelAddonID *int64  `json:"hotelAddonId,omitempty"`
	UnitPrice    float64 `json:"unitPrice"`
}

// AssignSpotsRequest HTTP request model
type AssignSpotsRequest struct {
	ReservationDetailsID int64   `json:"reservationDetailsId"`
	VehicleCategoryID    int64   `json:"vehicleCategoryId"`
	StartDate            string  `json:"startDate"`
	EndDate              string  `json:"endDate"` // не включается
	Spots                int     `json:"spots"`
	Billing              Billing `json:"billing"`
}

// UnitResponse места одной единицы брони по датам
type UnitResponse struct {
	SpotIDs []int64 `json:"spotIds"`
}

// AssignSpotsResponse HTTP response model
type AssignSpotsResponse struct {
	ReservationDetailsID int64              `json:"reservationDetailsId"`
	Mode                 string             `json:"mode"`
	SpotsByDate          map[string][]int64 `json:"spotsByDate"`
	Units                []UnitResponse     `json:"units"`
	ReservationNightIDs  []int64            `json:"reservationNightIds"`
	ReservationAddonIDs  []int64            `json:"reservationAddonIds"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AssignSpotsRequest) ToUseCaseRequest(hotelID int64) (*assignSpots.Request, error) {
	dates, err := domain.ParseDateRange(r.StartDate, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &assignSpots.Request{
		HotelID:              hotelID,
		ReservationDetailsID: r.ReservationDetailsID,
		VehicleCategoryID:    r.VehicleCategoryID,
		Dates:                dates,
		Spots:                r.Spots,
		Billing: domain.Billing{
			AddonID:      r.Billing.AddonID,
			HotelAddonID: r.Billing.HotelAddonID,
			UnitPrice:    r.Billing.UnitPrice,
		},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *assignSpots.Response) *AssignSpotsResponse {
	units := make([]UnitResponse, 0, len(resp.UnitSpots))
	for _, spots := range resp.UnitSpots {
		units = append(units, UnitResponse{SpotIDs: spots})
	}
	return &AssignSpotsResponse{
		ReservationDetailsID: resp.ReservationDetailsID,
		Mode:                 string(resp.Mode),
		SpotsByDate:          resp.SpotsByDate,
		Units:                units,
		ReservationNightIDs:  resp.ReservationNightIDs,
		ReservationAddonIDs:  resp.ReservationAddonIDs,
	}
}
