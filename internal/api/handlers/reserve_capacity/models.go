package reserve_capacity

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reserveCapacity "github.com/m04kA/SMC-ParkingService/internal/usecase/reserve_capacity"
)

// BillingRequest описание начисления: ровно одно из addonId/hotelAddonId
type BillingRequest struct {
	AddonID      *int64  `json:"addonId,omitempty"`
	HotelAddonID *int64  `json:"hotelAddonId,omitempty"`
	UnitPrice    float64 `json:"unitPrice"`
}

// ReserveCapacityRequest HTTP request model
type ReserveCapacityRequest struct {
	ReservationDetailsID int64          `json:"reservationDetailsId"`
	VehicleCategoryID    int64          `json:"vehicleCategoryId"`
	StartDate            string         `json:"startDate"` // первая ночь
	EndDate              string         `json:"endDate"`   // дата выезда, не включается
	Spots                int            `json:"spots"`
	Billing              BillingRequest `json:"billing"`
}

// ReserveCapacityResponse HTTP response model
type ReserveCapacityResponse struct {
	ReservationDetailsID int64              `json:"reservationDetailsId"`
	Mode                 string             `json:"mode"`
	PoolSpotID           int64              `json:"poolSpotId"`
	SpotsByDate          map[string][]int64 `json:"spotsByDate"`
	ReservationNightIDs  []int64            `json:"reservationNightIds"`
	ReservationAddonIDs  []int64            `json:"reservationAddonIds"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveCapacityRequest) ToUseCaseRequest(hotelID int64) (*reserveCapacity.Request, error) {
	dates, err := domain.ParseDateRange(r.StartDate, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &reserveCapacity.Request{
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
func FromUseCaseResponse(resp *reserveCapacity.Response) *ReserveCapacityResponse {
	return &ReserveCapacityResponse{
		ReservationDetailsID: resp.ReservationDetailsID,
		Mode:                 string(resp.Mode),
		PoolSpotID:           resp.PoolSpotID,
		SpotsByDate:          resp.SpotsByDate,
		ReservationNightIDs:  resp.ReservationNightIDs,
		ReservationAddonIDs:  resp.ReservationAddonIDs,
	}
}
