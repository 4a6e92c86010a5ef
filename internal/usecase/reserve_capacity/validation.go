package reserve_capacity

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, limits domain.BookingLimits) error {
	if req.HotelID <= 0 {
		return fmt.Errorf("%w: hotelID must be positive", ErrInvalidInput)
	}

	if req.ReservationDetailsID <= 0 {
		return fmt.Errorf("%w: reservationDetailsID must be positive", ErrInvalidInput)
	}

	if req.VehicleCategoryID <= 0 {
		return fmt.Errorf("%w: vehicleCategoryID must be positive", ErrInvalidInput)
	}

	if req.Spots <= 0 {
		return fmt.Errorf("%w: spots must be positive, got %d", ErrInvalidInput, req.Spots)
	}

	if req.Spots > limits.MaxSpots {
		return fmt.Errorf("%w: %d spots exceeds limit of %d", ErrInvalidInput, req.Spots, limits.MaxSpots)
	}

	if err := req.Dates.ValidateNights(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if n := len(req.Dates.Nights()); n > limits.MaxNights {
		return fmt.Errorf("%w: stay of %d nights exceeds limit of %d", ErrInvalidInput, n, limits.MaxNights)
	}

	if !req.Billing.IsValid() {
		return fmt.Errorf("%w: billing needs exactly one of addonId/hotelAddonId and a non-negative unit price", ErrInvalidInput)
	}

	return nil
}
