package assign_spots

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, limits domain.BookingLimits) error {
	if req.HotelID <= 0 || req.ReservationDetailsID <= 0 || req.VehicleCategoryID <= 0 {
		return fmt.Errorf("%w: hotelID, reservationDetailsID and vehicleCategoryID must be positive", ErrInvalidInput)
	}

	if req.Spots <= 0 || req.Spots > limits.MaxSpots {
		return fmt.Errorf("%w: spots must be in 1..%d, got %d", ErrInvalidInput, limits.MaxSpots, req.Spots)
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
