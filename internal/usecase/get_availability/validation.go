package get_availability

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, limits domain.BookingLimits) error {
	if req.HotelID <= 0 {
		return fmt.Errorf("%w: hotelID must be positive", ErrInvalidInput)
	}

	if req.VehicleCategoryID <= 0 {
		return fmt.Errorf("%w: vehicleCategoryID must be positive", ErrInvalidInput)
	}

	if err := req.Dates.ValidateNights(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if n := len(req.Dates.Nights()); n > limits.MaxNights {
		return fmt.Errorf("%w: range of %d nights exceeds limit of %d", ErrInvalidInput, n, limits.MaxNights)
	}

	return nil
}
