package blocks

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/blocks/models"
)

func validateBlockRequest(req *models.BlockCapacityRequest) error {
	if req.HotelID <= 0 {
		return fmt.Errorf("%w: hotel id must be positive", ErrInvalidInput)
	}
	if req.NumberOfSpots <= 0 {
		return fmt.Errorf("%w: number of spots must be positive, got %d", ErrInvalidInput, req.NumberOfSpots)
	}
	if err := req.Dates.ValidateInclusive(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.ParkingLotID != nil && *req.ParkingLotID <= 0 {
		return fmt.Errorf("%w: parking lot id must be positive", ErrInvalidInput)
	}
	if req.SpotSize != nil && *req.SpotSize <= 0 {
		return fmt.Errorf("%w: spot size must be positive, got %d", ErrInvalidInput, *req.SpotSize)
	}
	if utf8.RuneCountInString(req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment is longer than %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}
	return nil
}
