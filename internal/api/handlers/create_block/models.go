package create_block

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/blocks/models"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	ParkingLotID  *int64 `json:"parkingLotId,omitempty"`
	SpotSize      *int   `json:"spotSize,omitempty"`
	StartDate     string `json:"startDate"` // "2024-01-01", включительно
	EndDate       string `json:"endDate"`   // включительно
	NumberOfSpots int    `json:"numberOfSpots"`
	Comment       string `json:"comment"`
}

// CreateBlockResponse HTTP response model
type CreateBlockResponse struct {
	Block         *models.BlockResponse `json:"block"`
	MatchingSpots int                   `json:"matchingSpots"`
	Warnings      []string              `json:"warnings"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest(hotelID int64) (*models.BlockCapacityRequest, error) {
	dates, err := domain.ParseDateRange(r.StartDate, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &models.BlockCapacityRequest{
		HotelID:       hotelID,
		ParkingLotID:  r.ParkingLotID,
		SpotSize:      r.SpotSize,
		Dates:         dates,
		NumberOfSpots: r.NumberOfSpots,
		Comment:       r.Comment,
	}, nil
}

// FromServiceResult конвертирует результат сервиса в HTTP response
func FromServiceResult(result *models.BlockResult) *CreateBlockResponse {
	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return &CreateBlockResponse{
		Block:         models.FromDomainBlock(result.Block),
		MatchingSpots: result.MatchingSpots,
		Warnings:      warnings,
	}
}
