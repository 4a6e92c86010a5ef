package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BlockCapacityRequest запрос на блокировку емкости. Dates включительно: [Start, End].
type BlockCapacityRequest struct {
	HotelID       int64
	ParkingLotID  *int64 // nil - все парковки отеля
	SpotSize      *int   // nil - все размеры
	Dates         domain.DateRange
	NumberOfSpots int
	Comment       string
}

// BlockResult созданная блокировка и предупреждения
type BlockResult struct {
	Block         *domain.ParkingBlock
	MatchingSpots int
	Warnings      []string
}

// BlockResponse блокировка в ответе API
type BlockResponse struct {
	ID            int64     `json:"id"`
	HotelID       int64     `json:"hotelId"`
	ParkingLotID  *int64    `json:"parkingLotId,omitempty"`
	SpotSize      *int      `json:"spotSize,omitempty"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	NumberOfSpots int       `json:"numberOfSpots"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromDomainBlock конвертирует domain модель в response
func FromDomainBlock(b *domain.ParkingBlock) *BlockResponse {
	return &BlockResponse{
		ID:            b.ID,
		HotelID:       b.HotelID,
		ParkingLotID:  b.ParkingLotID,
		SpotSize:      b.SpotSize,
		StartDate:     domain.DateKey(b.StartDate),
		EndDate:       domain.DateKey(b.EndDate),
		NumberOfSpots: b.NumberOfSpots,
		Comment:       b.Comment,
		CreatedAt:     b.CreatedAt,
	}
}

// FromDomainBlocks конвертирует список блокировок
func FromDomainBlocks(blocks []*domain.ParkingBlock) []*BlockResponse {
	result := make([]*BlockResponse, 0, len(blocks))
	for _, b := range blocks {
		result = append(result, FromDomainBlock(b))
	}
	return result
}
