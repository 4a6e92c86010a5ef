package list_blocks

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type BlockService interface {
	ListBlocks(ctx context.Context, hotelID int64, dates domain.DateRange) ([]*domain.ParkingBlock, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
