package create_block

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/blocks/models"
)

type BlockService interface {
	BlockCapacity(ctx context.Context, req *models.BlockCapacityRequest) (*models.BlockResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
