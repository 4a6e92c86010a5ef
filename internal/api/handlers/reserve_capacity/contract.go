package reserve_capacity

import (
	"context"

	reserveCapacity "github.com/m04kA/SMC-ParkingService/internal/usecase/reserve_capacity"
)

type ReserveCapacityUseCase interface {
	Execute(ctx context.Context, req *reserveCapacity.Request) (*reserveCapacity.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
