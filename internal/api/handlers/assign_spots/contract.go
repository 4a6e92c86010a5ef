package assign_spots

import (
	"context"

	assignSpots "github.com/m04kA/SMC-ParkingService/internal/usecase/assign_spots"
)

type AssignSpotsUseCase interface {
	Execute(ctx context.Context, req *assignSpots.Request) (*assignSpots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
