package occupancy

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// HotelRepository интерфейс репозитория отелей
type HotelRepository interface {
	List(ctx context.Context) ([]*domain.Hotel, error)
}

// CategoryRepository интерфейс репозитория категорий транспорта
type CategoryRepository interface {
	List(ctx context.Context) ([]*domain.VehicleCategory, error)
}

// CapacityLedger интерфейс учета емкости
type CapacityLedger interface {
	GetAvailableCapacity(ctx context.Context, hotelID, categoryID int64, dates domain.DateRange) (*domain.AvailabilitySummary, error)
}

// Gauge приемник значения доступности (*metrics.Metrics)
type Gauge interface {
	SetAvailableSpots(hotelID, categoryID int64, available int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
