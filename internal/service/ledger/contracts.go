package ledger

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// HotelRepository интерфейс репозитория отелей
type HotelRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
}

// CategoryRepository интерфейс репозитория категорий транспорта
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.VehicleCategory, error)
}

// SpotRepository интерфейс репозитория мест
type SpotRepository interface {
	CountCompatible(ctx context.Context, hotelID int64, minUnits int) (int, error)
}

// ReservationRepository интерфейс репозитория посуточных записей
type ReservationRepository interface {
	CountPoolReserved(ctx context.Context, hotelID, categoryID int64, dates domain.DateRange) (map[string]int, error)
}

// BlockOverlayProvider источник сумм блокировок по датам (сервис блокировок)
type BlockOverlayProvider interface {
	Overlay(ctx context.Context, hotelID int64, dates []time.Time, requiredUnits int) (*domain.BlockOverlay, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
