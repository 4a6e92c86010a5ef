package assign_spots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/planner"
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
	ListCompatible(ctx context.Context, hotelID int64, minUnits int) ([]*domain.ParkingSpot, error)
}

// ReservationRepository интерфейс репозитория посуточных записей
type ReservationRepository interface {
	ListOccupied(ctx context.Context, spotIDs []int64, dates domain.DateRange) (map[string]map[int64]struct{}, error)
	CountPoolReserved(ctx context.Context, hotelID, categoryID int64, dates domain.DateRange) (map[string]int, error)
	CreateBatch(ctx context.Context, nights []*domain.ReservationNight) ([]*domain.ReservationNight, error)
}

// AddonRepository интерфейс репозитория начислений
type AddonRepository interface {
	CreateBatch(ctx context.Context, addons []*domain.ReservationAddon) ([]*domain.ReservationAddon, error)
}

// BlockOverlayProvider суммы блокировок по датам
type BlockOverlayProvider interface {
	Overlay(ctx context.Context, hotelID int64, dates []time.Time, requiredUnits int) (*domain.BlockOverlay, error)
}

// Planner интерфейс планировщика мест
type Planner interface {
	Plan(req planner.Request) (*planner.Plan, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache интерфейс кэша сводок
type AvailabilityCache interface {
	Invalidate(ctx context.Context, hotelID int64) error
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

// Metrics доменные метрики
type Metrics interface {
	RecordReservationNights(mode string, nights int)
	RecordCapacityRejection(mode string)
	ObserveSpotsPerUnit(spots int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
