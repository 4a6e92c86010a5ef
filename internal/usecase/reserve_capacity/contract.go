package reserve_capacity

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/planner"
)

// CapacityLedger интерфейс учета емкости
type CapacityLedger interface {
	GetAvailableCapacity(ctx context.Context, hotelID, categoryID int64, dates domain.DateRange) (*domain.AvailabilitySummary, error)
}

// HotelRepository интерфейс репозитория отелей
type HotelRepository interface {
	GetFirstLot(ctx context.Context, hotelID int64) (*domain.ParkingLot, error)
}

// CategoryRepository интерфейс репозитория категорий транспорта
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.VehicleCategory, error)
}

// SpotRepository интерфейс репозитория мест
type SpotRepository interface {
	GetPoolSpot(ctx context.Context, hotelID, categoryID int64) (*domain.ParkingSpot, error)
	CreatePoolSpot(ctx context.Context, lotID int64, category *domain.VehicleCategory) (*domain.ParkingSpot, error)
}

// AddonRepository интерфейс репозитория начислений
type AddonRepository interface {
	CreateBatch(ctx context.Context, addons []*domain.ReservationAddon) ([]*domain.ReservationAddon, error)
}

// ReservationRepository интерфейс репозитория посуточных записей
type ReservationRepository interface {
	CreateBatch(ctx context.Context, nights []*domain.ReservationNight) ([]*domain.ReservationNight, error)
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
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
