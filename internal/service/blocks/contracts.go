package blocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	Create(ctx context.Context, block *domain.ParkingBlock) (*domain.ParkingBlock, error)
	GetByID(ctx context.Context, id int64) (*domain.ParkingBlock, error)
	Delete(ctx context.Context, id int64) error
	ListOverlapping(ctx context.Context, hotelID int64, start, end time.Time) ([]*domain.ParkingBlock, error)
}

// HotelRepository интерфейс репозитория отелей
type HotelRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	GetLot(ctx context.Context, lotID int64) (*domain.ParkingLot, error)
}

// SpotRepository интерфейс репозитория мест
type SpotRepository interface {
	CountMatching(ctx context.Context, filter domain.SpotFilter) (int, error)
}

// AvailabilityCache кэш сводок доступности
type AvailabilityCache interface {
	Invalidate(ctx context.Context, hotelID int64) error
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

// Metrics доменные метрики
type Metrics interface {
	RecordBlockChange(action string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
