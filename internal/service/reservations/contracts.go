package reservations

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ReservationRepository интерфейс репозитория посуточных записей
type ReservationRepository interface {
	GetByReservation(ctx context.Context, hotelID, reservationDetailsID int64) ([]*domain.ReservationNight, error)
	CancelByReservation(ctx context.Context, hotelID, reservationDetailsID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache кэш сводок доступности
type AvailabilityCache interface {
	Invalidate(ctx context.Context, hotelID int64) error
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
