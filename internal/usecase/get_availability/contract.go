package get_availability

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CapacityLedger интерфейс учета емкости
type CapacityLedger interface {
	GetAvailableCapacity(ctx context.Context, hotelID, categoryID int64, dates domain.DateRange) (*domain.AvailabilitySummary, error)
}

// AvailabilityCache интерфейс кэша сводок. Get возвращает версию отеля, Set пишет под ней.
type AvailabilityCache interface {
	Get(ctx context.Context, hotelID, categoryID int64, dates domain.DateRange) (*domain.AvailabilitySummary, int64, bool, error)
	Set(ctx context.Context, version int64, dates domain.DateRange, summary *domain.AvailabilitySummary) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
