package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/ledger"
)

// UseCase use case для получения доступности парковки
type UseCase struct {
	ledger    CapacityLedger
	cache     AvailabilityCache
	txManager TransactionManager
	limits    domain.BookingLimits
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	capacityLedger CapacityLedger,
	cache AvailabilityCache,
	txManager TransactionManager,
	limits domain.BookingLimits,
	logger Logger,
) *UseCase {
	return &UseCase{
		ledger:    capacityLedger,
		cache:     cache,
		txManager: txManager,
		limits:    limits,
		logger:    logger,
	}
}

// Execute возвращает доступность по ночам; сначала смотрит в кэш
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req, uc.limits); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Кэш; ошибка кэша не ошибка запроса. Версию запоминаем до расчета
	cached, version, ok, err := uc.cache.Get(ctx, req.HotelID, req.VehicleCategoryID, req.Dates)
	cacheable := err == nil
	if err != nil {
		uc.logger.Warn("GetAvailability: cache read failed for hotel=%d: %v", req.HotelID, err)
	}
	if ok {
		return &Response{Summary: cached, FromCache: true}, nil
	}

	// 3. Считаем по согласованному снимку
	var summary *domain.AvailabilitySummary
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		s, err := uc.ledger.GetAvailableCapacity(txCtx, req.HotelID, req.VehicleCategoryID, req.Dates)
		if err != nil {
			return err
		}
		summary = s
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrHotelNotFound):
			return nil, ErrHotelNotFound
		case errors.Is(err, ledger.ErrCategoryNotFound):
			return nil, ErrCategoryNotFound
		case errors.Is(err, domain.ErrValidation):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailability: failed to compute availability for hotel=%d: %v", req.HotelID, err)
		return nil, fmt.Errorf("%w: failed to compute availability: %w", ErrInternal, err)
	}

	// 4. Кладем в кэш под версией из шага 2; без версии не кэшируем
	if cacheable {
		if err := uc.cache.Set(ctx, version, req.Dates, summary); err != nil {
			uc.logger.Warn("GetAvailability: cache write failed for hotel=%d: %v", req.HotelID, err)
		}
	}

	uc.logger.Info("GetAvailability: hotel=%d, category=%d, %s..%s, min=%d, max=%d",
		req.HotelID, req.VehicleCategoryID, domain.DateKey(req.Dates.Start), domain.DateKey(req.Dates.End),
		summary.MinAvailable, summary.MaxAvailable)

	return &Response{Summary: summary}, nil
}
