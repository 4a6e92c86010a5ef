// Package ledger считает доступную емкость парковки по датам:
// available = max(0, total - reserved - blocked).
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	categoryRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/category"
	hotelRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/hotel"
)

// Service сервис учета емкости
type Service struct {
	hotelRepo       HotelRepository
	categoryRepo    CategoryRepository
	spotRepo        SpotRepository
	reservationRepo ReservationRepository
	blocks          BlockOverlayProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса учета емкости
func NewService(
	hotelRepo HotelRepository,
	categoryRepo CategoryRepository,
	spotRepo SpotRepository,
	reservationRepo ReservationRepository,
	blocks BlockOverlayProvider,
	logger Logger,
) *Service {
	return &Service{
		hotelRepo:       hotelRepo,
		categoryRepo:    categoryRepo,
		spotRepo:        spotRepo,
		reservationRepo: reservationRepo,
		blocks:          blocks,
		logger:          logger,
	}
}

// GetAvailableCapacity считает емкость по каждой ночи диапазона [start, end).
// Только чтение; внутри транзакции из контекста видит её снимок.
func (s *Service) GetAvailableCapacity(ctx context.Context, hotelID, categoryID int64, dates domain.DateRange) (*domain.AvailabilitySummary, error) {
	if err := dates.ValidateNights(); err != nil {
		return nil, err
	}

	// 1. Проверяем отель
	if _, err := s.hotelRepo.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, hotelRepo.ErrHotelNotFound) {
			s.logger.Warn("GetAvailableCapacity: hotel id=%d not found", hotelID)
			return nil, ErrHotelNotFound
		}
		s.logger.Error("GetAvailableCapacity: failed to get hotel id=%d: %v", hotelID, err)
		return nil, fmt.Errorf("%w: GetAvailableCapacity - get hotel: %w", ErrInternal, err)
	}

	// 2. Получаем категорию
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, categoryRepo.ErrCategoryNotFound) {
			s.logger.Warn("GetAvailableCapacity: category id=%d not found", categoryID)
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("GetAvailableCapacity: failed to get category id=%d: %v", categoryID, err)
		return nil, fmt.Errorf("%w: GetAvailableCapacity - get category: %w", ErrInternal, err)
	}

	// 3. Физическая емкость не зависит от даты
	total, err := s.spotRepo.CountCompatible(ctx, hotelID, category.CapacityUnitsRequired)
	if err != nil {
		s.logger.Error("GetAvailableCapacity: failed to count spots for hotel id=%d: %v", hotelID, err)
		return nil, fmt.Errorf("%w: GetAvailableCapacity - count spots: %w", ErrInternal, err)
	}

	// 4. Брони на месте пула
	reserved, err := s.reservationRepo.CountPoolReserved(ctx, hotelID, categoryID, dates)
	if err != nil {
		s.logger.Error("GetAvailableCapacity: failed to count reservations for hotel id=%d: %v", hotelID, err)
		return nil, fmt.Errorf("%w: GetAvailableCapacity - count reserved: %w", ErrInternal, err)
	}

	// 5. Блокировки, применимые к размеру категории
	nights := dates.Nights()
	overlay, err := s.blocks.Overlay(ctx, hotelID, nights, category.CapacityUnitsRequired)
	if err != nil {
		s.logger.Error("GetAvailableCapacity: failed to load blocks for hotel id=%d: %v", hotelID, err)
		return nil, fmt.Errorf("%w: GetAvailableCapacity - load blocks: %w", ErrInternal, err)
	}

	days := make([]domain.DateAvailability, 0, len(nights))
	for _, night := range nights {
		days = append(days, domain.NewDateAvailability(
			night,
			total,
			reserved[domain.DateKey(night)],
			overlay.TotalOn(night),
		))
	}

	return domain.NewAvailabilitySummary(hotelID, categoryID, days), nil
}
