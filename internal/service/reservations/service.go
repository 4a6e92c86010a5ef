package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/infra/events"
	reservationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
)

// Service сервис записей парковки бронирований
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	cache           AvailabilityCache
	publisher       EventPublisher
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей парковки
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	cache AvailabilityCache,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		cache:           cache,
		publisher:       publisher,
		logger:          logger,
	}
}

// GetByReservation получает все записи парковки бронирования, включая отмененные
func (s *Service) GetByReservation(ctx context.Context, hotelID, reservationDetailsID int64) (*models.ReservationParkingResponse, error) {
	if hotelID <= 0 || reservationDetailsID <= 0 {
		return nil, fmt.Errorf("%w: hotel id and reservation id must be positive", ErrInvalidInput)
	}

	nights, err := s.reservationRepo.GetByReservation(ctx, hotelID, reservationDetailsID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByReservation: no parking for reservation=%d in hotel=%d", reservationDetailsID, hotelID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByReservation: repository error for reservation=%d: %v", reservationDetailsID, err)
		return nil, fmt.Errorf("%w: GetByReservation - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainNights(hotelID, reservationDetailsID, nights), nil
}

// Cancel отменяет все активные записи бронирования; емкость освобождается сразу
func (s *Service) Cancel(ctx context.Context, hotelID, reservationDetailsID int64) (*models.CancelResponse, error) {
	s.logger.Info("Cancel: cancelling parking for reservation=%d in hotel=%d", reservationDetailsID, hotelID)

	if hotelID <= 0 || reservationDetailsID <= 0 {
		return nil, fmt.Errorf("%w: hotel id and reservation id must be positive", ErrInvalidInput)
	}

	var cancelled int64
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		n, err := s.reservationRepo.CancelByReservation(ctx, hotelID, reservationDetailsID)
		if err != nil {
			return err
		}
		cancelled = n
		return nil
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: nothing to cancel for reservation=%d in hotel=%d", reservationDetailsID, hotelID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Cancel: failed to cancel reservation=%d: %v", reservationDetailsID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	if err := s.cache.Invalidate(ctx, hotelID); err != nil {
		s.logger.Warn("Cancel: failed to invalidate cache for hotel=%d: %v", hotelID, err)
	}

	event := events.ReservationCancelled{
		HotelID:              hotelID,
		ReservationDetailsID: reservationDetailsID,
		CancelledNights:      cancelled,
	}
	if err := s.publisher.Publish(ctx, events.RoutingReservationCancelled, event); err != nil {
		s.logger.Warn("Cancel: failed to publish event for reservation=%d: %v", reservationDetailsID, err)
	}

	s.logger.Info("Cancel: cancelled %d nights for reservation=%d", cancelled, reservationDetailsID)
	return &models.CancelResponse{
		HotelID:              hotelID,
		ReservationDetailsID: reservationDetailsID,
		CancelledNights:      cancelled,
	}, nil
}
