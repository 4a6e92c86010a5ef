// Package blocks ведет реестр блокировок емкости и отдает их суммы по датам
// учету емкости и планировщику мест.
package blocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/events"
	blockRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/block"
	hotelRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/hotel"
	"github.com/m04kA/SMC-ParkingService/internal/service/blocks/models"
)

const (
	actionCreated  = "created"
	actionReleased = "released"
)

// Service сервис блокировок
type Service struct {
	blockRepo BlockRepository
	hotelRepo HotelRepository
	spotRepo  SpotRepository
	cache     AvailabilityCache
	publisher EventPublisher
	metrics   Metrics
	logger    Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(
	blockRepo BlockRepository,
	hotelRepo HotelRepository,
	spotRepo SpotRepository,
	cache AvailabilityCache,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		blockRepo: blockRepo,
		hotelRepo: hotelRepo,
		spotRepo:  spotRepo,
		cache:     cache,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// BlockCapacity создает блокировку. Превышение числа подходящих мест не ошибка:
// блокировка создается, а в результат добавляется предупреждение.
func (s *Service) BlockCapacity(ctx context.Context, req *models.BlockCapacityRequest) (*models.BlockResult, error) {
	s.logger.Info("BlockCapacity: hotel=%d, lot=%v, size=%v, %s..%s, spots=%d",
		req.HotelID, fmtOptional(req.ParkingLotID), fmtOptional(req.SpotSize),
		domain.DateKey(req.Dates.Start), domain.DateKey(req.Dates.End), req.NumberOfSpots)

	// 1. Валидация
	if err := validateBlockRequest(req); err != nil {
		s.logger.Warn("BlockCapacity: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем отель и парковку
	if err := s.checkScope(ctx, req.HotelID, req.ParkingLotID); err != nil {
		return nil, err
	}

	// 3. Считаем подходящие места (только для предупреждения)
	matching, err := s.spotRepo.CountMatching(ctx, domain.SpotFilter{
		HotelID:      req.HotelID,
		ParkingLotID: req.ParkingLotID,
		SpotSize:     req.SpotSize,
	})
	if err != nil {
		s.logger.Error("BlockCapacity: failed to count spots for hotel=%d: %v", req.HotelID, err)
		return nil, fmt.Errorf("%w: BlockCapacity - count spots: %w", ErrInternal, err)
	}

	var warnings []string
	if req.NumberOfSpots > matching {
		warning := fmt.Sprintf("block of %d spots exceeds %d matching physical spots", req.NumberOfSpots, matching)
		s.logger.Warn("BlockCapacity: hotel=%d: %s", req.HotelID, warning)
		warnings = append(warnings, warning)
	}

	// 4. Сохраняем
	block, err := s.blockRepo.Create(ctx, &domain.ParkingBlock{
		HotelID:       req.HotelID,
		ParkingLotID:  req.ParkingLotID,
		SpotSize:      req.SpotSize,
		StartDate:     domain.TruncateDate(req.Dates.Start),
		EndDate:       domain.TruncateDate(req.Dates.End),
		NumberOfSpots: req.NumberOfSpots,
		Comment:       req.Comment,
	})
	if err != nil {
		s.logger.Error("BlockCapacity: failed to create block for hotel=%d: %v", req.HotelID, err)
		return nil, fmt.Errorf("%w: BlockCapacity - create block: %w", ErrInternal, err)
	}

	s.afterChange(ctx, block, actionCreated, events.RoutingBlockCreated)

	s.logger.Info("BlockCapacity: created block id=%d for hotel=%d", block.ID, block.HotelID)
	return &models.BlockResult{
		Block:         block,
		MatchingSpots: matching,
		Warnings:      warnings,
	}, nil
}

// ReleaseCapacityBlock удаляет блокировку; емкость возвращается сразу
func (s *Service) ReleaseCapacityBlock(ctx context.Context, blockID int64) error {
	s.logger.Info("ReleaseCapacityBlock: releasing block id=%d", blockID)

	block, err := s.blockRepo.GetByID(ctx, blockID)
	if err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("ReleaseCapacityBlock: block id=%d not found", blockID)
			return ErrBlockNotFound
		}
		s.logger.Error("ReleaseCapacityBlock: failed to get block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: ReleaseCapacityBlock - get block: %w", ErrInternal, err)
	}

	if err := s.blockRepo.Delete(ctx, blockID); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("ReleaseCapacityBlock: block id=%d already released", blockID)
			return ErrBlockNotFound
		}
		s.logger.Error("ReleaseCapacityBlock: failed to delete block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: ReleaseCapacityBlock - delete block: %w", ErrInternal, err)
	}

	s.afterChange(ctx, block, actionReleased, events.RoutingBlockReleased)

	s.logger.Info("ReleaseCapacityBlock: released block id=%d", blockID)
	return nil
}

// ListBlocks получает блокировки отеля, пересекающиеся с диапазоном включительно
func (s *Service) ListBlocks(ctx context.Context, hotelID int64, dates domain.DateRange) ([]*domain.ParkingBlock, error) {
	if err := dates.ValidateInclusive(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.checkScope(ctx, hotelID, nil); err != nil {
		return nil, err
	}

	blocks, err := s.blockRepo.ListOverlapping(ctx, hotelID, dates.Start, dates.End)
	if err != nil {
		s.logger.Error("ListBlocks: failed to list blocks for hotel=%d: %v", hotelID, err)
		return nil, fmt.Errorf("%w: ListBlocks - list blocks: %w", ErrInternal, err)
	}

	return blocks, nil
}

// Overlay суммирует блокировки по датам для категории с требуемым размером requiredUnits
func (s *Service) Overlay(ctx context.Context, hotelID int64, dates []time.Time, requiredUnits int) (*domain.BlockOverlay, error) {
	if len(dates) == 0 {
		return domain.BuildBlockOverlay(nil, nil, requiredUnits), nil
	}

	blocks, err := s.blockRepo.ListOverlapping(ctx, hotelID, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, fmt.Errorf("%w: Overlay - list blocks: %w", ErrInternal, err)
	}

	return domain.BuildBlockOverlay(blocks, dates, requiredUnits), nil
}

// checkScope проверяет, что отель существует, а парковка (если указана) принадлежит ему
func (s *Service) checkScope(ctx context.Context, hotelID int64, lotID *int64) error {
	if _, err := s.hotelRepo.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, hotelRepo.ErrHotelNotFound) {
			s.logger.Warn("checkScope: hotel id=%d not found", hotelID)
			return ErrHotelNotFound
		}
		s.logger.Error("checkScope: failed to get hotel id=%d: %v", hotelID, err)
		return fmt.Errorf("%w: checkScope - get hotel: %w", ErrInternal, err)
	}

	if lotID == nil {
		return nil
	}

	lot, err := s.hotelRepo.GetLot(ctx, *lotID)
	if err != nil {
		if errors.Is(err, hotelRepo.ErrLotNotFound) {
			s.logger.Warn("checkScope: parking lot id=%d not found", *lotID)
			return ErrLotNotFound
		}
		s.logger.Error("checkScope: failed to get parking lot id=%d: %v", *lotID, err)
		return fmt.Errorf("%w: checkScope - get lot: %w", ErrInternal, err)
	}
	if lot.HotelID != hotelID {
		s.logger.Warn("checkScope: parking lot id=%d belongs to hotel=%d, not %d", lot.ID, lot.HotelID, hotelID)
		return ErrLotNotFound
	}

	return nil
}

// afterChange сбрасывает кэш и публикует событие; ошибки только логируются
func (s *Service) afterChange(ctx context.Context, block *domain.ParkingBlock, action, routingKey string) {
	s.metrics.RecordBlockChange(action)

	if err := s.cache.Invalidate(ctx, block.HotelID); err != nil {
		s.logger.Warn("afterChange: failed to invalidate cache for hotel=%d: %v", block.HotelID, err)
	}

	event := events.BlockChanged{
		BlockID:       block.ID,
		HotelID:       block.HotelID,
		ParkingLotID:  block.ParkingLotID,
		SpotSize:      block.SpotSize,
		StartDate:     domain.DateKey(block.StartDate),
		EndDate:       domain.DateKey(block.EndDate),
		NumberOfSpots: block.NumberOfSpots,
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		s.logger.Warn("afterChange: failed to publish %s for block id=%d: %v", routingKey, block.ID, err)
	}
}

func fmtOptional[T any](v *T) string {
	if v == nil {
		return "any"
	}
	return fmt.Sprint(*v)
}
