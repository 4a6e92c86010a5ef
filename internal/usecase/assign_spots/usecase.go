package assign_spots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/events"
	categoryRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/category"
	hotelRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/hotel"
	"github.com/m04kA/SMC-ParkingService/internal/service/planner"
)

// UseCase use case для назначения конкретных физических мест на каждую ночь
type UseCase struct {
	hotelRepo       HotelRepository
	categoryRepo    CategoryRepository
	spotRepo        SpotRepository
	reservationRepo ReservationRepository
	addonRepo       AddonRepository
	blocks          BlockOverlayProvider
	planner         Planner
	txManager       TransactionManager
	cache           AvailabilityCache
	publisher       EventPublisher
	metrics         Metrics
	limits          domain.BookingLimits
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	hotelRepo HotelRepository,
	categoryRepo CategoryRepository,
	spotRepo SpotRepository,
	reservationRepo ReservationRepository,
	addonRepo AddonRepository,
	blocks BlockOverlayProvider,
	spotPlanner Planner,
	txManager TransactionManager,
	cache AvailabilityCache,
	publisher EventPublisher,
	metrics Metrics,
	limits domain.BookingLimits,
	logger Logger,
) *UseCase {
	return &UseCase{
		hotelRepo:       hotelRepo,
		categoryRepo:    categoryRepo,
		spotRepo:        spotRepo,
		reservationRepo: reservationRepo,
		addonRepo:       addonRepo,
		blocks:          blocks,
		planner:         spotPlanner,
		txManager:       txManager,
		cache:           cache,
		publisher:       publisher,
		metrics:         metrics,
		limits:          limits,
		logger:          logger,
	}
}

// Execute подбирает места и сохраняет записи в одной сериализуемой транзакции.
// Совместимые места блокируются FOR UPDATE до коммита.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AssignSpots: hotel=%d, reservation=%d, category=%d, %s..%s, spots=%d",
		req.HotelID, req.ReservationDetailsID, req.VehicleCategoryID,
		domain.DateKey(req.Dates.Start), domain.DateKey(req.Dates.End), req.Spots)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.limits); err != nil {
		uc.logger.Warn("AssignSpots: validation failed: %v", err)
		return nil, err
	}

	var (
		resp *Response
		plan *planner.Plan
	)

	// 2. Снимок занятости, план и запись в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Отель
		if _, err := uc.hotelRepo.GetByID(txCtx, req.HotelID); err != nil {
			if errors.Is(err, hotelRepo.ErrHotelNotFound) {
				uc.logger.Warn("AssignSpots: hotel id=%d not found", req.HotelID)
				return ErrHotelNotFound
			}
			return fmt.Errorf("%w: failed to get hotel: %w", ErrInternal, err)
		}

		// 2.2. Категория
		category, err := uc.categoryRepo.GetByID(txCtx, req.VehicleCategoryID)
		if err != nil {
			if errors.Is(err, categoryRepo.ErrCategoryNotFound) {
				uc.logger.Warn("AssignSpots: category id=%d not found", req.VehicleCategoryID)
				return ErrCategoryNotFound
			}
			return fmt.Errorf("%w: failed to get category: %w", ErrInternal, err)
		}

		// 2.3. Кандидаты (с блокировкой строк)
		candidates, err := uc.spotRepo.ListCompatible(txCtx, req.HotelID, category.CapacityUnitsRequired)
		if err != nil {
			return fmt.Errorf("%w: failed to list compatible spots: %w", ErrInternal, err)
		}

		// 2.4. Занятость, брони пула и блокировки по датам
		occupied, err := uc.reservationRepo.ListOccupied(txCtx, spotIDs(candidates), req.Dates)
		if err != nil {
			return fmt.Errorf("%w: failed to list occupied spots: %w", ErrInternal, err)
		}

		poolReserved, err := uc.reservationRepo.CountPoolReserved(txCtx, req.HotelID, req.VehicleCategoryID, req.Dates)
		if err != nil {
			return fmt.Errorf("%w: failed to count pool reservations: %w", ErrInternal, err)
		}

		nights := req.Dates.Nights()
		overlay, err := uc.blocks.Overlay(txCtx, req.HotelID, nights, category.CapacityUnitsRequired)
		if err != nil {
			return fmt.Errorf("%w: failed to build block overlay: %w", ErrInternal, err)
		}

		// 2.5. Жадный подбор мест
		plan, err = uc.planner.Plan(planner.Request{
			Mode:         domain.ModePhysical,
			Dates:        nights,
			Count:        req.Spots,
			Candidates:   candidates,
			Occupied:     occupied,
			Blocks:       overlay,
			PoolReserved: poolReserved,
		})
		if err != nil {
			return err
		}

		// 2.6. Начисления и посуточные записи
		addons, records := plan.Records(req.HotelID, req.ReservationDetailsID, req.VehicleCategoryID, req.Billing)

		createdAddons, err := uc.addonRepo.CreateBatch(txCtx, addons)
		if err != nil {
			return fmt.Errorf("%w: failed to create addons: %w", ErrInternal, err)
		}
		for i := range records {
			records[i].ReservationAddonID = &createdAddons[i].ID
		}

		createdNights, err := uc.reservationRepo.CreateBatch(txCtx, records)
		if err != nil {
			return fmt.Errorf("%w: failed to create reservation nights: %w", ErrInternal, err)
		}

		resp = buildResponse(req, plan, createdAddons, createdNights)
		return nil
	})
	if err != nil {
		if capErr, ok := domain.AsCapacityError(err); ok {
			uc.metrics.RecordCapacityRejection(string(domain.ModePhysical))
			uc.logger.Warn("AssignSpots: hotel=%d: %v", req.HotelID, capErr)
			return nil, err
		}
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		uc.logger.Error("AssignSpots: transaction failed for hotel=%d: %v", req.HotelID, err)
		if errors.Is(err, domain.ErrPersistence) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	// 3. После коммита: метрики, кэш, событие
	uc.metrics.RecordReservationNights(string(domain.ModePhysical), len(resp.ReservationNightIDs))
	for _, spots := range resp.UnitSpots {
		uc.metrics.ObserveSpotsPerUnit(len(spots))
	}
	if err := uc.cache.Invalidate(ctx, req.HotelID); err != nil {
		uc.logger.Warn("AssignSpots: failed to invalidate cache for hotel=%d: %v", req.HotelID, err)
	}
	event := events.ReservationConfirmed{
		HotelID:              req.HotelID,
		ReservationDetailsID: req.ReservationDetailsID,
		VehicleCategoryID:    req.VehicleCategoryID,
		Mode:                 string(domain.ModePhysical),
		StartDate:            domain.DateKey(req.Dates.Start),
		EndDate:              domain.DateKey(req.Dates.End),
		Spots:                req.Spots,
		Nights:               len(resp.ReservationNightIDs),
	}
	if err := uc.publisher.Publish(ctx, events.RoutingReservationConfirmed, event); err != nil {
		uc.logger.Warn("AssignSpots: failed to publish event for reservation=%d: %v", req.ReservationDetailsID, err)
	}

	uc.logger.Info("AssignSpots: created %d nights over %d units for reservation=%d",
		len(resp.ReservationNightIDs), len(plan.Units), req.ReservationDetailsID)
	return resp, nil
}

func spotIDs(spots []*domain.ParkingSpot) []int64 {
	ids := make([]int64, len(spots))
	for i, s := range spots {
		ids[i] = s.ID
	}
	return ids
}

func buildResponse(
	req *Request,
	plan *planner.Plan,
	addons []*domain.ReservationAddon,
	nights []*domain.ReservationNight,
) *Response {
	resp := &Response{
		ReservationDetailsID: req.ReservationDetailsID,
		Mode:                 plan.Mode,
		SpotsByDate:          plan.SpotsByDate(),
		UnitSpots:            make([][]int64, 0, len(plan.Units)),
		ReservationNightIDs:  make([]int64, 0, len(nights)),
		ReservationAddonIDs:  make([]int64, 0, len(addons)),
	}
	for _, u := range plan.Units {
		resp.UnitSpots = append(resp.UnitSpots, u.SpotIDs())
	}
	for _, n := range nights {
		resp.ReservationNightIDs = append(resp.ReservationNightIDs, n.ID)
	}
	for _, a := range addons {
		resp.ReservationAddonIDs = append(resp.ReservationAddonIDs, a.ID)
	}
	return resp
}
