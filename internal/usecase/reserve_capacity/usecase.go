package reserve_capacity

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/events"
	categoryRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/category"
	hotelRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/hotel"
	spotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
	"github.com/m04kA/SMC-ParkingService/internal/service/ledger"
	"github.com/m04kA/SMC-ParkingService/internal/service/planner"
)

// UseCase use case для брони емкости пула (без конкретного места)
type UseCase struct {
	ledger          CapacityLedger
	hotelRepo       HotelRepository
	categoryRepo    CategoryRepository
	spotRepo        SpotRepository
	addonRepo       AddonRepository
	reservationRepo ReservationRepository
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
	capacityLedger CapacityLedger,
	hotelRepo HotelRepository,
	categoryRepo CategoryRepository,
	spotRepo SpotRepository,
	addonRepo AddonRepository,
	reservationRepo ReservationRepository,
	spotPlanner Planner,
	txManager TransactionManager,
	cache AvailabilityCache,
	publisher EventPublisher,
	metrics Metrics,
	limits domain.BookingLimits,
	logger Logger,
) *UseCase {
	return &UseCase{
		ledger:          capacityLedger,
		hotelRepo:       hotelRepo,
		categoryRepo:    categoryRepo,
		spotRepo:        spotRepo,
		addonRepo:       addonRepo,
		reservationRepo: reservationRepo,
		planner:         spotPlanner,
		txManager:       txManager,
		cache:           cache,
		publisher:       publisher,
		metrics:         metrics,
		limits:          limits,
		logger:          logger,
	}
}

// Execute бронирует Spots единиц емкости на каждую ночь диапазона.
// Повторная проверка доступности и запись выполняются в одной сериализуемой транзакции;
// строка места пула блокируется, поэтому параллельные брони отеля/категории идут по очереди.
// При любой ошибке транзакция откатывается целиком.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveCapacity: hotel=%d, reservation=%d, category=%d, %s..%s, spots=%d",
		req.HotelID, req.ReservationDetailsID, req.VehicleCategoryID,
		domain.DateKey(req.Dates.Start), domain.DateKey(req.Dates.End), req.Spots)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.limits); err != nil {
		uc.logger.Warn("ReserveCapacity: validation failed: %v", err)
		return nil, err
	}

	var resp *Response

	// 2. Проверка и запись в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Категория
		category, err := uc.categoryRepo.GetByID(txCtx, req.VehicleCategoryID)
		if err != nil {
			if errors.Is(err, categoryRepo.ErrCategoryNotFound) {
				uc.logger.Warn("ReserveCapacity: category id=%d not found", req.VehicleCategoryID)
				return ErrCategoryNotFound
			}
			return fmt.Errorf("%w: failed to get category: %w", ErrInternal, err)
		}

		// 2.2. Место пула (с блокировкой строки)
		poolSpot, err := uc.resolvePoolSpot(txCtx, req.HotelID, category)
		if err != nil {
			return err
		}

		// 2.3. Повторная проверка доступности внутри транзакции
		summary, err := uc.ledger.GetAvailableCapacity(txCtx, req.HotelID, req.VehicleCategoryID, req.Dates)
		if err != nil {
			return mapLedgerError(err)
		}

		// 2.4. План: все единицы на месте пула
		plan, err := uc.planner.Plan(planner.Request{
			Mode:         domain.ModePooled,
			Dates:        req.Dates.Nights(),
			Count:        req.Spots,
			PoolSpotID:   poolSpot.ID,
			Availability: summary,
		})
		if err != nil {
			return err
		}

		// 2.5. Начисления и посуточные записи
		addons, nights := plan.Records(req.HotelID, req.ReservationDetailsID, req.VehicleCategoryID, req.Billing)

		createdAddons, err := uc.addonRepo.CreateBatch(txCtx, addons)
		if err != nil {
			return fmt.Errorf("%w: failed to create addons: %w", ErrInternal, err)
		}
		for i := range nights {
			nights[i].ReservationAddonID = &createdAddons[i].ID
		}

		createdNights, err := uc.reservationRepo.CreateBatch(txCtx, nights)
		if err != nil {
			return fmt.Errorf("%w: failed to create reservation nights: %w", ErrInternal, err)
		}

		resp = buildResponse(req, poolSpot.ID, plan, createdAddons, createdNights)
		return nil
	})
	if err != nil {
		if capErr, ok := domain.AsCapacityError(err); ok {
			uc.metrics.RecordCapacityRejection(string(domain.ModePooled))
			uc.logger.Warn("ReserveCapacity: hotel=%d: %v", req.HotelID, capErr)
			return nil, err
		}
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		uc.logger.Error("ReserveCapacity: transaction failed for hotel=%d: %v", req.HotelID, err)
		if errors.Is(err, domain.ErrPersistence) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	// 3. После коммита: метрики, кэш, событие
	uc.metrics.RecordReservationNights(string(domain.ModePooled), len(resp.ReservationNightIDs))
	if err := uc.cache.Invalidate(ctx, req.HotelID); err != nil {
		uc.logger.Warn("ReserveCapacity: failed to invalidate cache for hotel=%d: %v", req.HotelID, err)
	}
	event := events.ReservationConfirmed{
		HotelID:              req.HotelID,
		ReservationDetailsID: req.ReservationDetailsID,
		VehicleCategoryID:    req.VehicleCategoryID,
		Mode:                 string(domain.ModePooled),
		StartDate:            domain.DateKey(req.Dates.Start),
		EndDate:              domain.DateKey(req.Dates.End),
		Spots:                req.Spots,
		Nights:               len(resp.ReservationNightIDs),
	}
	if err := uc.publisher.Publish(ctx, events.RoutingReservationConfirmed, event); err != nil {
		uc.logger.Warn("ReserveCapacity: failed to publish event for reservation=%d: %v", req.ReservationDetailsID, err)
	}

	uc.logger.Info("ReserveCapacity: created %d nights on pool spot id=%d for reservation=%d",
		len(resp.ReservationNightIDs), resp.PoolSpotID, req.ReservationDetailsID)
	return resp, nil
}

// resolvePoolSpot находит место пула отеля/категории или создает его в первой парковке отеля
func (uc *UseCase) resolvePoolSpot(ctx context.Context, hotelID int64, category *domain.VehicleCategory) (*domain.ParkingSpot, error) {
	spot, err := uc.spotRepo.GetPoolSpot(ctx, hotelID, category.ID)
	if err == nil {
		return spot, nil
	}
	if !errors.Is(err, spotRepo.ErrSpotNotFound) {
		return nil, fmt.Errorf("%w: failed to get pool spot: %w", ErrInternal, err)
	}

	lot, err := uc.hotelRepo.GetFirstLot(ctx, hotelID)
	if err != nil {
		if errors.Is(err, hotelRepo.ErrLotNotFound) {
			uc.logger.Warn("ReserveCapacity: hotel id=%d not found or has no parking lots", hotelID)
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("%w: failed to get parking lot: %w", ErrInternal, err)
	}

	spot, err = uc.spotRepo.CreatePoolSpot(ctx, lot.ID, category)
	if errors.Is(err, spotRepo.ErrSpotNotFound) {
		// создано параллельной транзакцией
		spot, err = uc.spotRepo.GetPoolSpot(ctx, hotelID, category.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create pool spot: %w", ErrInternal, err)
	}

	uc.logger.Info("ReserveCapacity: using pool spot id=%d in lot id=%d for category id=%d", spot.ID, lot.ID, category.ID)
	return spot, nil
}

func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrHotelNotFound):
		return ErrHotelNotFound
	case errors.Is(err, ledger.ErrCategoryNotFound):
		return ErrCategoryNotFound
	case errors.Is(err, domain.ErrValidation):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return fmt.Errorf("%w: failed to check availability: %w", ErrInternal, err)
}

func buildResponse(
	req *Request,
	poolSpotID int64,
	plan *planner.Plan,
	addons []*domain.ReservationAddon,
	nights []*domain.ReservationNight,
) *Response {
	resp := &Response{
		ReservationDetailsID: req.ReservationDetailsID,
		Mode:                 plan.Mode,
		PoolSpotID:           poolSpotID,
		SpotsByDate:          plan.SpotsByDate(),
		ReservationNightIDs:  make([]int64, 0, len(nights)),
		ReservationAddonIDs:  make([]int64, 0, len(addons)),
	}
	for _, n := range nights {
		resp.ReservationNightIDs = append(resp.ReservationNightIDs, n.ID)
	}
	for _, a := range addons {
		resp.ReservationAddonIDs = append(resp.ReservationAddonIDs, a.ID)
	}
	return resp
}
