package reserve_capacity

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reserveCapacity "github.com/m04kA/SMC-ParkingService/internal/usecase/reserve_capacity"
)

const (
	msgInvalidHotelID     = "некорректный ID отеля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректный формат дат, ожидается YYYY-MM-DD"
	msgHotelNotFound      = "отель не найден или у него нет парковок"
	msgCategoryNotFound   = "категория транспорта не найдена"
)

type Handler struct {
	useCase ReserveCapacityUseCase
	logger  Logger
}

func NewHandler(useCase ReserveCapacityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/hotels/{hotelId}/capacity-reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathID(r, "hotelId")
	if err != nil {
		h.logger.Warn("POST /hotels/{id}/capacity-reservations - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}

	var req ReserveCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /hotels/{id}/capacity-reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(hotelID)
	if err != nil {
		h.logger.Warn("POST /hotels/{id}/capacity-reservations - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientCapacity):
			h.logger.Warn("POST /hotels/{id}/capacity-reservations - Insufficient capacity: hotel_id=%d, reservation=%d: %v",
				hotelID, req.ReservationDetailsID, err)
			handlers.RespondConflict(w, handlers.CapacityMessage(err))

		case errors.Is(err, reserveCapacity.ErrHotelNotFound):
			h.logger.Warn("POST /hotels/{id}/capacity-reservations - Hotel not found: hotel_id=%d", hotelID)
			handlers.RespondNotFound(w, msgHotelNotFound)

		case errors.Is(err, reserveCapacity.ErrCategoryNotFound):
			h.logger.Warn("POST /hotels/{id}/capacity-reservations - Category not found: category_id=%d", req.VehicleCategoryID)
			handlers.RespondNotFound(w, msgCategoryNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /hotels/{id}/capacity-reservations - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /hotels/{id}/capacity-reservations - Failed to reserve: hotel_id=%d, reservation=%d, error=%v",
				hotelID, req.ReservationDetailsID, err)
			handlers.RespondWriteError(w, err)
		}
		return
	}

	h.logger.Info("POST /hotels/{id}/capacity-reservations - Reserved: hotel_id=%d, reservation=%d, nights=%d",
		hotelID, result.ReservationDetailsID, len(result.ReservationNightIDs))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
