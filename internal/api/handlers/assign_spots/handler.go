package assign_spots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	assignSpots "github.com/m04kA/SMC-ParkingService/internal/usecase/assign_spots"
)

const (
	msgInvalidHotelID     = "некорректный ID отеля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректный формат дат, ожидается YYYY-MM-DD"
	msgHotelNotFound      = "отель не найден"
	msgCategoryNotFound   = "категория транспорта не найдена"
)

type Handler struct {
	useCase AssignSpotsUseCase
	logger  Logger
}

func NewHandler(useCase AssignSpotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/hotels/{hotelId}/spot-assignments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathID(r, "hotelId")
	if err != nil {
		h.logger.Warn("POST /hotels/{id}/spot-assignments - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}

	var req AssignSpotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /hotels/{id}/spot-assignments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(hotelID)
	if err != nil {
		h.logger.Warn("POST /hotels/{id}/spot-assignments - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientCapacity):
			h.logger.Warn("POST /hotels/{id}/spot-assignments - Insufficient capacity: hotel_id=%d, reservation=%d: %v",
				hotelID, req.ReservationDetailsID, err)
			handlers.RespondConflict(w, handlers.CapacityMessage(err))

		case errors.Is(err, assignSpots.ErrHotelNotFound):
			h.logger.Warn("POST /hotels/{id}/spot-assignments - Hotel not found: hotel_id=%d", hotelID)
			handlers.RespondNotFound(w, msgHotelNotFound)

		case errors.Is(err, assignSpots.ErrCategoryNotFound):
			h.logger.Warn("POST /hotels/{id}/spot-assignments - Category not found: category_id=%d", req.VehicleCategoryID)
			handlers.RespondNotFound(w, msgCategoryNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /hotels/{id}/spot-assignments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /hotels/{id}/spot-assignments - Failed to assign spots: hotel_id=%d, reservation=%d, error=%v",
				hotelID, req.ReservationDetailsID, err)
			handlers.RespondWriteError(w, err)
		}
		return
	}

	h.logger.Info("POST /hotels/{id}/spot-assignments - Assigned: hotel_id=%d, reservation=%d, nights=%d",
		hotelID, result.ReservationDetailsID, len(result.ReservationNightIDs))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
