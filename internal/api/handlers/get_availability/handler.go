package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ParkingService/internal/usecase/get_availability"
)

const (
	msgInvalidHotelID    = "некорректный ID отеля"
	msgInvalidCategoryID = "categoryId обязателен и должен быть положительным числом"
	msgInvalidDates      = "некорректный диапазон дат, ожидается start и end в формате YYYY-MM-DD"
	msgHotelNotFound     = "отель не найден"
	msgCategoryNotFound  = "категория транспорта не найдена"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/hotels/{hotelId}/availability
// Query params: categoryId, start, end (end не включается)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathID(r, "hotelId")
	if err != nil {
		h.logger.Warn("GET /hotels/{id}/availability - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}

	query := r.URL.Query()
	categoryID, err := strconv.ParseInt(query.Get("categoryId"), 10, 64)
	if err != nil || categoryID <= 0 {
		h.logger.Warn("GET /hotels/{id}/availability - Invalid category ID: %q", query.Get("categoryId"))
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	dates, err := domain.ParseDateRange(query.Get("start"), query.Get("end"))
	if err != nil {
		h.logger.Warn("GET /hotels/{id}/availability - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		HotelID:           hotelID,
		VehicleCategoryID: categoryID,
		Dates:             dates,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrHotelNotFound):
			h.logger.Warn("GET /hotels/{id}/availability - Hotel not found: hotel_id=%d", hotelID)
			handlers.RespondNotFound(w, msgHotelNotFound)

		case errors.Is(err, getAvailability.ErrCategoryNotFound):
			h.logger.Warn("GET /hotels/{id}/availability - Category not found: category_id=%d", categoryID)
			handlers.RespondNotFound(w, msgCategoryNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /hotels/{id}/availability - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /hotels/{id}/availability - Failed to get availability: hotel_id=%d, error=%v", hotelID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.FromCache {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
