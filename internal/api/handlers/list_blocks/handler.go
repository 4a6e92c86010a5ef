package list_blocks

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/blocks"
	"github.com/m04kA/SMC-ParkingService/internal/service/blocks/models"
)

const (
	msgInvalidHotelID = "некорректный ID отеля"
	msgInvalidDates   = "некорректный диапазон дат, ожидается start и end в формате YYYY-MM-DD"
	msgHotelNotFound  = "отель не найден"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/hotels/{hotelId}/blocks?start=&end= (обе даты включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathID(r, "hotelId")
	if err != nil {
		h.logger.Warn("GET /hotels/{id}/blocks - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}

	dates, err := domain.ParseDateRange(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		h.logger.Warn("GET /hotels/{id}/blocks - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.service.ListBlocks(r.Context(), hotelID, dates)
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrHotelNotFound):
			h.logger.Warn("GET /hotels/{id}/blocks - Hotel not found: hotel_id=%d", hotelID)
			handlers.RespondNotFound(w, msgHotelNotFound)

		case errors.Is(err, blocks.ErrInvalidInput):
			h.logger.Warn("GET /hotels/{id}/blocks - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /hotels/{id}/blocks - Failed to list blocks: hotel_id=%d, error=%v", hotelID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBlocks(result))
}
