package create_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/blocks"
)

const (
	msgInvalidHotelID     = "некорректный ID отеля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректный формат дат, ожидается YYYY-MM-DD"
	msgHotelNotFound      = "отель не найден"
	msgLotNotFound        = "парковка не найдена в этом отеле"
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

// Handle POST /api/v1/hotels/{hotelId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathID(r, "hotelId")
	if err != nil {
		h.logger.Warn("POST /hotels/{id}/blocks - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}

	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /hotels/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(hotelID)
	if err != nil {
		h.logger.Warn("POST /hotels/{id}/blocks - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.service.BlockCapacity(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrHotelNotFound):
			h.logger.Warn("POST /hotels/{id}/blocks - Hotel not found: hotel_id=%d", hotelID)
			handlers.RespondNotFound(w, msgHotelNotFound)

		case errors.Is(err, blocks.ErrLotNotFound):
			h.logger.Warn("POST /hotels/{id}/blocks - Lot not found: hotel_id=%d, lot=%v", hotelID, req.ParkingLotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, blocks.ErrInvalidInput):
			h.logger.Warn("POST /hotels/{id}/blocks - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /hotels/{id}/blocks - Failed to create block: hotel_id=%d, error=%v", hotelID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /hotels/{id}/blocks - Block created: block_id=%d, hotel_id=%d, user_id=%d, warnings=%d",
		result.Block.ID, hotelID, userID, len(result.Warnings))
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResult(result))
}
