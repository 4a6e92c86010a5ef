package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations"
)

const (
	msgInvalidHotelID       = "некорректный ID отеля"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgNotFound             = "активные записи парковки для бронирования не найдены"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/hotels/{hotelId}/reservations/{reservationDetailsId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathID(r, "hotelId")
	if err != nil {
		h.logger.Warn("PATCH /hotels/{id}/reservations/{id}/cancel - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}

	reservationID, err := handlers.PathID(r, "reservationDetailsId")
	if err != nil {
		h.logger.Warn("PATCH /hotels/{id}/reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.service.Cancel(r.Context(), hotelID, reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /hotels/{id}/reservations/{id}/cancel - Not found: hotel_id=%d, reservation=%d",
				hotelID, reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /hotels/{id}/reservations/{id}/cancel - Failed to cancel: hotel_id=%d, reservation=%d, error=%v",
				hotelID, reservationID, err)
			handlers.RespondWriteError(w, err)
		}
		return
	}

	userID, _ := middleware.GetUserID(r.Context())
	h.logger.Info("PATCH /hotels/{id}/reservations/{id}/cancel - Cancelled %d nights: hotel_id=%d, reservation=%d, user_id=%d",
		result.CancelledNights, hotelID, reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
