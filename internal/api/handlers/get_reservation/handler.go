package get_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations"
)

const (
	msgInvalidHotelID       = "некорректный ID отеля"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgNotFound             = "записи парковки для бронирования не найдены"
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

// Handle GET /api/v1/hotels/{hotelId}/reservations/{reservationDetailsId}/parking
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hotelID, err := handlers.PathID(r, "hotelId")
	if err != nil {
		h.logger.Warn("GET /hotels/{id}/reservations/{id}/parking - Invalid hotel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHotelID)
		return
	}

	reservationID, err := handlers.PathID(r, "reservationDetailsId")
	if err != nil {
		h.logger.Warn("GET /hotels/{id}/reservations/{id}/parking - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.service.GetByReservation(r.Context(), hotelID, reservationID)
	if err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			h.logger.Warn("GET /hotels/{id}/reservations/{id}/parking - Not found: hotel_id=%d, reservation=%d",
				hotelID, reservationID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /hotels/{id}/reservations/{id}/parking - Failed to get reservation: hotel_id=%d, reservation=%d, error=%v",
			hotelID, reservationID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
