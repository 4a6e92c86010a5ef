package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// NightResponse посуточная запись парковки
type NightResponse struct {
	ID                 int64      `json:"id"`
	Date               string     `json:"date"`
	ParkingSpotID      int64      `json:"parkingSpotId"`
	VehicleCategoryID  int64      `json:"vehicleCategoryId"`
	Status             string     `json:"status"`
	Cancelled          *time.Time `json:"cancelled,omitempty"`
	ReservationAddonID *int64     `json:"reservationAddonId,omitempty"`
}

// ReservationParkingResponse записи парковки бронирования
type ReservationParkingResponse struct {
	HotelID              int64            `json:"hotelId"`
	ReservationDetailsID int64            `json:"reservationDetailsId"`
	ActiveNights         int              `json:"activeNights"`
	Nights               []*NightResponse `json:"nights"`
}

// CancelResponse результат отмены
type CancelResponse struct {
	HotelID              int64 `json:"hotelId"`
	ReservationDetailsID int64 `json:"reservationDetailsId"`
	CancelledNights      int64 `json:"cancelledNights"`
}

// FromDomainNights конвертирует записи бронирования в response
func FromDomainNights(hotelID, reservationDetailsID int64, nights []*domain.ReservationNight) *ReservationParkingResponse {
	resp := &ReservationParkingResponse{
		HotelID:              hotelID,
		ReservationDetailsID: reservationDetailsID,
		Nights:               make([]*NightResponse, 0, len(nights)),
	}
	for _, n := range nights {
		if !n.IsCancelled() {
			resp.ActiveNights++
		}
		resp.Nights = append(resp.Nights, &NightResponse{
			ID:                 n.ID,
			Date:               domain.DateKey(n.Date),
			ParkingSpotID:      n.ParkingSpotID,
			VehicleCategoryID:  n.VehicleCategoryID,
			Status:             string(n.Status),
			Cancelled:          n.Cancelled,
			ReservationAddonID: n.ReservationAddonID,
		})
	}
	return resp
}
