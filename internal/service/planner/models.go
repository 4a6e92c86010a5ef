package planner

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request входные данные планирования. Набор заполняемых полей зависит от Mode.
type Request struct {
	Mode  domain.AssignmentMode
	Dates []time.Time // ночи брони
	Count int         // сколько мест нужно на каждую ночь

	// ModePooled
	PoolSpotID   int64
	Availability *domain.AvailabilitySummary

	// ModePhysical
	Candidates   []*domain.ParkingSpot
	Occupied     map[string]map[int64]struct{} // DateKey -> занятые места
	Blocks       *domain.BlockOverlay
	PoolReserved map[string]int // брони пула по DateKey, занимают емкость отеля
}

// Assignment место на одну ночь
type Assignment struct {
	Date   time.Time
	SpotID int64
}

// Unit назначения одной единицы брони, отсортированы по дате
type Unit struct {
	Assignments []Assignment
}

// SpotIDs различные места единицы в порядке первого использования
func (u Unit) SpotIDs() []int64 {
	seen := make(map[int64]struct{}, len(u.Assignments))
	ids := make([]int64, 0, len(u.Assignments))
	for _, a := range u.Assignments {
		if _, ok := seen[a.SpotID]; ok {
			continue
		}
		seen[a.SpotID] = struct{}{}
		ids = append(ids, a.SpotID)
	}
	return ids
}

// Plan результат планирования
type Plan struct {
	Mode  domain.AssignmentMode
	Dates []time.Time
	Units []Unit
}

// Size общее количество посуточных записей
func (p *Plan) Size() int {
	n := 0
	for _, u := range p.Units {
		n += len(u.Assignments)
	}
	return n
}

// SpotsByDate места по датам (DateKey -> ID мест в порядке единиц)
func (p *Plan) SpotsByDate() map[string][]int64 {
	result := make(map[string][]int64, len(p.Dates))
	for _, u := range p.Units {
		for _, a := range u.Assignments {
			key := domain.DateKey(a.Date)
			result[key] = append(result[key], a.SpotID)
		}
	}
	return result
}

// Records строит начисления и посуточные записи плана: addons[i] соответствует nights[i].
// ReservationAddonID записей заполняется после сохранения начислений.
func (p *Plan) Records(hotelID, reservationDetailsID, categoryID int64, billing domain.Billing) ([]*domain.ReservationAddon, []*domain.ReservationNight) {
	size := p.Size()
	addons := make([]*domain.ReservationAddon, 0, size)
	nights := make([]*domain.ReservationNight, 0, size)

	for _, u := range p.Units {
		for _, a := range u.Assignments {
			addons = append(addons, &domain.ReservationAddon{
				HotelID:              hotelID,
				ReservationDetailsID: reservationDetailsID,
				AddonID:              billing.AddonID,
				HotelAddonID:         billing.HotelAddonID,
				Date:                 a.Date,
				Quantity:             1,
				UnitPrice:            billing.UnitPrice,
			})
			nights = append(nights, &domain.ReservationNight{
				HotelID:              hotelID,
				ReservationDetailsID: reservationDetailsID,
				ParkingSpotID:        a.SpotID,
				VehicleCategoryID:    categoryID,
				Date:                 a.Date,
				Status:               domain.StatusConfirmed,
			})
		}
	}

	return addons, nights
}
