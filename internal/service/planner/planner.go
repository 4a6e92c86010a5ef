// Package planner подбирает места для многосуточной брони.
//
// Один алгоритм обслуживает оба режима: ModePooled проверяет агрегированную емкость
// и ставит все единицы на синтетическое место пула, ModePhysical жадно подбирает
// физические места, стараясь держать единицу брони на одном месте все ночи.
// Это эвристика, а не глобальный оптимум.
package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Planner планировщик мест
type Planner struct {
	logger Logger
}

// New создает планировщик
func New(logger Logger) *Planner {
	return &Planner{logger: logger}
}

// Plan подбирает места на каждую ночь для req.Count единиц.
// При нехватке возвращает *domain.CapacityError (errors.Is ErrInsufficientCapacity).
func (p *Planner) Plan(req Request) (*Plan, error) {
	if req.Count <= 0 {
		return nil, fmt.Errorf("%w: spot count must be positive, got %d", ErrInvalidRequest, req.Count)
	}
	if len(req.Dates) == 0 {
		return nil, fmt.Errorf("%w: no nights to plan", ErrInvalidRequest)
	}

	dates := normalizeDates(req.Dates)

	switch req.Mode {
	case domain.ModePooled:
		return p.planPooled(req, dates)
	case domain.ModePhysical:
		return p.planPhysical(req, dates)
	default:
		return nil, fmt.Errorf("%w: unknown assignment mode %q", ErrInvalidRequest, req.Mode)
	}
}

// planPooled: достаточно available >= Count на каждую ночь
func (p *Planner) planPooled(req Request, dates []time.Time) (*Plan, error) {
	if req.Availability == nil || req.PoolSpotID == 0 {
		return nil, fmt.Errorf("%w: pooled plan needs availability and a pool spot", ErrInvalidRequest)
	}

	available := make(map[string]int, len(req.Availability.Days))
	for _, d := range req.Availability.Days {
		available[domain.DateKey(d.Date)] = d.Available
	}

	var short []time.Time
	firstShortAvailable := 0
	for _, d := range dates {
		a, ok := available[domain.DateKey(d)]
		if ok && a >= req.Count {
			continue
		}
		if len(short) == 0 {
			firstShortAvailable = a
		}
		short = append(short, d)
	}
	if len(short) > 0 {
		p.logger.Info("Plan: pooled shortage on %s: available=%d, requested=%d",
			domain.DateKey(short[0]), firstShortAvailable, req.Count)
		return nil, &domain.CapacityError{Dates: short, Available: firstShortAvailable, Requested: req.Count}
	}

	plan := &Plan{Mode: domain.ModePooled, Dates: dates, Units: make([]Unit, req.Count)}
	for i := range plan.Units {
		assignments := make([]Assignment, len(dates))
		for j, d := range dates {
			assignments[j] = Assignment{Date: d, SpotID: req.PoolSpotID}
		}
		plan.Units[i] = Unit{Assignments: assignments}
	}

	return plan, nil
}

// planPhysical жадный подбор по единицам:
// для каждой единицы, пока есть непокрытые ночи, берется место, свободное
// в наибольшем числе оставшихся ночей. Сначала среди мест, не занятых прошлыми
// единицами; если таких нет, место прошлой единицы добирает ночи, где оно свободно.
// Каждое взятие уменьшает емкость ночи ровно на 1, поэтому при емкости >= Count
// на каждую ночь подбор всегда завершается.
func (p *Planner) planPhysical(req Request, dates []time.Time) (*Plan, error) {
	st := newOccupancy(req, dates)

	// 1. Емкость по ночам до подбора
	var short []time.Time
	firstShortAvailable := 0
	for _, d := range dates {
		capacity := st.capacityOn(d)
		if capacity >= req.Count {
			continue
		}
		if len(short) == 0 {
			firstShortAvailable = capacity
		}
		short = append(short, d)
	}
	if len(short) > 0 {
		p.logger.Info("Plan: physical shortage on %s: available=%d, requested=%d",
			domain.DateKey(short[0]), firstShortAvailable, req.Count)
		return nil, &domain.CapacityError{Dates: short, Available: firstShortAvailable, Requested: req.Count}
	}

	// 2. Подбор по единицам
	used := make(map[int64]struct{})
	plan := &Plan{Mode: domain.ModePhysical, Dates: dates, Units: make([]Unit, 0, req.Count)}

	for unit := 0; unit < req.Count; unit++ {
		remaining := dates
		byDate := make(map[string]int64, len(dates))

		for len(remaining) > 0 {
			best, bestFree := st.bestSpot(remaining, used)
			if best == nil {
				best, bestFree = st.bestSpot(remaining, nil)
			}
			if best == nil {
				return nil, &domain.CapacityError{
					Dates:     remaining,
					Available: newOccupancy(req, dates).capacityOn(remaining[0]),
					Requested: req.Count,
				}
			}

			for _, d := range bestFree {
				st.claim(best, d)
				byDate[domain.DateKey(d)] = best.ID
			}
			used[best.ID] = struct{}{}
			remaining = subtract(remaining, bestFree)
		}

		assignments := make([]Assignment, len(dates))
		for i, d := range dates {
			assignments[i] = Assignment{Date: d, SpotID: byDate[domain.DateKey(d)]}
		}
		plan.Units = append(plan.Units, Unit{Assignments: assignments})
	}

	return plan, nil
}

// occupancy состояние занятости во время планирования
type occupancy struct {
	candidates []*domain.ParkingSpot
	occupied   map[string]map[int64]struct{}
	claimed    map[string]map[int64]struct{}
	blocks     *domain.BlockOverlay

	lotCapacity   map[int64]int
	hotelCapacity int
	lotUsed       map[int64]map[string]int
	hotelUsed     map[string]int
}

func newOccupancy(req Request, dates []time.Time) *occupancy {
	candidates := make([]*domain.ParkingSpot, len(req.Candidates))
	copy(candidates, req.Candidates)
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.ParkingLotID != b.ParkingLotID {
			return a.ParkingLotID < b.ParkingLotID
		}
		if a.SpotNumber != b.SpotNumber {
			return a.SpotNumber < b.SpotNumber
		}
		return a.ID < b.ID
	})

	st := &occupancy{
		candidates:    candidates,
		occupied:      req.Occupied,
		claimed:       make(map[string]map[int64]struct{}, len(dates)),
		blocks:        req.Blocks,
		lotCapacity:   make(map[int64]int),
		hotelCapacity: len(candidates),
		lotUsed:       make(map[int64]map[string]int),
		hotelUsed:     make(map[string]int, len(dates)),
	}
	if st.occupied == nil {
		st.occupied = make(map[string]map[int64]struct{})
	}

	lotOf := make(map[int64]int64, len(candidates))
	for _, spot := range candidates {
		lotOf[spot.ID] = spot.ParkingLotID
		st.lotCapacity[spot.ParkingLotID]++
		if st.lotUsed[spot.ParkingLotID] == nil {
			st.lotUsed[spot.ParkingLotID] = make(map[string]int, len(dates))
		}
	}

	for _, d := range dates {
		key := domain.DateKey(d)
		st.hotelUsed[key] = req.PoolReserved[key]
		for spotID := range st.occupied[key] {
			lotID, ok := lotOf[spotID]
			if !ok {
				continue
			}
			st.lotUsed[lotID][key]++
			st.hotelUsed[key]++
		}
	}

	return st
}

// isFree место свободно в ночь date: не занято, не взято этим планом,
// и ни парковка, ни отель не исчерпали емкость с учетом блокировок
func (o *occupancy) isFree(spot *domain.ParkingSpot, date time.Time) bool {
	key := domain.DateKey(date)
	if _, ok := o.occupied[key][spot.ID]; ok {
		return false
	}
	if _, ok := o.claimed[key][spot.ID]; ok {
		return false
	}
	lot := spot.ParkingLotID
	if o.lotUsed[lot][key]+o.blocks.LotOn(lot, date) >= o.lotCapacity[lot] {
		return false
	}
	return o.hotelUsed[key]+o.blocks.TotalOn(date) < o.hotelCapacity
}

func (o *occupancy) freeDates(spot *domain.ParkingSpot, dates []time.Time) []time.Time {
	var free []time.Time
	for _, d := range dates {
		if o.isFree(spot, d) {
			free = append(free, d)
		}
	}
	return free
}

// bestSpot место, свободное в наибольшем числе ночей dates; места из skip не рассматриваются
func (o *occupancy) bestSpot(dates []time.Time, skip map[int64]struct{}) (*domain.ParkingSpot, []time.Time) {
	var best *domain.ParkingSpot
	var bestFree []time.Time
	for _, spot := range o.candidates {
		if _, ok := skip[spot.ID]; ok {
			continue
		}
		free := o.freeDates(spot, dates)
		if len(free) > len(bestFree) {
			best, bestFree = spot, free
		}
	}
	return best, bestFree
}

// capacityOn сколько мест еще можно взять в ночь date:
// остаток отеля, но не больше суммы остатков парковок
func (o *occupancy) capacityOn(date time.Time) int {
	key := domain.DateKey(date)
	lotsLeft := 0
	for lot, capacity := range o.lotCapacity {
		if left := capacity - o.lotUsed[lot][key] - o.blocks.LotOn(lot, date); left > 0 {
			lotsLeft += left
		}
	}
	hotelLeft := o.hotelCapacity - o.hotelUsed[key] - o.blocks.TotalOn(date)
	return max(0, min(hotelLeft, lotsLeft))
}

func (o *occupancy) claim(spot *domain.ParkingSpot, date time.Time) {
	key := domain.DateKey(date)
	if o.claimed[key] == nil {
		o.claimed[key] = make(map[int64]struct{})
	}
	o.claimed[key][spot.ID] = struct{}{}
	o.lotUsed[spot.ParkingLotID][key]++
	o.hotelUsed[key]++
}

func normalizeDates(dates []time.Time) []time.Time {
	seen := make(map[string]struct{}, len(dates))
	result := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		d = domain.TruncateDate(d)
		key := domain.DateKey(d)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Before(result[j]) })
	return result
}

func subtract(dates, taken []time.Time) []time.Time {
	drop := make(map[string]struct{}, len(taken))
	for _, d := range taken {
		drop[domain.DateKey(d)] = struct{}{}
	}
	result := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if _, ok := drop[domain.DateKey(d)]; !ok {
			result = append(result, d)
		}
	}
	return result
}
