package domain

import "time"

// ParkingBlock is an operator-declared capacity reduction.
// It removes NumberOfSpots from the available count; it never pins spot ids.
type ParkingBlock struct {
	ID            int64
	HotelID       int64
	ParkingLotID  *int64 // nil = all lots
	SpotSize      *int   // nil = all sizes
	StartDate     time.Time
	EndDate       time.Time // inclusive
	NumberOfSpots int
	Comment       string
	CreatedAt     time.Time
}

// CoversDate returns true if the date is within [StartDate, EndDate]
func (b *ParkingBlock) CoversDate(date time.Time) bool {
	d := TruncateDate(date)
	return !d.Before(TruncateDate(b.StartDate)) && !d.After(TruncateDate(b.EndDate))
}

// Overlaps returns true if the block intersects the inclusive range [start, end]
func (b *ParkingBlock) Overlaps(start, end time.Time) bool {
	return !TruncateDate(b.StartDate).After(TruncateDate(end)) &&
		!TruncateDate(b.EndDate).Before(TruncateDate(start))
}

// AppliesToUnits returns true if the block reduces capacity for vehicles
// requiring the given number of units
func (b *ParkingBlock) AppliesToUnits(requiredUnits int) bool {
	return b.SpotSize == nil || *b.SpotSize >= requiredUnits
}

// IsLotScoped returns true if the block is restricted to one lot
func (b *ParkingBlock) IsLotScoped() bool {
	return b.ParkingLotID != nil
}

// BlockOverlay per-date view of block reductions for one vehicle category
type BlockOverlay struct {
	total map[string]int
	hotel map[string]int
	lot   map[int64]map[string]int
}

// BuildBlockOverlay sums blocks per date. Only blocks applicable to requiredUnits count.
// Overlapping blocks of different scopes are summed, not deduplicated.
func BuildBlockOverlay(blocks []*ParkingBlock, dates []time.Time, requiredUnits int) *BlockOverlay {
	o := &BlockOverlay{
		total: make(map[string]int, len(dates)),
		hotel: make(map[string]int, len(dates)),
		lot:   make(map[int64]map[string]int),
	}

	for _, b := range blocks {
		if !b.AppliesToUnits(requiredUnits) {
			continue
		}
		for _, d := range dates {
			if !b.CoversDate(d) {
				continue
			}
			key := DateKey(d)
			o.total[key] += b.NumberOfSpots
			if b.ParkingLotID == nil {
				o.hotel[key] += b.NumberOfSpots
				continue
			}
			if o.lot[*b.ParkingLotID] == nil {
				o.lot[*b.ParkingLotID] = make(map[string]int)
			}
			o.lot[*b.ParkingLotID][key] += b.NumberOfSpots
		}
	}

	return o
}

// TotalOn all applicable blocked spots on the date
func (o *BlockOverlay) TotalOn(date time.Time) int {
	if o == nil {
		return 0
	}
	return o.total[DateKey(date)]
}

// HotelOn blocked spots on the date not scoped to a lot
func (o *BlockOverlay) HotelOn(date time.Time) int {
	if o == nil {
		return 0
	}
	return o.hotel[DateKey(date)]
}

// LotOn blocked spots on the date scoped to the lot
func (o *BlockOverlay) LotOn(lotID int64, date time.Time) int {
	if o == nil {
		return 0
	}
	return o.lot[lotID][DateKey(date)]
}
