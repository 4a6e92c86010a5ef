package domain

import "time"

// DateAvailability capacity accounting for one date
type DateAvailability struct {
	Date      time.Time
	Total     int
	Reserved  int
	Blocked   int
	Available int
}

// NewDateAvailability computes available = max(0, total - reserved - blocked)
func NewDateAvailability(date time.Time, total, reserved, blocked int) DateAvailability {
	available := total - reserved - blocked
	if available < 0 {
		available = 0
	}
	return DateAvailability{
		Date:      date,
		Total:     total,
		Reserved:  reserved,
		Blocked:   blocked,
		Available: available,
	}
}

// AvailabilitySummary per-date availability with min/max over the range
type AvailabilitySummary struct {
	HotelID           int64
	VehicleCategoryID int64
	Days              []DateAvailability
	MinAvailable      int
	MaxAvailable      int
}

// NewAvailabilitySummary builds the summary; min/max are 0 for an empty range
func NewAvailabilitySummary(hotelID, categoryID int64, days []DateAvailability) *AvailabilitySummary {
	s := &AvailabilitySummary{
		HotelID:           hotelID,
		VehicleCategoryID: categoryID,
		Days:              days,
	}
	for i, d := range days {
		if i == 0 || d.Available < s.MinAvailable {
			s.MinAvailable = d.Available
		}
		if i == 0 || d.Available > s.MaxAvailable {
			s.MaxAvailable = d.Available
		}
	}
	return s
}

// FirstShortage returns the first date whose availability is below requested
func (s *AvailabilitySummary) FirstShortage(requested int) (DateAvailability, bool) {
	for _, d := range s.Days {
		if d.Available < requested {
			return d, true
		}
	}
	return DateAvailability{}, false
}
