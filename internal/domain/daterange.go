package domain

import (
	"fmt"
	"time"
)

// DateRange calendar date range. Whether End is inclusive depends on the caller:
// stays and availability use [Start, End), blocks use [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDate parses YYYY-MM-DD into a UTC midnight
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, s)
	}
	return t, nil
}

// ParseDateRange parses both ends
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{Start: s, End: e}, nil
}

// NewDateRange normalizes both ends to UTC midnight
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: TruncateDate(start), End: TruncateDate(end)}
}

// Nights dates in [Start, End)
func (r DateRange) Nights() []time.Time {
	return datesBetween(TruncateDate(r.Start), TruncateDate(r.End))
}

// Days dates in [Start, End]
func (r DateRange) Days() []time.Time {
	return datesBetween(TruncateDate(r.Start), TruncateDate(r.End).AddDate(0, 0, 1))
}

// LastNight last date of an end-exclusive range
func (r DateRange) LastNight() time.Time {
	return TruncateDate(r.End).AddDate(0, 0, -1)
}

// ValidateNights requires Start < End
func (r DateRange) ValidateNights() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrValidation)
	}
	if !TruncateDate(r.Start).Before(TruncateDate(r.End)) {
		return fmt.Errorf("%w: start date %s must be before end date %s",
			ErrValidation, DateKey(r.Start), DateKey(r.End))
	}
	return nil
}

// ValidateInclusive requires Start <= End
func (r DateRange) ValidateInclusive() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrValidation)
	}
	if TruncateDate(r.Start).After(TruncateDate(r.End)) {
		return fmt.Errorf("%w: start date %s is after end date %s",
			ErrValidation, DateKey(r.Start), DateKey(r.End))
	}
	return nil
}

// TruncateDate drops the time of day, keeping the calendar date in UTC
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey map key for a calendar date
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

func datesBetween(start, endExclusive time.Time) []time.Time {
	dates := make([]time.Time, 0)
	for d := start; d.Before(endExclusive); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
