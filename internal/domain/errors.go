package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error kinds. Package-level sentinels wrap one of them so callers can
// classify any error with errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation error")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrPersistence          = errors.New("persistence error")
)

// CapacityError carries the offending dates and numbers of a capacity shortage
type CapacityError struct {
	Dates     []time.Time // first element is the first date that could not be served
	Available int
	Requested int
}

func (e *CapacityError) Error() string {
	if len(e.Dates) == 0 {
		return fmt.Sprintf("%s: requested %d", ErrInsufficientCapacity, e.Requested)
	}
	keys := make([]string, len(e.Dates))
	for i, d := range e.Dates {
		keys[i] = DateKey(d)
	}
	return fmt.Sprintf("%s: only %d spots available on %s (requested %d, unresolved dates: %s)",
		ErrInsufficientCapacity, e.Available, keys[0], e.Requested, strings.Join(keys, ","))
}

// Is makes errors.Is(err, ErrInsufficientCapacity) true
func (e *CapacityError) Is(target error) bool {
	return target == ErrInsufficientCapacity
}

// Date first offending date
func (e *CapacityError) Date() time.Time {
	if len(e.Dates) == 0 {
		return time.Time{}
	}
	return e.Dates[0]
}

// AsCapacityError extracts capacity details from an error chain
func AsCapacityError(err error) (*CapacityError, bool) {
	var ce *CapacityError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
