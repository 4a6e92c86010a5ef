package planner

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidRequest возвращается при некорректном запросе планирования
	ErrInvalidRequest = fmt.Errorf("planner: %w", domain.ErrValidation)
)
