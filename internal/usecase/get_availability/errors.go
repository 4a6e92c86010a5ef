package get_availability

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrHotelNotFound возвращается, когда отель не найден
	ErrHotelNotFound = fmt.Errorf("get_availability: hotel %w", domain.ErrNotFound)

	// ErrCategoryNotFound возвращается, когда категория транспорта не найдена
	ErrCategoryNotFound = fmt.Errorf("get_availability: vehicle category %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_availability: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("get_availability: %w", domain.ErrPersistence)
)
