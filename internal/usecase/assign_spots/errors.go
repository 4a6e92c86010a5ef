package assign_spots

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrHotelNotFound возвращается, когда отель не найден
	ErrHotelNotFound = fmt.Errorf("assign_spots: hotel %w", domain.ErrNotFound)

	// ErrCategoryNotFound возвращается, когда категория транспорта не найдена
	ErrCategoryNotFound = fmt.Errorf("assign_spots: vehicle category %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("assign_spots: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("assign_spots: %w", domain.ErrPersistence)
)
