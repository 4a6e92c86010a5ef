package reserve_capacity

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrHotelNotFound возвращается, когда отель не найден или у него нет парковок
	ErrHotelNotFound = fmt.Errorf("reserve_capacity: hotel %w", domain.ErrNotFound)

	// ErrCategoryNotFound возвращается, когда категория транспорта не найдена
	ErrCategoryNotFound = fmt.Errorf("reserve_capacity: vehicle category %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reserve_capacity: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("reserve_capacity: %w", domain.ErrPersistence)
)
