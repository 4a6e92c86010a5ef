package ledger

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrHotelNotFound возвращается, когда отель не найден
	ErrHotelNotFound = fmt.Errorf("ledger: hotel %w", domain.ErrNotFound)

	// ErrCategoryNotFound возвращается, когда категория транспорта не найдена
	ErrCategoryNotFound = fmt.Errorf("ledger: vehicle category %w", domain.ErrNotFound)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("ledger: %w", domain.ErrPersistence)
)
