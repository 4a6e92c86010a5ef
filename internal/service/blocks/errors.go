package blocks

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrBlockNotFound возвращается, когда блокировка не найдена
	ErrBlockNotFound = fmt.Errorf("blocks: parking block %w", domain.ErrNotFound)

	// ErrHotelNotFound возвращается, когда отель не найден
	ErrHotelNotFound = fmt.Errorf("blocks: hotel %w", domain.ErrNotFound)

	// ErrLotNotFound возвращается, когда парковка не найдена или принадлежит другому отелю
	ErrLotNotFound = fmt.Errorf("blocks: parking lot %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных параметрах блокировки
	ErrInvalidInput = fmt.Errorf("blocks: %w", domain.ErrValidation)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("blocks: %w", domain.ErrPersistence)
)
