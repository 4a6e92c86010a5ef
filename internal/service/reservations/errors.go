package reservations

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда у бронирования нет активных записей парковки
	ErrReservationNotFound = fmt.Errorf("reservations: parking reservation %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reservations: %w", domain.ErrValidation)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("reservations: %w", domain.ErrPersistence)
)
