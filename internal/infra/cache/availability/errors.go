package availability

import "errors"

var (
	// ErrCacheRead ошибка чтения из кэша
	ErrCacheRead = errors.New("availability.cache: failed to read")

	// ErrCacheWrite ошибка записи в кэш
	ErrCacheWrite = errors.New("availability.cache: failed to write")

	// ErrDecode ошибка декодирования закэшированного значения
	ErrDecode = errors.New("availability.cache: failed to decode entry")
)
