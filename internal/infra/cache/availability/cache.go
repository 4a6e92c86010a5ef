// Package availability кэширует сводки доступности в Redis.
//
// Ключи версионируются по отелю: любая запись (бронь, отмена, блокировка) увеличивает
// версию отеля, и все старые ключи перестают читаться, истекая по TTL.
package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const keyPrefix = "parking:availability"

// Cache кэш сводок доступности. Nil-значение (или nil-клиент) - пустой кэш без ошибок.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кэш поверх клиента Redis
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

type entry struct {
	HotelID           int64      `json:"hotel_id"`
	VehicleCategoryID int64      `json:"vehicle_category_id"`
	Days              []dayEntry `json:"days"`
}

type dayEntry struct {
	Date     string `json:"date"`
	Total    int    `json:"total"`
	Reserved int    `json:"reserved"`
	Blocked  int    `json:"blocked"`
}

// Get возвращает сводку из кэша и версию отеля, под которой её искали.
// Версию нужно передать в Set: тогда результат, посчитанный до Invalidate,
// ляжет под старую версию и не будет прочитан. ok=false при промахе.
func (c *Cache) Get(ctx context.Context, hotelID, categoryID int64, dates domain.DateRange) (*domain.AvailabilitySummary, int64, bool, error) {
	if c == nil || c.client == nil {
		return nil, 0, false, nil
	}

	version, err := c.version(ctx, hotelID)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.client.Get(ctx, summaryKey(hotelID, version, categoryID, dates)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, version, false, fmt.Errorf("%w: Get - get summary: %w", ErrCacheRead, err)
	}

	summary, err := decode(raw)
	if err != nil {
		return nil, version, false, err
	}

	return summary, version, true, nil
}

// Set сохраняет сводку под версией, полученной из Get до расчета
func (c *Cache) Set(ctx context.Context, version int64, dates domain.DateRange, summary *domain.AvailabilitySummary) error {
	if c == nil || c.client == nil || summary == nil {
		return nil
	}

	raw, err := encode(summary)
	if err != nil {
		return fmt.Errorf("%w: Set - encode summary: %w", ErrCacheWrite, err)
	}

	key := summaryKey(summary.HotelID, version, summary.VehicleCategoryID, dates)
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - set summary: %w", ErrCacheWrite, err)
	}

	return nil
}

// Invalidate сбрасывает все сводки отеля увеличением версии
func (c *Cache) Invalidate(ctx context.Context, hotelID int64) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Incr(ctx, versionKey(hotelID)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - incr version: %w", ErrCacheWrite, err)
	}

	return nil
}

func (c *Cache) version(ctx context.Context, hotelID int64) (int64, error) {
	version, err := c.client.Get(ctx, versionKey(hotelID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: version - get version: %w", ErrCacheRead, err)
	}
	return version, nil
}

func versionKey(hotelID int64) string {
	return fmt.Sprintf("%s:v:%d", keyPrefix, hotelID)
}

func summaryKey(hotelID, version, categoryID int64, dates domain.DateRange) string {
	return fmt.Sprintf("%s:%d:%d:%d:%s:%s",
		keyPrefix, hotelID, version, categoryID, domain.DateKey(dates.Start), domain.DateKey(dates.End))
}

func encode(summary *domain.AvailabilitySummary) ([]byte, error) {
	e := entry{
		HotelID:           summary.HotelID,
		VehicleCategoryID: summary.VehicleCategoryID,
		Days:              make([]dayEntry, len(summary.Days)),
	}
	for i, d := range summary.Days {
		e.Days[i] = dayEntry{
			Date:     domain.DateKey(d.Date),
			Total:    d.Total,
			Reserved: d.Reserved,
			Blocked:  d.Blocked,
		}
	}
	return json.Marshal(e)
}

// decode пересчитывает available и min/max, а не хранит их
func decode(raw []byte) (*domain.AvailabilitySummary, error) {
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	days := make([]domain.DateAvailability, len(e.Days))
	for i, d := range e.Days {
		date, err := domain.ParseDate(d.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		days[i] = domain.NewDateAvailability(date, d.Total, d.Reserved, d.Blocked)
	}

	return domain.NewAvailabilitySummary(e.HotelID, e.VehicleCategoryID, days), nil
}
