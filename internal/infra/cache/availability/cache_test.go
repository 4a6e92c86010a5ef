package availability

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestCache_NilIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()
	dates := domain.NewDateRange(day(1), day(3))

	summary, _, ok, err := c.Get(ctx, 1, 2, dates)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, summary)

	assert.NoError(t, c.Set(ctx, 0, dates, &domain.AvailabilitySummary{}))
	assert.NoError(t, c.Invalidate(ctx, 1))

	withoutClient := New(nil, 0)
	_, _, ok, err = withoutClient.Get(ctx, 1, 2, dates)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeys(t *testing.T) {
	dates := domain.NewDateRange(day(1), day(3))

	assert.Equal(t, "parking:availability:v:7", versionKey(7))
	assert.Equal(t, "parking:availability:7:3:2:2024-01-01:2024-01-03", summaryKey(7, 3, 2, dates))
	assert.NotEqual(t, summaryKey(7, 3, 2, dates), summaryKey(7, 4, 2, dates))
}

func TestEncodeDecode_RecomputesAvailable(t *testing.T) {
	summary := domain.NewAvailabilitySummary(1, 2, []domain.DateAvailability{
		domain.NewDateAvailability(day(1), 3, 0, 2),
		domain.NewDateAvailability(day(2), 3, 1, 0),
	})

	raw, err := encode(summary)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "available")

	decoded, err := decode(raw)
	require.NoError(t, err)
	assert.Equal(t, summary, decoded)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := decode([]byte("{not json"))
	assert.ErrorIs(t, err, ErrDecode)
}

func newRedisCache(t *testing.T) *Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute)
}

func TestCache_SetThenGet(t *testing.T) {
	c := newRedisCache(t)
	ctx := context.Background()
	dates := domain.NewDateRange(day(1), day(3))
	fresh := domain.NewAvailabilitySummary(1, 2, []domain.DateAvailability{
		domain.NewDateAvailability(day(1), 3, 1, 0),
		domain.NewDateAvailability(day(2), 3, 0, 0),
	})

	_, version, ok, err := c.Get(ctx, 1, 2, dates)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, version, dates, fresh))

	cached, _, ok, err := c.Get(ctx, 1, 2, dates)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, fresh, cached)
}

// Сводка, посчитанная до Invalidate, не должна читаться после него
func TestCache_LateSetAfterInvalidateIsNotServed(t *testing.T) {
	c := newRedisCache(t)
	ctx := context.Background()
	dates := domain.NewDateRange(day(1), day(2))
	stale := domain.NewAvailabilitySummary(1, 2, []domain.DateAvailability{
		domain.NewDateAvailability(day(1), 5, 0, 2),
	})

	_, version, ok, err := c.Get(ctx, 1, 2, dates)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Invalidate(ctx, 1))
	require.NoError(t, c.Set(ctx, version, dates, stale))

	_, newVersion, ok, err := c.Get(ctx, 1, 2, dates)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, version+1, newVersion)
}

func TestCache_InvalidateIsPerHotel(t *testing.T) {
	c := newRedisCache(t)
	ctx := context.Background()
	dates := domain.NewDateRange(day(1), day(2))
	other := domain.NewAvailabilitySummary(2, 2, []domain.DateAvailability{
		domain.NewDateAvailability(day(1), 4, 0, 0),
	})

	_, version, _, err := c.Get(ctx, 2, 2, dates)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, version, dates, other))
	require.NoError(t, c.Invalidate(ctx, 1))

	_, _, ok, err := c.Get(ctx, 2, 2, dates)
	require.NoError(t, err)
	assert.True(t, ok)
}
