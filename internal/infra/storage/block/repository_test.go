package block

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOverlappingQuery_InclusiveBounds(t *testing.T) {
	start := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	query, args, err := listOverlappingQuery(7, start, end).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, hotel_id, parking_lot_id, spot_size, start_date, end_date, number_of_spots, comment, created_at "+
			"FROM parking_blocks WHERE hotel_id = $1 AND start_date <= $2 AND end_date >= $3 "+
			"ORDER BY start_date ASC, id ASC",
		query)
	require.Len(t, args, 3)
	assert.Equal(t, int64(7), args[0])
	assert.Equal(t, end, args[1])
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), args[2])
}
