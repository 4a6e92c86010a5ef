package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

func TestPublisher_NilIsNoop(t *testing.T) {
	var p *Publisher

	assert.NoError(t, p.Publish(context.Background(), RoutingBlockCreated, BlockChanged{BlockID: 1}))
	assert.NoError(t, p.Close())
}

func TestMarshalEvent(t *testing.T) {
	body, err := marshalEvent(BlockChanged{
		BlockID:       3,
		HotelID:       1,
		SpotSize:      ptr.Ptr(2),
		StartDate:     "2024-01-01",
		EndDate:       "2024-01-02",
		NumberOfSpots: 2,
	})
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"block_id":3,"hotel_id":1,"spot_size":2,"start_date":"2024-01-01","end_date":"2024-01-02","number_of_spots":2}`,
		string(body))
}

func TestMarshalEvent_Unsupported(t *testing.T) {
	_, err := marshalEvent(make(chan int))
	assert.ErrorIs(t, err, ErrMarshal)
}
