package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "name").
		From("hotels").
		Where(squirrel.Eq{"id": int64(7)}).
		Where(squirrel.Gt{"created_at": "2024-01-01"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM hotels WHERE id = $1 AND created_at > $2", query)
	assert.Equal(t, []interface{}{int64(7), "2024-01-01"}, args)
}

func TestInsert_MultipleRows(t *testing.T) {
	query, args, err := Insert("parking_blocks").
		Columns("hotel_id", "number_of_spots").
		Values(1, 2).
		Values(1, 3).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO parking_blocks (hotel_id,number_of_spots) VALUES ($1,$2),($3,$4)", query)
	assert.Len(t, args, 4)
}
