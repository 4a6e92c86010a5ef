package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

func TestCapacityMessage(t *testing.T) {
	err := &domain.CapacityError{
		Dates:     []time.Time{time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		Available: 1,
		Requested: 2,
	}

	assert.Equal(t, "only 1 spots available on 2024-01-02", CapacityMessage(err))
	assert.Equal(t, domain.ErrInsufficientCapacity.Error(), CapacityMessage(errors.New("other")))
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var v struct {
		Spots int `json:"spots"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"spots":2}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, 2, v.Spots)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"spots":2,"extra":true}`))
	assert.Error(t, DecodeJSON(r, &v))
}

func TestPathID(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"hotelId": "7", "bad": "-1"})

	id, err := PathID(r, "hotelId")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = PathID(r, "bad")
	assert.Error(t, err)

	_, err = PathID(r, "missing")
	assert.Error(t, err)
}

func TestRespondWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWriteError(w, fmt.Errorf("reserve: %w", txmanager.ErrSerialization))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	RespondWriteError(w, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"внутренняя ошибка сервера"}`, w.Body.String())
}
