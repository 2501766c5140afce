package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError_Body(t *testing.T) {
	w := httptest.NewRecorder()
	RespondConflict(w, "место занято")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: http.StatusConflict, Message: "место занято"}, body)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		CarID int64 `json:"carId"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"carId": 5}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, int64(5), dst.CarID)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"unknown": 1}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.ErrorIs(t, DecodeJSON(r, &dst), ErrEmptyBody)
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42"})
	id, err := PathInt64(r, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "0"})
	_, err = PathInt64(r, "id")
	assert.Error(t, err)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "abc"})
	_, err = PathInt64(r, "id")
	assert.Error(t, err)
}

func TestQueryHelpers(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?paid=true&page=2&tariffId=7", nil)

	paid, err := QueryBool(r, "paid")
	require.NoError(t, err)
	require.NotNil(t, paid)
	assert.True(t, *paid)

	active, err := QueryBool(r, "active")
	require.NoError(t, err)
	assert.Nil(t, active)

	page, err := QueryInt(r, "page")
	require.NoError(t, err)
	assert.Equal(t, 2, page)

	tariffID, err := QueryInt64(r, "tariffId")
	require.NoError(t, err)
	assert.Equal(t, int64(7), *tariffID)

	r = httptest.NewRequest(http.MethodGet, "/?paid=maybe", nil)
	_, err = QueryBool(r, "paid")
	assert.Error(t, err)
}
