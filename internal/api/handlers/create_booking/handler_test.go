package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func newRequest(body string, principal *domain.Principal) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if principal != nil {
		r = r.WithContext(middleware.WithPrincipal(r.Context(), *principal))
	}
	return r
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{Booking: &domain.BookingDetails{
		Booking: domain.Booking{
			ID:         12,
			CarID:      3,
			SpotNumber: 7,
			TariffID:   1,
			Status:     domain.StatusActive,
			StartTime:  start,
			EndTime:    start.Add(24 * time.Hour),
		},
		LicensePlate: "A123BC",
	}}}
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))
	principal := domain.Principal{UserID: 5, Email: "driver@example.com"}

	w := httptest.NewRecorder()
	h.Handle(w, newRequest(`{"carId":3,"spotNumber":7,"tariffId":1}`, &principal))

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, principal, uc.got.Principal)
	assert.Equal(t, int64(7), uc.got.SpotNumber)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(12), body["id"])
	assert.Equal(t, "active", body["status"])
	assert.Equal(t, "2024-03-02T10:00:00Z", body["endTime"])
	assert.Equal(t, false, body["isPaid"])
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid input", createBooking.ErrInvalidInput, http.StatusBadRequest, msgInvalidInput},
		{"car not found", createBooking.ErrCarNotFound, http.StatusNotFound, msgCarNotFound},
		{"spot not found", createBooking.ErrSpotNotFound, http.StatusNotFound, msgSpotNotFound},
		{"tariff not found", createBooking.ErrTariffNotFound, http.StatusNotFound, msgTariffNotFound},
		{"tariff not bookable", createBooking.ErrTariffNotBookable, http.StatusBadRequest, msgTariffNotBookable},
		{"foreign car", createBooking.ErrNotCarOwner, http.StatusForbidden, msgNotCarOwner},
		{"car already booked", createBooking.ErrCarAlreadyBooked, http.StatusConflict, msgCarAlreadyBooked},
		{"spot taken", createBooking.ErrSpotNotAvailable, http.StatusConflict, msgSpotNotAvailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, ""},
	}

	principal := domain.Principal{UserID: 5}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, logger.NewWithWriter(io.Discard, "error"))

			w := httptest.NewRecorder()
			h.Handle(w, newRequest(`{"carId":3,"spotNumber":7,"tariffId":1}`, &principal))

			assert.Equal(t, tt.wantStatus, w.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body.Message)
			}
		})
	}
}

func TestHandle_RejectsBeforeUseCase(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))

	w := httptest.NewRecorder()
	h.Handle(w, newRequest(`{"carId":3}`, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	h.Handle(w, newRequest(`{"carId":`, &domain.Principal{UserID: 5}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Nil(t, uc.got)
}
