package validate_qr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/testutil"
	"github.com/m04kA/SMC-ParkingService/internal/testutil/memstore"
	validateQR "github.com/m04kA/SMC-ParkingService/internal/usecase/validate_qr"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
	"github.com/m04kA/SMC-ParkingService/pkg/qrsign"
)

type stubUseCase struct {
	raw  string
	resp *validateQR.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *validateQR.Request) (*validateQR.Response, error) {
	s.raw = req.Raw
	return s.resp, s.err
}

type noopMetrics struct{}

func (noopMetrics) IncQRAccess(bool, string) {}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/access/validate", strings.NewReader(body)))
	return w
}

func TestHandle_Granted(t *testing.T) {
	uc := &stubUseCase{resp: &validateQR.Response{
		BookingID:  12,
		SpotNumber: 7,
		EndTime:    time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
		Entry:      &domain.QRAccessLogEntry{ID: 99},
	}}
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))

	w := post(h, `{"qrData":"{\"booking_id\":\"12\"}"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"booking_id":"12"}`, uc.raw)

	var body GrantedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, GrantedResponse{
		Granted:    true,
		BookingID:  12,
		SpotNumber: 7,
		EndTime:    "2024-03-02T10:00:00Z",
		LogID:      99,
	}, body)
}

func TestHandle_Denied(t *testing.T) {
	tests := []struct {
		err    error
		reason domain.AccessFailureReason
	}{
		{validateQR.ErrInvalidFormat, domain.ReasonInvalidFormat},
		{validateQR.ErrBookingNotFound, domain.ReasonBookingNotFound},
		{validateQR.ErrBookingInactive, domain.ReasonBookingInactive},
		{validateQR.ErrBookingUnpaid, domain.ReasonBookingUnpaid},
		{validateQR.ErrInvalidSignature, domain.ReasonInvalidSignature},
		{fmt.Errorf("%w: ended at 2024-03-02T10:00:00Z", validateQR.ErrOutsideWindow), domain.ReasonExpired},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, logger.NewWithWriter(io.Discard, "error"))

			w := post(h, `{"qrData":"x"}`)
			require.Equal(t, http.StatusForbidden, w.Code)

			var body DeniedResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, http.StatusForbidden, body.Code)
			assert.Equal(t, string(tt.reason), body.Reason)
			assert.Equal(t, deniedMessages[tt.reason], body.Message)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHandle_InternalError(t *testing.T) {
	h := NewHandler(&stubUseCase{err: fmt.Errorf("%w: log insert", validateQR.ErrInternal)}, logger.NewWithWriter(io.Discard, "error"))
	assert.Equal(t, http.StatusInternalServerError, post(h, `{"qrData":"x"}`).Code)
}

func TestHandle_PassesRawBodyWithoutEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"envelope", `{"qrData":"abc"}`, "abc"},
		{"token object", `{"booking_id":"12","signature":"ff"}`, `{"booking_id":"12","signature":"ff"}`},
		{"garbage", "garbage", "garbage"},
		{"empty envelope", `{"qrData":""}`, `{"qrData":""}`},
		{"empty body", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: validateQR.ErrInvalidFormat}
			h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))

			w := post(h, tt.body)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, tt.want, uc.raw)
		})
	}
}

// Every attempt, however malformed, leaves exactly one access log entry
func TestHandle_LogsEveryAttempt(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	store := memstore.New()
	store.AddUser(domain.Principal{UserID: 1, Email: "owner@example.com"})
	store.AddSpot(7, domain.SpotBooked)
	tariff := store.AddTariff(domain.Tariff{Name: "Дневной", Price: decimal.NewFromInt(100), Duration: domain.DurationDaily, IsActive: true})
	car := store.AddCar(domain.Car{UserID: 1, LicensePlate: "A123BC"})
	booking := store.AddBooking(domain.Booking{
		CarID:      car.ID,
		SpotNumber: 7,
		TariffID:   tariff.ID,
		Status:     domain.StatusActive,
		StartTime:  start,
		EndTime:    start.Add(24 * time.Hour),
	})
	store.AddPayment(booking.ID, tariff.Price)

	signer, err := qrsign.NewSigner("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	token := signer.Issue(qrsign.Claims{BookingID: booking.ID, StartTime: start, EndTime: start.Add(24 * time.Hour)})
	envelope, err := json.Marshal(ValidateRequest{QRData: token})
	require.NoError(t, err)

	uc := validateQR.NewUseCase(
		store.BookingRepo(),
		store.AccessLogRepo(),
		signer,
		store.TxManager(),
		&testutil.Publisher{},
		noopMetrics{},
		testutil.Logger(),
	).WithTimeProvider(testutil.NewClock(start.Add(time.Hour)))
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantReason *domain.AccessFailureReason
	}{
		{"envelope", string(envelope), http.StatusOK, nil},
		{"token object as body", token, http.StatusOK, nil},
		{"garbage", "garbage", http.StatusForbidden, ptr.Ptr(domain.ReasonInvalidFormat)},
		{"empty body", "", http.StatusForbidden, ptr.Ptr(domain.ReasonInvalidFormat)},
		{"non string envelope", `{"qrData":42}`, http.StatusForbidden, ptr.Ptr(domain.ReasonInvalidFormat)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(store.AccessLogs())

			w := post(h, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			logs := store.AccessLogs()
			require.Len(t, logs, before+1)
			last := logs[len(logs)-1]
			assert.Equal(t, tt.wantReason == nil, last.AccessGranted)
			assert.Equal(t, tt.wantReason, last.FailureReason)
		})
	}
}
