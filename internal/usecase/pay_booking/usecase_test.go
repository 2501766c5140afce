package pay_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/testutil"
	"github.com/m04kA/SMC-ParkingService/internal/testutil/memstore"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memstore.Store
	publisher *testutil.Publisher
	uc        *UseCase

	owner   domain.Principal
	tariff  domain.Tariff
	booking domain.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	store.SetNow(now)

	owner := domain.Principal{UserID: 1, Email: "owner@example.com"}
	store.AddUser(owner)
	store.AddSpot(1, domain.SpotBooked)
	tariff := store.AddTariff(domain.Tariff{Name: "Дневной", Price: decimal.NewFromInt(100), Duration: domain.DurationDaily, IsActive: true})
	car := store.AddCar(domain.Car{UserID: owner.UserID, LicensePlate: "A123BC"})

	f := &fixture{
		store:     store,
		publisher: &testutil.Publisher{},
		owner:     owner,
		tariff:    tariff,
		booking: store.AddBooking(domain.Booking{
			CarID:      car.ID,
			SpotNumber: 1,
			TariffID:   tariff.ID,
			Status:     domain.StatusActive,
			StartTime:  now.Add(-10 * time.Minute),
			EndTime:    now.Add(24*time.Hour - 10*time.Minute),
		}),
	}
	f.uc = NewUseCase(store.BookingRepo(), store.TariffRepo(), store.PaymentRepo(), store.TxManager(), f.publisher, testutil.Logger())
	return f
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{Principal: f.owner, BookingID: f.booking.ID})
	require.NoError(t, err)

	assert.Equal(t, f.booking.ID, resp.Payment.BookingID)
	assert.True(t, decimal.NewFromInt(100).Equal(resp.Payment.Amount))
	assert.Equal(t, now, resp.Payment.PaymentDate)
	require.True(t, resp.Booking.IsPaid())
	assert.Equal(t, resp.Payment.ID, resp.Booking.Payment.ID)

	assert.Equal(t, []string{"payment.created", "booking.updated"}, f.publisher.Names())
	for _, e := range f.publisher.Events() {
		require.NotNil(t, e.UserID)
		assert.Equal(t, f.owner.UserID, *e.UserID)
	}
}

func TestExecute_AmountIsPriceAtPaymentTime(t *testing.T) {
	f := newFixture(t)

	tariff := f.tariff
	tariff.Price = decimal.NewFromInt(150)
	require.NoError(t, f.store.TariffRepo().Update(context.Background(), &tariff))

	resp, err := f.uc.Execute(context.Background(), &Request{Principal: f.owner, BookingID: f.booking.ID})
	require.NoError(t, err)
	assert.Equal(t, "150.00", resp.Payment.Amount.StringFixed(2))
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		prepare  func(t *testing.T, f *fixture) *Request
		wantErr  error
		wantKind error
	}{
		{
			name: "invalid id",
			prepare: func(t *testing.T, f *fixture) *Request {
				return &Request{Principal: f.owner}
			},
			wantErr:  ErrInvalidInput,
			wantKind: domain.ErrValidation,
		},
		{
			name: "unknown booking",
			prepare: func(t *testing.T, f *fixture) *Request {
				return &Request{Principal: f.owner, BookingID: 404}
			},
			wantErr:  ErrBookingNotFound,
			wantKind: domain.ErrNotFound,
		},
		{
			name: "another user",
			prepare: func(t *testing.T, f *fixture) *Request {
				return &Request{Principal: domain.Principal{UserID: 2}, BookingID: f.booking.ID}
			},
			wantErr:  ErrAccessDenied,
			wantKind: domain.ErrForbidden,
		},
		{
			name: "staff cannot pay for somebody else",
			prepare: func(t *testing.T, f *fixture) *Request {
				return &Request{Principal: domain.Principal{UserID: 99, IsStaff: true}, BookingID: f.booking.ID}
			},
			wantErr:  ErrAccessDenied,
			wantKind: domain.ErrForbidden,
		},
		{
			name: "cancelled booking",
			prepare: func(t *testing.T, f *fixture) *Request {
				require.NoError(t, f.store.BookingRepo().UpdateStatus(context.Background(), f.booking.ID, domain.StatusCancelled))
				return &Request{Principal: f.owner, BookingID: f.booking.ID}
			},
			wantErr:  ErrBookingInactive,
			wantKind: domain.ErrConflict,
		},
		{
			name: "already paid",
			prepare: func(t *testing.T, f *fixture) *Request {
				f.store.AddPayment(f.booking.ID, f.tariff.Price)
				return &Request{Principal: f.owner, BookingID: f.booking.ID}
			},
			wantErr:  ErrAlreadyPaid,
			wantKind: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := tt.prepare(t, f)
			paymentsBefore := len(f.store.Payments())

			resp, err := f.uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.Nil(t, resp)
			assert.Len(t, f.store.Payments(), paymentsBefore)
			assert.Empty(t, f.publisher.Events())
		})
	}
}

func TestExecute_ConcurrentPayments(t *testing.T) {
	f := newFixture(t)

	const attempts = 6
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		paid     int
		rejected int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), &Request{Principal: f.owner, BookingID: f.booking.ID})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				paid++
			case errors.Is(err, ErrAlreadyPaid):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, paid)
	assert.Equal(t, attempts-1, rejected)
	assert.Len(t, f.store.Payments(), 1)
}

func TestExecute_PaymentInsertFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	f.store.FailNext("payment.Create", errors.New("disk full"))

	_, err := f.uc.Execute(context.Background(), &Request{Principal: f.owner, BookingID: f.booking.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.store.Payments())
}
