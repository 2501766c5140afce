package finish_booking

import (
	"context"
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

const grace = 20 * time.Minute

type fixture struct {
	store     *memstore.Store
	publisher *testutil.Publisher
	uc        *UseCase

	owner  domain.Principal
	tariff domain.Tariff
	car    domain.Car
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	store.SetNow(now)

	owner := domain.Principal{UserID: 1, Email: "owner@example.com"}
	store.AddUser(owner)

	f := &fixture{
		store:     store,
		publisher: &testutil.Publisher{},
		owner:     owner,
		tariff:    store.AddTariff(domain.Tariff{Name: "Дневной", Price: decimal.NewFromInt(100), Duration: domain.DurationDaily, IsActive: true}),
		car:       store.AddCar(domain.Car{UserID: owner.UserID, LicensePlate: "A123BC"}),
	}
	f.uc = NewUseCase(store.BookingRepo(), store.SpotRepo(), store.TxManager(), f.publisher, testutil.Logger())
	return f
}

// book adds a booking on spot and marks the spot booked when the booking is active
func (f *fixture) book(spot int64, status domain.BookingStatus, start, end time.Time) domain.Booking {
	spotStatus := domain.SpotAvailable
	if status == domain.StatusActive {
		spotStatus = domain.SpotBooked
	}
	f.store.AddSpot(spot, spotStatus)
	return f.store.AddBooking(domain.Booking{
		CarID:      f.car.ID,
		SpotNumber: spot,
		TariffID:   f.tariff.ID,
		Status:     status,
		StartTime:  start,
		EndTime:    end,
	})
}

func TestExecute_OwnerCancels(t *testing.T) {
	f := newFixture(t)
	b := f.book(1, domain.StatusActive, now.Add(-time.Hour), now.Add(time.Hour))

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID: b.ID,
		Status:    domain.StatusCancelled,
		Principal: &f.owner,
	})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)

	stored, _ := f.store.Booking(b.ID)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	assert.Equal(t, b.StartTime, stored.StartTime)
	assert.Equal(t, b.EndTime, stored.EndTime)

	spot, _ := f.store.Spot(1)
	assert.Equal(t, domain.SpotAvailable, spot.Status)

	assert.Equal(t, []string{"booking.updated", "spot.updated"}, f.publisher.Names())
	require.NotNil(t, f.publisher.Events()[0].UserID)
	assert.Equal(t, f.owner.UserID, *f.publisher.Events()[0].UserID)
}

func TestExecute_StaffCompletesForeignBooking(t *testing.T) {
	f := newFixture(t)
	b := f.book(1, domain.StatusActive, now.Add(-time.Hour), now.Add(time.Hour))
	staff := domain.Principal{UserID: 99, IsStaff: true}

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID: b.ID,
		Status:    domain.StatusCompleted,
		Principal: &staff,
	})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, domain.StatusCompleted, resp.Booking.Status)
}

func TestExecute_ForeignUserDenied(t *testing.T) {
	f := newFixture(t)
	b := f.book(1, domain.StatusActive, now.Add(-time.Hour), now.Add(time.Hour))
	stranger := domain.Principal{UserID: 2}

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID: b.ID,
		Status:    domain.StatusCancelled,
		Principal: &stranger,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	stored, _ := f.store.Booking(b.ID)
	assert.Equal(t, domain.StatusActive, stored.Status)
	spot, _ := f.store.Spot(1)
	assert.Equal(t, domain.SpotBooked, spot.Status)
	assert.Empty(t, f.publisher.Events())
}

func TestExecute_TerminalBookingIsLeftAlone(t *testing.T) {
	f := newFixture(t)
	b := f.book(1, domain.StatusCompleted, now.Add(-3*time.Hour), now.Add(-time.Hour))

	resp, err := f.uc.Execute(context.Background(), &Request{
		BookingID: b.ID,
		Status:    domain.StatusCancelled,
		Principal: &f.owner,
	})
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, domain.StatusCompleted, resp.Booking.Status)

	// Repeating a finished transition changes nothing either
	resp, err = f.uc.Execute(context.Background(), &Request{
		BookingID: b.ID,
		Status:    domain.StatusCompleted,
		Principal: &f.owner,
	})
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Empty(t, f.publisher.Events())
}

func TestExecute_SystemCallWithoutPrincipal(t *testing.T) {
	f := newFixture(t)
	b := f.book(1, domain.StatusActive, now.Add(-time.Hour), now.Add(time.Hour))

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: b.ID, Status: domain.StatusCompleted})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 0, Status: domain.StatusCancelled})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: 1, Status: domain.StatusActive})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: 404, Status: domain.StatusCancelled})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExpire(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		paid    bool
		want    domain.BookingStatus
		changed bool
	}{
		{"expired", now.Add(-25 * time.Hour), now.Add(-time.Hour), true, domain.StatusCompleted, true},
		{"expired and unpaid", now.Add(-25 * time.Hour), now.Add(-time.Hour), false, domain.StatusCompleted, true},
		{"unpaid past grace", now.Add(-30 * time.Minute), now.Add(time.Hour), false, domain.StatusCancelled, true},
		{"unpaid within grace", now.Add(-5 * time.Minute), now.Add(time.Hour), false, domain.StatusActive, false},
		{"paid and running", now.Add(-30 * time.Minute), now.Add(time.Hour), true, domain.StatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			b := f.book(1, domain.StatusActive, tt.start, tt.end)
			if tt.paid {
				f.store.AddPayment(b.ID, f.tariff.Price)
			}

			resp, err := f.uc.Expire(context.Background(), b.ID, now, grace)
			require.NoError(t, err)
			assert.Equal(t, tt.changed, resp.Changed)
			assert.Equal(t, tt.want, resp.Booking.Status)

			spot, _ := f.store.Spot(1)
			if tt.changed {
				assert.Equal(t, domain.SpotAvailable, spot.Status)
			} else {
				assert.Equal(t, domain.SpotBooked, spot.Status)
			}
		})
	}
}
