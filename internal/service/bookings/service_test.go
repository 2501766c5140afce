package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/internal/testutil"
	"github.com/m04kA/SMC-ParkingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

var start = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store *memstore.Store
	svc   *Service

	alice domain.Principal
	bob   domain.Principal

	// alice: active+paid, completed; bob: active unpaid, cancelled
	alicePaid      domain.Booking
	aliceCompleted domain.Booking
	bobActive      domain.Booking
	bobCancelled   domain.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	f := &fixture{
		store: store,
		svc:   NewService(store.BookingRepo(), testutil.Logger()),
		alice: domain.Principal{UserID: 1, Email: "alice@example.com"},
		bob:   domain.Principal{UserID: 2, Email: "bob@example.com"},
	}
	store.AddUser(f.alice)
	store.AddUser(f.bob)
	tariff := store.AddTariff(domain.Tariff{Name: "Дневной", Price: decimal.NewFromInt(100), Duration: domain.DurationDaily, IsActive: true})
	aliceCar := store.AddCar(domain.Car{UserID: f.alice.UserID, LicensePlate: "A111AA"})
	bobCar := store.AddCar(domain.Car{UserID: f.bob.UserID, LicensePlate: "B222BB"})

	add := func(car domain.Car, spot int64, status domain.BookingStatus) domain.Booking {
		store.AddSpot(spot, domain.SpotAvailable)
		return store.AddBooking(domain.Booking{
			CarID:      car.ID,
			SpotNumber: spot,
			TariffID:   tariff.ID,
			Status:     status,
			StartTime:  start,
			EndTime:    start.Add(24 * time.Hour),
		})
	}
	f.aliceCompleted = add(aliceCar, 1, domain.StatusCompleted)
	f.bobCancelled = add(bobCar, 2, domain.StatusCancelled)
	f.alicePaid = add(aliceCar, 3, domain.StatusActive)
	f.bobActive = add(bobCar, 4, domain.StatusActive)
	store.AddPayment(f.alicePaid.ID, tariff.Price)
	return f
}

func ids(resp *models.BookingListResponse) []int64 {
	result := make([]int64, 0, len(resp.Bookings))
	for _, b := range resp.Bookings {
		result = append(result, b.ID)
	}
	return result
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.GetByID(context.Background(), f.alicePaid.ID, f.alice)
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "A111AA", resp.LicensePlate)
	assert.Equal(t, "Дневной", resp.TariffName)
	assert.Equal(t, f.alice.Email, resp.OwnerEmail)
	assert.Equal(t, "2024-03-01T10:00:00Z", resp.StartTime)
	assert.True(t, resp.IsPaid)
	require.NotNil(t, resp.Payment)
	assert.Equal(t, "100.00", resp.Payment.Amount.StringFixed(2))

	staff := domain.Principal{UserID: 99, IsStaff: true}
	_, err = f.svc.GetByID(context.Background(), f.alicePaid.ID, staff)
	assert.NoError(t, err)
}

func TestGetByID_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetByID(context.Background(), f.alicePaid.ID, f.bob)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.GetByID(context.Background(), 404, f.alice)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		req  models.GetUserBookingsRequest
		want []int64
	}{
		{"all newest first", models.GetUserBookingsRequest{}, []int64{f.alicePaid.ID, f.aliceCompleted.ID}},
		{"active only", models.GetUserBookingsRequest{Active: ptr.Ptr(true)}, []int64{f.alicePaid.ID}},
		{"finished only", models.GetUserBookingsRequest{Active: ptr.Ptr(false)}, []int64{f.aliceCompleted.ID}},
		{"unpaid only", models.GetUserBookingsRequest{Paid: ptr.Ptr(false)}, []int64{f.aliceCompleted.ID}},
		{"active and unpaid", models.GetUserBookingsRequest{Active: ptr.Ptr(true), Paid: ptr.Ptr(false)}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			resp, err := f.svc.GetUserBookings(context.Background(), f.alice, &req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(resp))
			assert.Equal(t, len(tt.want), resp.Total)
		})
	}
}

func TestGetAdminBookings(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		req  models.GetAdminBookingsRequest
		want []int64
	}{
		{
			name: "empty statuses means all",
			req:  models.GetAdminBookingsRequest{},
			want: []int64{f.bobActive.ID, f.alicePaid.ID, f.bobCancelled.ID, f.aliceCompleted.ID},
		},
		{
			name: "status filter",
			req:  models.GetAdminBookingsRequest{Statuses: []string{"completed", "cancelled"}},
			want: []int64{f.bobCancelled.ID, f.aliceCompleted.ID},
		},
		{
			name: "search by email",
			req:  models.GetAdminBookingsRequest{Search: "BOB@"},
			want: []int64{f.bobActive.ID, f.bobCancelled.ID},
		},
		{
			name: "search by plate and status",
			req:  models.GetAdminBookingsRequest{Search: "a111", Statuses: []string{"active"}},
			want: []int64{f.alicePaid.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			resp, err := f.svc.GetAdminBookings(context.Background(), &req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(resp))
			assert.Equal(t, len(tt.want), resp.Total)
			assert.Equal(t, 1, resp.Page)
			assert.Equal(t, domain.DefaultPageSize, resp.PageSize)
		})
	}
}

func TestGetAdminBookings_Paging(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.GetAdminBookings(context.Background(), &models.GetAdminBookingsRequest{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, []int64{f.aliceCompleted.ID}, ids(resp))
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 2, resp.Page)

	resp, err = f.svc.GetAdminBookings(context.Background(), &models.GetAdminBookingsRequest{PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPageSize, resp.PageSize)
}

func TestGetAdminBookings_InvalidStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetAdminBookings(context.Background(), &models.GetAdminBookingsRequest{Statuses: []string{"pending"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
