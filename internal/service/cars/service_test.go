package cars

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/cars/models"
	"github.com/m04kA/SMC-ParkingService/internal/testutil"
	"github.com/m04kA/SMC-ParkingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

var owner = domain.Principal{UserID: 1, Email: "owner@example.com"}

func newService() (*Service, *memstore.Store, *testutil.Publisher) {
	store := memstore.New()
	store.SetNow(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	publisher := &testutil.Publisher{}
	svc := NewService(store.CarRepo(), store.BookingRepo(), store.TxManager(), publisher, testutil.Logger())
	return svc, store, publisher
}

func TestRegister(t *testing.T) {
	svc, store, publisher := newService()

	resp, err := svc.Register(context.Background(), owner, &models.RegisterCarRequest{
		LicensePlate: "  a123bc77 ",
		Make:         ptr.Ptr("Lada"),
	})
	require.NoError(t, err)
	assert.Equal(t, "A123BC77", resp.LicensePlate)
	assert.Equal(t, owner.UserID, resp.UserID)
	assert.Equal(t, owner.Email, resp.OwnerEmail)
	assert.False(t, resp.IsDeleted)

	user, ok := store.User(owner.UserID)
	require.True(t, ok)
	assert.Equal(t, owner.Email, user.Email)

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "car.created", events[0].Name())
	require.NotNil(t, events[0].UserID)
	assert.Equal(t, owner.UserID, *events[0].UserID)
}

func TestRegister_Errors(t *testing.T) {
	svc, store, publisher := newService()
	store.AddUser(owner)
	store.AddCar(domain.Car{UserID: owner.UserID, LicensePlate: "A123BC", IsDeleted: true})

	// Soft-deleted cars keep their plate
	_, err := svc.Register(context.Background(), domain.Principal{UserID: 2, Email: "other@example.com"}, &models.RegisterCarRequest{LicensePlate: "a123bc"})
	assert.ErrorIs(t, err, ErrLicensePlateTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.Register(context.Background(), owner, &models.RegisterCarRequest{LicensePlate: strings.Repeat("X", 16)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), owner, &models.RegisterCarRequest{LicensePlate: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, publisher.Events())

	// The user upsert is rolled back together with the failed insert
	_, ok := store.User(2)
	assert.False(t, ok)
}

func TestRegister_RepositoryFailure(t *testing.T) {
	svc, store, _ := newService()
	store.FailNext("car.Create", errors.New("connection reset"))

	_, err := svc.Register(context.Background(), owner, &models.RegisterCarRequest{LicensePlate: "A123BC"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestList(t *testing.T) {
	svc, store, _ := newService()
	store.AddUser(owner)
	store.AddUser(domain.Principal{UserID: 2, Email: "other@example.com"})
	store.AddCar(domain.Car{UserID: owner.UserID, LicensePlate: "A111AA"})
	store.AddCar(domain.Car{UserID: owner.UserID, LicensePlate: "B222BB", IsDeleted: true})
	store.AddCar(domain.Car{UserID: 2, LicensePlate: "C333CC"})

	mine, err := svc.ListMine(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "A111AA", mine[0].LicensePlate)

	active, err := svc.ListAll(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	all, err := svc.ListAll(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[1].IsDeleted)
	assert.Equal(t, "other@example.com", all[2].OwnerEmail)
}

func TestDelete(t *testing.T) {
	svc, store, publisher := newService()
	store.AddUser(owner)
	car := store.AddCar(domain.Car{UserID: owner.UserID, LicensePlate: "A123BC"})

	require.NoError(t, svc.Delete(context.Background(), owner, car.ID))

	stored, _ := store.Car(car.ID)
	assert.True(t, stored.IsDeleted)
	assert.Equal(t, []string{"car.updated"}, publisher.Names())

	// Repeated delete is a no-op
	require.NoError(t, svc.Delete(context.Background(), owner, car.ID))
	assert.Len(t, publisher.Events(), 1)
}

func TestDelete_Errors(t *testing.T) {
	svc, store, publisher := newService()
	store.AddUser(owner)
	store.AddSpot(1, domain.SpotBooked)
	idle := store.AddCar(domain.Car{UserID: owner.UserID, LicensePlate: "A111AA"})
	busy := store.AddCar(domain.Car{UserID: owner.UserID, LicensePlate: "B222BB"})
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	store.AddBooking(domain.Booking{
		CarID:      busy.ID,
		SpotNumber: 1,
		Status:     domain.StatusActive,
		StartTime:  start,
		EndTime:    start.Add(24 * time.Hour),
	})

	err := svc.Delete(context.Background(), owner, busy.ID)
	assert.ErrorIs(t, err, ErrCarHasActiveBooking)

	// Staff are not exempt from the ownership check
	err = svc.Delete(context.Background(), domain.Principal{UserID: 99, IsStaff: true}, idle.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.Delete(context.Background(), owner, 404)
	assert.ErrorIs(t, err, ErrCarNotFound)

	for _, id := range []int64{idle.ID, busy.ID} {
		stored, _ := store.Car(id)
		assert.False(t, stored.IsDeleted)
	}
	assert.Empty(t, publisher.Events())
}
