package spots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/spots/models"
	"github.com/m04kA/SMC-ParkingService/internal/testutil"
	"github.com/m04kA/SMC-ParkingService/internal/testutil/memstore"
)

func newService() (*Service, *memstore.Store, *testutil.Publisher) {
	store := memstore.New()
	publisher := &testutil.Publisher{}
	return NewService(store.SpotRepo(), store.BookingRepo(), store.TxManager(), publisher, testutil.Logger()), store, publisher
}

// occupy adds an active booking on number
func occupy(store *memstore.Store, number int64) domain.Booking {
	store.AddUser(domain.Principal{UserID: 1, Email: "owner@example.com"})
	car := store.AddCar(domain.Car{UserID: 1, LicensePlate: "A123BC"})
	start := time.Now().UTC()
	return store.AddBooking(domain.Booking{
		CarID:      car.ID,
		SpotNumber: number,
		Status:     domain.StatusActive,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
	})
}

func TestCreate(t *testing.T) {
	svc, _, publisher := newService()

	resp, err := svc.Create(context.Background(), &models.CreateSpotRequest{SpotNumber: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.SpotNumber)
	assert.Equal(t, "available", resp.Status)
	assert.Equal(t, []string{"spot.created"}, publisher.Names())

	resp, err = svc.Create(context.Background(), &models.CreateSpotRequest{SpotNumber: 6, Status: "unavailable"})
	require.NoError(t, err)
	assert.Equal(t, "unavailable", resp.Status)
}

func TestCreate_Errors(t *testing.T) {
	svc, store, _ := newService()
	store.AddSpot(5, domain.SpotAvailable)

	_, err := svc.Create(context.Background(), &models.CreateSpotRequest{SpotNumber: 5})
	assert.ErrorIs(t, err, ErrSpotAlreadyExists)

	_, err = svc.Create(context.Background(), &models.CreateSpotRequest{SpotNumber: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateSpotRequest{SpotNumber: 7, Status: "booked"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBulkCreate_PartialSuccess(t *testing.T) {
	svc, store, publisher := newService()
	store.AddSpot(2, domain.SpotAvailable)

	resp, err := svc.BulkCreate(context.Background(), &models.BulkCreateRequest{
		Spots: []models.CreateSpotRequest{
			{SpotNumber: 1},
			{SpotNumber: 2},
			{SpotNumber: -3},
			{SpotNumber: 4, Status: "unavailable"},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.HasErrors())

	created := make([]int64, 0)
	for _, s := range resp.Created {
		created = append(created, s.SpotNumber)
	}
	assert.Equal(t, []int64{1, 4}, created)

	require.Len(t, resp.Errors, 2)
	assert.Equal(t, int64(2), resp.Errors[0].SpotNumber)
	assert.Equal(t, int64(-3), resp.Errors[1].SpotNumber)
	assert.Len(t, publisher.Events(), 2)
}

func TestBulkCreate_Limits(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.BulkCreate(context.Background(), &models.BulkCreateRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.BulkCreate(context.Background(), &models.BulkCreateRequest{
		Spots: make([]models.CreateSpotRequest, domain.MaxBulkSpots+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_OrderedByNumber(t *testing.T) {
	svc, store, _ := newService()
	store.AddSpot(3, domain.SpotAvailable)
	store.AddSpot(1, domain.SpotBooked)
	store.AddSpot(2, domain.SpotUnavailable)

	spots, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, spots, 3)
	assert.Equal(t, int64(1), spots[0].SpotNumber)
	assert.Equal(t, "booked", spots[0].Status)
	assert.Equal(t, int64(3), spots[2].SpotNumber)
}

func TestUpdateStatus(t *testing.T) {
	svc, store, publisher := newService()
	store.AddSpot(1, domain.SpotAvailable)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "unavailable"})
	require.NoError(t, err)
	assert.Equal(t, "unavailable", resp.Status)

	spot, _ := store.Spot(1)
	assert.Equal(t, domain.SpotUnavailable, spot.Status)
	assert.Equal(t, []string{"spot.updated"}, publisher.Names())
}

func TestUpdateStatus_Errors(t *testing.T) {
	svc, store, _ := newService()
	store.AddSpot(1, domain.SpotBooked)
	occupy(store, 1)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "booked"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "unavailable"})
	assert.ErrorIs(t, err, ErrSpotOccupied)

	_, err = svc.UpdateStatus(context.Background(), 404, &models.UpdateStatusRequest{Status: "available"})
	assert.ErrorIs(t, err, ErrSpotNotFound)

	spot, _ := store.Spot(1)
	assert.Equal(t, domain.SpotBooked, spot.Status)
}

func TestDelete(t *testing.T) {
	svc, store, _ := newService()
	store.AddSpot(1, domain.SpotAvailable)

	require.NoError(t, svc.Delete(context.Background(), 1))
	_, ok := store.Spot(1)
	assert.False(t, ok)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrSpotNotFound)
}

func TestDelete_Blocked(t *testing.T) {
	svc, store, _ := newService()

	store.AddSpot(1, domain.SpotBooked)
	occupy(store, 1)
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrSpotOccupied)

	store.AddSpot(2, domain.SpotAvailable)
	past := occupy(store, 2)
	require.NoError(t, store.BookingRepo().UpdateStatus(context.Background(), past.ID, domain.StatusCompleted))
	err := svc.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, ErrSpotHasHistory)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, ok := store.Spot(2)
	assert.True(t, ok)
}
