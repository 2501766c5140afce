package expire_bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/testutil"
	"github.com/m04kA/SMC-ParkingService/internal/testutil/memstore"
	finishBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/finish_booking"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type sweepObservation struct {
	completed, cancelled, skipped, failed int
}

type fakeMetrics struct {
	observed []sweepObservation
}

func (m *fakeMetrics) ObserveSweep(completed, cancelled, skipped, failed int, _ time.Duration) {
	m.observed = append(m.observed, sweepObservation{completed, cancelled, skipped, failed})
}

type fixture struct {
	store     *memstore.Store
	publisher *testutil.Publisher
	metrics   *fakeMetrics
	finisher  *finishBooking.UseCase

	tariff  domain.Tariff
	nextCar int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	store.SetNow(now)
	store.AddUser(domain.Principal{UserID: 1, Email: "owner@example.com"})

	publisher := &testutil.Publisher{}
	return &fixture{
		store:     store,
		publisher: publisher,
		metrics:   &fakeMetrics{},
		finisher:  finishBooking.NewUseCase(store.BookingRepo(), store.SpotRepo(), store.TxManager(), publisher, testutil.Logger()),
		tariff:    store.AddTariff(domain.Tariff{Name: "Дневной", Price: decimal.NewFromInt(100), Duration: domain.DurationDaily, IsActive: true}),
	}
}

func (f *fixture) useCase(repo BookingRepository) *UseCase {
	if repo == nil {
		repo = f.store.BookingRepo()
	}
	return NewUseCase(repo, f.finisher, 20*time.Minute, f.metrics, testutil.Logger()).
		WithTimeProvider(testutil.NewClock(now))
}

// book adds a booking on its own spot and car
func (f *fixture) book(status domain.BookingStatus, start, end time.Time, paid bool) domain.Booking {
	f.nextCar++
	spot := int64(f.nextCar)
	spotStatus := domain.SpotAvailable
	if status == domain.StatusActive {
		spotStatus = domain.SpotBooked
	}
	f.store.AddSpot(spot, spotStatus)
	car := f.store.AddCar(domain.Car{UserID: 1, LicensePlate: "CAR" + string(rune('A'+f.nextCar))})

	b := f.store.AddBooking(domain.Booking{
		CarID:      car.ID,
		SpotNumber: spot,
		TariffID:   f.tariff.ID,
		Status:     status,
		StartTime:  start,
		EndTime:    end,
	})
	if paid {
		f.store.AddPayment(b.ID, f.tariff.Price)
	}
	return b
}

func (f *fixture) status(t *testing.T, id int64) domain.BookingStatus {
	t.Helper()
	b, ok := f.store.Booking(id)
	require.True(t, ok)
	return b.Status
}

func TestExecute_Sweep(t *testing.T) {
	f := newFixture(t)

	expired := f.book(domain.StatusActive, now.Add(-25*time.Hour), now.Add(-time.Hour), true)
	expiredUnpaid := f.book(domain.StatusActive, now.Add(-25*time.Hour), now.Add(-time.Minute), false)
	unpaid := f.book(domain.StatusActive, now.Add(-30*time.Minute), now.Add(23*time.Hour), false)
	paid := f.book(domain.StatusActive, now.Add(-30*time.Minute), now.Add(23*time.Hour), true)
	fresh := f.book(domain.StatusActive, now.Add(-5*time.Minute), now.Add(23*time.Hour), false)
	finished := f.book(domain.StatusCancelled, now.Add(-48*time.Hour), now.Add(-24*time.Hour), false)

	result, err := f.useCase(nil).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Completed: 2, Cancelled: 1}, result)

	assert.Equal(t, domain.StatusCompleted, f.status(t, expired.ID))
	assert.Equal(t, domain.StatusCompleted, f.status(t, expiredUnpaid.ID))
	assert.Equal(t, domain.StatusCancelled, f.status(t, unpaid.ID))
	assert.Equal(t, domain.StatusActive, f.status(t, paid.ID))
	assert.Equal(t, domain.StatusActive, f.status(t, fresh.ID))
	assert.Equal(t, domain.StatusCancelled, f.status(t, finished.ID))

	for _, b := range []domain.Booking{expired, expiredUnpaid, unpaid} {
		spot, _ := f.store.Spot(b.SpotNumber)
		assert.Equal(t, domain.SpotAvailable, spot.Status)
	}
	spot, _ := f.store.Spot(paid.SpotNumber)
	assert.Equal(t, domain.SpotBooked, spot.Status)

	require.Len(t, f.metrics.observed, 1)
	assert.Equal(t, sweepObservation{completed: 2, cancelled: 1}, f.metrics.observed[0])
}

func TestExecute_SecondSweepChangesNothing(t *testing.T) {
	f := newFixture(t)
	f.book(domain.StatusActive, now.Add(-25*time.Hour), now.Add(-time.Hour), true)
	f.book(domain.StatusActive, now.Add(-30*time.Minute), now.Add(time.Hour), false)

	uc := f.useCase(nil)
	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Total())
	events := len(f.publisher.Events())

	second, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{}, second)
	assert.Len(t, f.publisher.Events(), events)
}

// payingRepo pays for a booking right after it was selected as unpaid
type payingRepo struct {
	BookingRepository
	store     *memstore.Store
	bookingID int64
	amount    decimal.Decimal
}

func (r *payingRepo) ListUnpaidActiveIDs(ctx context.Context, startedBefore time.Time) ([]int64, error) {
	ids, err := r.BookingRepository.ListUnpaidActiveIDs(ctx, startedBefore)
	r.store.AddPayment(r.bookingID, r.amount)
	return ids, err
}

func TestExecute_PaymentBetweenSelectionAndTransition(t *testing.T) {
	f := newFixture(t)
	b := f.book(domain.StatusActive, now.Add(-30*time.Minute), now.Add(time.Hour), false)

	repo := &payingRepo{
		BookingRepository: f.store.BookingRepo(),
		store:             f.store,
		bookingID:         b.ID,
		amount:            f.tariff.Price,
	}

	result, err := f.useCase(repo).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 1}, result)
	assert.Equal(t, domain.StatusActive, f.status(t, b.ID))
}

func TestExecute_FailureDoesNotStopSweep(t *testing.T) {
	f := newFixture(t)
	first := f.book(domain.StatusActive, now.Add(-25*time.Hour), now.Add(-time.Hour), true)
	second := f.book(domain.StatusActive, now.Add(-30*time.Minute), now.Add(time.Hour), false)
	f.store.FailNext("booking.UpdateStatus", errors.New("deadlock detected"))

	result, err := f.useCase(nil).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Cancelled: 1, Failed: 1}, result)

	assert.Equal(t, domain.StatusActive, f.status(t, first.ID))
	assert.Equal(t, domain.StatusCancelled, f.status(t, second.ID))

	// The failed booking is picked up by the next sweep
	result, err = f.useCase(nil).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Completed: 1}, result)
}

func TestExecute_CancelledContext(t *testing.T) {
	f := newFixture(t)
	b := f.book(domain.StatusActive, now.Add(-25*time.Hour), now.Add(-time.Hour), true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.useCase(nil).Execute(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, Result{}, result)
	assert.Equal(t, domain.StatusActive, f.status(t, b.ID))
}

func TestExecute_ListError(t *testing.T) {
	f := newFixture(t)
	f.store.FailNext("booking.ListExpiredActiveIDs", errors.New("connection refused"))

	_, err := f.useCase(nil).Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrListCandidates)
	require.Len(t, f.metrics.observed, 1)
}

func TestMergeCandidates(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, mergeCandidates([]int64{3, 1}, []int64{1, 2, 3}))
	assert.Equal(t, []int64{}, mergeCandidates(nil, nil))
}
