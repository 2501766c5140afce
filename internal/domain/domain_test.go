package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

func TestTariff_GetDuration(t *testing.T) {
	tests := []struct {
		name   string
		tariff Tariff
		want   time.Duration
	}{
		{"daily", Tariff{Duration: DurationDaily}, 24 * time.Hour},
		{"monthly", Tariff{Duration: DurationMonthly}, 30 * 24 * time.Hour},
		{"custom minutes", Tariff{Duration: DurationCustom, DurationMinutes: ptr.Ptr(90)}, 90 * time.Minute},
		{"minutes override named plan", Tariff{Duration: DurationDaily, DurationMinutes: ptr.Ptr(60)}, time.Hour},
		{"custom without minutes", Tariff{Duration: DurationCustom}, 0},
		{"zero minutes falls back to plan", Tariff{Duration: DurationMonthly, DurationMinutes: ptr.Ptr(0)}, 30 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tariff.GetDuration())
		})
	}
}

func TestTariff_IsBookable(t *testing.T) {
	assert.True(t, (&Tariff{Duration: DurationDaily, IsActive: true}).IsBookable())
	assert.False(t, (&Tariff{Duration: DurationDaily, IsActive: false}).IsBookable())
	assert.False(t, (&Tariff{Duration: DurationCustom, IsActive: true}).IsBookable())
}

func TestBooking_CanTransitionTo(t *testing.T) {
	active := &Booking{Status: StatusActive}
	completed := &Booking{Status: StatusCompleted}
	cancelled := &Booking{Status: StatusCancelled}

	assert.True(t, active.CanTransitionTo(StatusCompleted))
	assert.True(t, active.CanTransitionTo(StatusCancelled))
	assert.False(t, active.CanTransitionTo(StatusActive))
	assert.False(t, completed.CanTransitionTo(StatusCancelled))
	assert.False(t, cancelled.CanTransitionTo(StatusCompleted))
	assert.False(t, cancelled.CanTransitionTo(StatusActive))
}

func TestExpirationVerdict(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	grace := 20 * time.Minute

	tests := []struct {
		name    string
		booking Booking
		paid    bool
		want    BookingStatus
		change  bool
	}{
		{
			name:    "expired and paid",
			booking: Booking{Status: StatusActive, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Second)},
			paid:    true,
			want:    StatusCompleted,
			change:  true,
		},
		{
			name:    "expired and unpaid prefers completed",
			booking: Booking{Status: StatusActive, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Minute)},
			want:    StatusCompleted,
			change:  true,
		},
		{
			name:    "unpaid exactly at grace boundary",
			booking: Booking{Status: StatusActive, StartTime: now.Add(-grace), EndTime: now.Add(time.Hour)},
			want:    StatusCancelled,
			change:  true,
		},
		{
			name:    "unpaid inside grace window",
			booking: Booking{Status: StatusActive, StartTime: now.Add(-grace + time.Second), EndTime: now.Add(time.Hour)},
			want:    StatusActive,
		},
		{
			name:    "paid and running",
			booking: Booking{Status: StatusActive, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)},
			paid:    true,
			want:    StatusActive,
		},
		{
			name:    "end time equal to now is not expired",
			booking: Booking{Status: StatusActive, StartTime: now.Add(-time.Minute), EndTime: now},
			paid:    true,
			want:    StatusActive,
		},
		{
			name:    "terminal untouched",
			booking: Booking{Status: StatusCancelled, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour)},
			want:    StatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, change := ExpirationVerdict(&tt.booking, tt.paid, now, grace)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.change, change)
		})
	}
}

func TestBooking_IsWithin(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	b := &Booking{StartTime: start, EndTime: start.Add(time.Hour)}

	assert.True(t, b.IsWithin(start))
	assert.True(t, b.IsWithin(start.Add(time.Hour)))
	assert.False(t, b.IsWithin(start.Add(-time.Second)))
	assert.False(t, b.IsWithin(start.Add(time.Hour+time.Second)))
}

func TestSpotStatus_IsAdminSettable(t *testing.T) {
	assert.True(t, SpotAvailable.IsAdminSettable())
	assert.True(t, SpotUnavailable.IsAdminSettable())
	assert.False(t, SpotBooked.IsAdminSettable())
	assert.False(t, SpotStatus("broken").IsAdminSettable())
}

func TestPrincipal_CanAccessOwnedBy(t *testing.T) {
	assert.True(t, Principal{UserID: 7}.CanAccessOwnedBy(7))
	assert.False(t, Principal{UserID: 7}.CanAccessOwnedBy(8))
	assert.True(t, Principal{UserID: 1, IsStaff: true}.CanAccessOwnedBy(8))
}

func TestEvent_Name(t *testing.T) {
	assert.Equal(t, "booking.created", Event{Type: EventBooking, Action: ActionCreated}.Name())
}
