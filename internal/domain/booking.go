package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid reports whether s is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for statuses no transition leaves
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Booking represents a parking spot reservation for a car under a tariff.
// StartTime and EndTime are fixed at creation and never recomputed.
type Booking struct {
	ID         int64
	CarID      int64
	SpotNumber int64
	TariffID   int64
	Status     BookingStatus
	StartTime  time.Time
	EndTime    time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its spot
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// CanTransitionTo reports whether the booking may move to next.
// Only active bookings move, and only to a terminal status.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	return b.Status == StatusActive && next.IsTerminal()
}

// IsWithin reports whether t lies inside [StartTime, EndTime]
func (b *Booking) IsWithin(t time.Time) bool {
	return !t.Before(b.StartTime) && !t.After(b.EndTime)
}

// ExpirationVerdict decides what the expiration sweep does with an active
// booking at now. Expiry takes precedence over the unpaid timeout.
// The second return value is false when the booking must stay as it is.
func ExpirationVerdict(b *Booking, paid bool, now time.Time, grace time.Duration) (BookingStatus, bool) {
	if !b.IsActive() {
		return b.Status, false
	}
	if b.EndTime.Before(now) {
		return StatusCompleted, true
	}
	if !paid && !b.StartTime.After(now.Add(-grace)) {
		return StatusCancelled, true
	}
	return b.Status, false
}

// BookingDetails is the read model of a booking with the fields of its
// related entities resolved
type BookingDetails struct {
	Booking

	TariffName   string
	LicensePlate string
	CarMake      *string
	CarModel     *string
	CarColor     *string
	OwnerID      int64
	OwnerEmail   string

	Payment *Payment
}

// IsPaid returns true if a payment exists for the booking
func (d *BookingDetails) IsPaid() bool {
	return d.Payment != nil
}

// UserBookingsFilter filters the bookings of one user
type UserBookingsFilter struct {
	UserID int64
	Active *bool // true = only active, false = only finished
	Paid   *bool // true = only paid, false = only unpaid
}

// AdminBookingsFilter filters the admin booking list
type AdminBookingsFilter struct {
	Statuses []BookingStatus
	Search   string // matches owner email or license plate, case-insensitive
	Limit    int
	Offset   int
}
