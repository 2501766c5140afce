package domain

import "time"

// SpotStatus represents the availability of a parking spot
type SpotStatus string

const (
	SpotAvailable   SpotStatus = "available"
	SpotBooked      SpotStatus = "booked"
	SpotUnavailable SpotStatus = "unavailable"
)

// IsValid reports whether s is one of the known statuses
func (s SpotStatus) IsValid() bool {
	switch s {
	case SpotAvailable, SpotBooked, SpotUnavailable:
		return true
	}
	return false
}

// IsAdminSettable returns true for statuses an administrator may assign
// directly. SpotBooked is owned by the booking engine.
func (s SpotStatus) IsAdminSettable() bool {
	return s == SpotAvailable || s == SpotUnavailable
}

// ParkingSpot is a single physical parking space identified by its number
type ParkingSpot struct {
	Number int64
	Status SpotStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAvailable returns true if the spot can be booked
func (s *ParkingSpot) IsAvailable() bool {
	return s.Status == SpotAvailable
}
