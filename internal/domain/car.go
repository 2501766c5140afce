package domain

import "time"

// Car is a vehicle registered by a user. Cars are soft-deleted.
type Car struct {
	ID           int64
	UserID       int64
	LicensePlate string
	Make         *string
	Model        *string
	Color        *string
	IsDeleted    bool

	RegisteredAt time.Time
}

// IsOwnedBy returns true if the car belongs to userID
func (c *Car) IsOwnedBy(userID int64) bool {
	return c.UserID == userID
}

// CarDetails adds the owner email for admin listings and notifications
type CarDetails struct {
	Car

	OwnerEmail string
}
