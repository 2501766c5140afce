package domain

import "time"

// Expiration sweep defaults
const (
	DefaultUnpaidGrace   = 20 * time.Minute
	DefaultSweepSchedule = "@every 1m"
	DefaultSweepTimeout  = 55 * time.Second
)

// Tariff durations for the named plans
const (
	DailyDuration   = 24 * time.Hour
	MonthlyDuration = 30 * 24 * time.Hour
)

// Pagination limits for admin listings
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Business validation constants
const (
	MaxLicensePlateLength = 15
	MaxTariffNameLength   = 50
	MaxCarAttributeLength = 100
	MaxBulkSpots          = 500
)

// Time format constants
const (
	TimeFormat = time.RFC3339
)

// ActiveStatuses список статусов, при которых бронирование занимает место
var ActiveStatuses = []BookingStatus{
	StatusActive,
}

// TerminalStatuses список финальных статусов
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}
