package domain

import "time"

// AccessFailureReason explains a denied QR access attempt
type AccessFailureReason string

const (
	ReasonBookingNotFound  AccessFailureReason = "booking_not_found"
	ReasonBookingInactive  AccessFailureReason = "booking_inactive"
	ReasonBookingUnpaid    AccessFailureReason = "booking_unpaid"
	ReasonInvalidSignature AccessFailureReason = "invalid_signature"
	ReasonExpired          AccessFailureReason = "expired"
	ReasonInvalidFormat    AccessFailureReason = "invalid_format"
)

// QRAccessLogEntry is an append-only record of one access attempt
type QRAccessLogEntry struct {
	ID            int64
	QRData        string
	BookingID     *int64
	AccessGranted bool
	FailureReason *AccessFailureReason
	Time          time.Time
}

// AccessLogFilter filters the admin access log listing
type AccessLogFilter struct {
	Granted   *bool
	BookingID *int64
	Limit     int
	Offset    int
}
