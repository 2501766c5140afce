package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records the (trusted) payment of a booking. At most one per booking.
type Payment struct {
	ID          int64
	BookingID   int64
	Amount      decimal.Decimal // tariff price at the moment of payment
	PaymentDate time.Time
}

// PaymentDetails is the read model used by payment listings
type PaymentDetails struct {
	Payment

	OwnerID    int64
	OwnerEmail string
	TariffName string
}
