package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TariffDuration names the duration plan of a tariff
type TariffDuration string

const (
	DurationDaily   TariffDuration = "daily"
	DurationMonthly TariffDuration = "monthly"
	DurationCustom  TariffDuration = "custom"
)

// IsValid reports whether d is one of the known plans
func (d TariffDuration) IsValid() bool {
	switch d {
	case DurationDaily, DurationMonthly, DurationCustom:
		return true
	}
	return false
}

// Tariff is a priced duration plan a booking is made under
type Tariff struct {
	ID              int64
	Name            string
	Price           decimal.Decimal
	Duration        TariffDuration
	DurationMinutes *int // explicit duration, required for DurationCustom
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetDuration returns how long a booking under this tariff lasts.
// An explicit positive DurationMinutes wins over the named plan; zero
// means the tariff cannot be booked.
func (t *Tariff) GetDuration() time.Duration {
	if t.DurationMinutes != nil && *t.DurationMinutes > 0 {
		return time.Duration(*t.DurationMinutes) * time.Minute
	}

	switch t.Duration {
	case DurationDaily:
		return DailyDuration
	case DurationMonthly:
		return MonthlyDuration
	default:
		return 0
	}
}

// IsBookable returns true if new bookings may use the tariff
func (t *Tariff) IsBookable() bool {
	return t.IsActive && t.GetDuration() > 0
}

// TariffPriceHistory is an immutable record of a tariff price change
type TariffPriceHistory struct {
	ID        int64
	TariffID  int64
	OldPrice  decimal.Decimal
	NewPrice  decimal.Decimal
	ChangedBy int64
	ChangedAt time.Time
}
