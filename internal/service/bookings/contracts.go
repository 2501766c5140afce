package bookings

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error)
	ListByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.BookingDetails, error)
	ListWithFilter(ctx context.Context, filter domain.AdminBookingsFilter) ([]*domain.BookingDetails, int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
