package finish_booking

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// SpotRepository интерфейс репозитория парковочных мест
type SpotRepository interface {
	UpdateStatus(ctx context.Context, number int64, status domain.SpotStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует доменные события (fire-and-forget)
type EventPublisher interface {
	Publish(event domain.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
