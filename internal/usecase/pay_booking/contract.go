package pay_booking

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error)
}

// TariffRepository интерфейс репозитория тарифов
type TariffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tariff, error)
}

// PaymentRepository интерфейс репозитория оплат
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
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
