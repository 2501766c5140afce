package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error)
	HasActiveByCar(ctx context.Context, carID int64) (bool, error)
}

// SpotRepository интерфейс репозитория парковочных мест
type SpotRepository interface {
	GetByNumberForUpdate(ctx context.Context, number int64) (*domain.ParkingSpot, error)
	UpdateStatus(ctx context.Context, number int64, status domain.SpotStatus) error
}

// CarRepository интерфейс репозитория автомобилей
type CarRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.CarDetails, error)
}

// TariffRepository интерфейс репозитория тарифов
type TariffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tariff, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует доменные события (fire-and-forget)
type EventPublisher interface {
	Publish(event domain.Event)
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	IncBookingCreated(tariff string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
