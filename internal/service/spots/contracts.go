package spots

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SpotRepository интерфейс репозитория парковочных мест
type SpotRepository interface {
	Create(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error)
	GetByNumberForUpdate(ctx context.Context, number int64) (*domain.ParkingSpot, error)
	List(ctx context.Context) ([]*domain.ParkingSpot, error)
	UpdateStatus(ctx context.Context, number int64, status domain.SpotStatus) error
	Delete(ctx context.Context, number int64) error
}

// BookingRepository интерфейс проверки активных бронирований
type BookingRepository interface {
	HasActiveBySpot(ctx context.Context, spotNumber int64) (bool, error)
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
