package cars

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CarRepository интерфейс репозитория автомобилей
type CarRepository interface {
	EnsureUser(ctx context.Context, principal domain.Principal) error
	Create(ctx context.Context, car *domain.Car) (*domain.Car, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.CarDetails, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.CarDetails, error)
	List(ctx context.Context, includeDeleted bool) ([]*domain.CarDetails, error)
	SoftDelete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс проверки активных бронирований
type BookingRepository interface {
	HasActiveByCar(ctx context.Context, carID int64) (bool, error)
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
