package tariffs

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// TariffRepository интерфейс репозитория тарифов
type TariffRepository interface {
	Create(ctx context.Context, tariff *domain.Tariff) (*domain.Tariff, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Tariff, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Tariff, error)
	Update(ctx context.Context, tariff *domain.Tariff) error
	CreatePriceHistory(ctx context.Context, entry *domain.TariffPriceHistory) (*domain.TariffPriceHistory, error)
	ListPriceHistory(ctx context.Context, tariffID *int64) ([]*domain.TariffPriceHistory, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
