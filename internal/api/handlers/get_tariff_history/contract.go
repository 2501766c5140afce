package get_tariff_history

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
)

type TariffService interface {
	History(ctx context.Context, tariffID *int64) ([]models.PriceHistoryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
