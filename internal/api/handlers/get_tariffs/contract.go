package get_tariffs

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
)

type TariffService interface {
	List(ctx context.Context, includeInactive bool) ([]models.TariffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
