package create_tariff

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
)

type TariffService interface {
	Create(ctx context.Context, req *models.CreateTariffRequest) (*models.TariffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
