package update_tariff

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/tariffs/models"
)

type TariffService interface {
	Update(ctx context.Context, principal domain.Principal, id int64, req *models.UpdateTariffRequest) (*models.TariffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
