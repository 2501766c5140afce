package get_admin_cars

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/cars/models"
)

type CarService interface {
	ListAll(ctx context.Context, includeDeleted bool) ([]models.CarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
