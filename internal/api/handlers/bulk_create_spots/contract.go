package bulk_create_spots

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/spots/models"
)

type SpotService interface {
	BulkCreate(ctx context.Context, req *models.BulkCreateRequest) (*models.BulkCreateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
