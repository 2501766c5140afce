package get_access_logs

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/accesslogs/models"
)

type AccessLogService interface {
	List(ctx context.Context, req *models.ListAccessLogsRequest) (*models.AccessLogListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
