package accesslogs

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// AccessLogRepository интерфейс журнала доступа
type AccessLogRepository interface {
	List(ctx context.Context, filter domain.AccessLogFilter) ([]*domain.QRAccessLogEntry, int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}
