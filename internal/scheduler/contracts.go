package scheduler

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/usecase/expire_bookings"
)

// Sweeper проход по просроченным бронированиям
type Sweeper interface {
	Execute(ctx context.Context) (expire_bookings.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
