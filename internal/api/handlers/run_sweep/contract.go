package run_sweep

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/usecase/expire_bookings"
)

type ExpireBookingsUseCase interface {
	Execute(ctx context.Context) (expire_bookings.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
